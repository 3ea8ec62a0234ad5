package config

import (
	"fmt"
	"os"

	"fichaje/internal/repository"
	"fichaje/internal/repository/buntstore"
	"fichaje/internal/repository/sqlite"
)

// CreateStore opens the document store selected by the configuration
func CreateStore(config *Config) (repository.Store, error) {
	path := config.GetStorePath()
	if path != MemoryStore {
		if err := os.MkdirAll(config.Store.Dir, os.FileMode(config.Store.DirPermissions)); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	switch config.Store.Backend {
	case BackendSQLite:
		loc, err := config.GetLocation()
		if err != nil {
			return nil, err
		}
		repo, err := sqlite.NewWithOptions(path, sqlite.Options{
			QueryTimeout: config.Store.QueryTimeout,
			WriteTimeout: config.Store.WriteTimeout,
			Location:     loc,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return repo, nil
	case BackendBuntDB:
		store, err := buntstore.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open store: %w", err)
		}
		return store, nil
	default:
		return nil, &ConfigError{Field: "store.backend", Message: "unknown backend " + config.Store.Backend}
	}
}

// CreateTestStore creates an in-memory store for testing
func CreateTestStore() (repository.Store, error) {
	return buntstore.Open(MemoryStore)
}
