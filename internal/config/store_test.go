package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"fichaje/internal/errors"
	"fichaje/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateStore(t *testing.T) {
	for _, backend := range []string{BackendBuntDB, BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			cfg := NewConfig()
			cfg.Store.Backend = backend
			cfg.Store.Dir = filepath.Join(t.TempDir(), "nested")
			cfg.Schedule.Timezone = "UTC"

			store, err := CreateStore(cfg)
			require.NoError(t, err)
			defer store.Close()

			ctx := context.Background()
			key := repository.NewKey("42", "2025-03-14")
			doc := &repository.DayDocument{Start: "2025-03-14T09:00:00Z", Pauses: []repository.PauseDocument{}}
			require.NoError(t, store.Put(ctx, key, doc))

			got, err := store.Get(ctx, key)
			require.NoError(t, err)
			assert.Equal(t, doc.Start, got.Start)

			_, err = os.Stat(cfg.GetStorePath())
			assert.NoError(t, err, "store file is created inside the configured directory")
		})
	}
}

func TestCreateStore_UnknownBackend(t *testing.T) {
	cfg := NewConfig()
	cfg.Store.Backend = "firestore"
	cfg.Store.Filename = MemoryStore

	_, err := CreateStore(cfg)

	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestCreateTestStore(t *testing.T) {
	store, err := CreateTestStore()
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Get(context.Background(), repository.NewKey("42", "2025-03-14"))
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}
