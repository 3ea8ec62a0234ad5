package sqlite

import (
	"context"
	"database/sql"
	"errors"

	appErrors "fichaje/internal/errors"
)

// HandleDatabaseError converts database errors to structured app errors
func HandleDatabaseError(ctx context.Context, operation string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return appErrors.FromContext(ctx, operation, err)
	}
	return appErrors.NewStorageError(operation, err)
}

// ExecuteWithRowsAffected executes a query and requires at least one affected row
func ExecuteWithRowsAffected(ctx context.Context, db *sql.DB, query string, entityType string, id string, args ...interface{}) error {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return HandleDatabaseError(ctx, "execute query", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return HandleDatabaseError(ctx, "get rows affected", err)
	}
	if rows == 0 {
		return appErrors.NewNotFoundError(entityType, id)
	}
	return nil
}

// QuerySingle executes a query that returns a single row and scans it
func QuerySingle[T any](ctx context.Context, db *sql.DB, query string, scanFunc func(Scanner) (*T, error), entityType string, id string, args ...interface{}) (*T, error) {
	row := db.QueryRowContext(ctx, query, args...)
	result, err := scanFunc(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NewNotFoundError(entityType, id)
		}
		return nil, HandleDatabaseError(ctx, "scan "+entityType, err)
	}
	return result, nil
}
