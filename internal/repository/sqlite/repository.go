package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	appErrors "fichaje/internal/errors"
	"fichaje/internal/repository"
	"fichaje/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Options tunes the repository. Zero values disable the timeouts.
type Options struct {
	QueryTimeout time.Duration
	WriteTimeout time.Duration
	Location     *time.Location // zone for migrating naive timestamps
}

// SQLiteRepository implements repository.Store with one JSON document per row
type SQLiteRepository struct {
	db   *sql.DB
	opts Options
}

var _ repository.Store = (*SQLiteRepository)(nil)

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	return NewWithOptions(dbPath, Options{})
}

// NewWithOptions opens dbPath and runs pending migrations
func NewWithOptions(dbPath string, opts Options) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, appErrors.NewStorageError("open database", err)
	}
	// a single connection keeps ":memory:" databases shared across calls
	db.SetMaxOpenConns(1)

	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	if err := migrations.RunMigrations(context.Background(), db, loc); err != nil {
		db.Close()
		return nil, appErrors.NewStorageError("run migrations", err)
	}

	return &SQLiteRepository{db: db, opts: opts}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// Get retrieves the document for key
func (r *SQLiteRepository) Get(ctx context.Context, key repository.Key) (*repository.DayDocument, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}
	ctx, cancel := withTimeout(ctx, r.opts.QueryTimeout)
	defer cancel()

	query := `
	SELECT user_id, day, document, updated_at
	FROM day_records
	WHERE user_id = ? AND day = ?`

	row, err := QuerySingle(ctx, r.db, query, ScanDayRecord, "day record", key.String(), key.UserID, key.Date)
	if err != nil {
		return nil, err
	}

	doc := &repository.DayDocument{}
	if err := json.Unmarshal([]byte(row.Document), doc); err != nil {
		return nil, appErrors.NewCorruptRecordError("document", row.Document, err).WithContext("key", key.String())
	}
	if doc.Pauses == nil {
		doc.Pauses = []repository.PauseDocument{}
	}
	return doc, nil
}

// Put inserts or replaces the document for key
func (r *SQLiteRepository) Put(ctx context.Context, key repository.Key, doc *repository.DayDocument) error {
	if err := key.Validate(); err != nil {
		return err
	}
	ctx, cancel := withTimeout(ctx, r.opts.WriteTimeout)
	defer cancel()

	bs, err := json.Marshal(doc)
	if err != nil {
		return appErrors.NewStorageError("encode day record", err)
	}

	query := `
	INSERT INTO day_records (user_id, day, document, updated_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT (user_id, day) DO UPDATE SET
		document = excluded.document,
		updated_at = excluded.updated_at`

	return ExecuteWithRowsAffected(ctx, r.db, query, "day record", key.String(),
		key.UserID, key.Date, string(bs), FormatTimeForDB(time.Now()))
}
