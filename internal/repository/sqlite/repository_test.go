package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"fichaje/internal/errors"
	"fichaje/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestGetMissingRecord(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.Get(context.Background(), repository.NewKey("42", "2025-07-01"))

	assert.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
	assert.Contains(t, err.Error(), "not found")
}

func TestPutAndGetRecord(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	key := repository.NewKey("42", "2025-07-01")

	doc := &repository.DayDocument{
		Start: "2025-07-01T08:00:00+02:00",
		End:   "2025-07-01T15:30:00+02:00",
		Pauses: []repository.PauseDocument{
			{Start: "2025-07-01T12:00:00+02:00", End: "2025-07-01T12:30:00+02:00"},
		},
	}

	require.NoError(t, repo.Put(ctx, key, doc))

	retrieved, err := repo.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, doc, retrieved)
}

func TestPutReplacesRecord(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	key := repository.NewKey("42", "2025-07-01")

	require.NoError(t, repo.Put(ctx, key, &repository.DayDocument{Start: "first"}))
	require.NoError(t, repo.Put(ctx, key, &repository.DayDocument{Start: "second"}))

	retrieved, err := repo.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "second", retrieved.Start)
	assert.Empty(t, retrieved.Pauses)
	assert.NotNil(t, retrieved.Pauses)

	var rows int
	require.NoError(t, repo.db.QueryRow("SELECT COUNT(*) FROM day_records").Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestRecordsAreKeyedByUserAndDay(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, repository.NewKey("1", "2025-07-01"), &repository.DayDocument{Start: "a"}))
	require.NoError(t, repo.Put(ctx, repository.NewKey("1", "2025-07-02"), &repository.DayDocument{Start: "b"}))
	require.NoError(t, repo.Put(ctx, repository.NewKey("2", "2025-07-01"), &repository.DayDocument{Start: "c"}))

	got, err := repo.Get(ctx, repository.NewKey("1", "2025-07-02"))
	require.NoError(t, err)
	assert.Equal(t, "b", got.Start)

	got, err = repo.Get(ctx, repository.NewKey("2", "2025-07-01"))
	require.NoError(t, err)
	assert.Equal(t, "c", got.Start)
}

func TestInvalidKeyRejected(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.Get(context.Background(), repository.NewKey("1", "tomorrow"))

	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
}

func TestCancelledContext(t *testing.T) {
	repo := setupTestDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.Put(ctx, repository.NewKey("1", "2025-07-01"), &repository.DayDocument{})

	assert.Error(t, err)
}

func TestFileDatabaseSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fichaje.db")
	key := repository.NewKey("42", "2025-07-01")

	repo, err := NewWithOptions(path, Options{QueryTimeout: time.Second, WriteTimeout: time.Second})
	require.NoError(t, err)
	require.NoError(t, repo.Put(context.Background(), key, &repository.DayDocument{Start: "x"}))
	require.NoError(t, repo.Close())

	reopened, err := New(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, "x", got.Start)
}

func TestFormatTimeForDB(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected string
	}{
		{
			name:     "Valid time",
			input:    time.Date(2024, 1, 15, 10, 30, 45, 0, time.UTC),
			expected: "2024-01-15T10:30:45Z",
		},
		{
			name:     "Time with timezone",
			input:    time.Date(2024, 6, 15, 14, 30, 0, 0, time.FixedZone("CEST", 2*3600)),
			expected: "2024-06-15T14:30:00+02:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatTimeForDB(tt.input)
			assert.Equal(t, tt.expected, result)

			parsed, err := ParseTimeFromDB(result)
			require.NoError(t, err)
			assert.True(t, tt.input.Equal(parsed))
		})
	}
}

type fakeRow struct {
	values []string
	err    error
}

func (f fakeRow) Scan(dest ...interface{}) error {
	if f.err != nil {
		return f.err
	}
	for i, d := range dest {
		*(d.(*string)) = f.values[i]
	}
	return nil
}

func TestScanDayRecord(t *testing.T) {
	row, err := ScanDayRecord(fakeRow{values: []string{"42", "2025-07-01", "{}", "2025-07-01T10:00:00Z"}})
	require.NoError(t, err)

	assert.Equal(t, "42", row.UserID)
	assert.Equal(t, "2025-07-01", row.Day)
	assert.Equal(t, "{}", row.Document)
	assert.Equal(t, time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC), row.UpdatedAt)
}

func TestUndecodableDocument(t *testing.T) {
	repo := setupTestDB(t)
	_, err := repo.db.Exec(
		"INSERT INTO day_records (user_id, day, document, updated_at) VALUES (?, ?, ?, ?)",
		"42", "2025-07-01", "not json", FormatTimeForDB(time.Now()))
	require.NoError(t, err)

	_, err = repo.Get(context.Background(), repository.NewKey("42", "2025-07-01"))

	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeCorruptRecord))
}
