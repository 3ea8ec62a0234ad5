// Package repository defines the document store contract for day records and
// the document shape every backend persists.
package repository

import (
	"context"
	"strings"
	"time"

	"fichaje/internal/errors"
)

// Key identifies one user's record for one calendar date
type Key struct {
	UserID string
	Date   string // YYYY-MM-DD
}

// NewKey builds a key
func NewKey(userID, date string) Key {
	return Key{UserID: userID, Date: date}
}

// String renders the key as user/date
func (k Key) String() string {
	return k.UserID + "/" + k.Date
}

// Validate rejects keys no backend can address
func (k Key) Validate() error {
	if strings.TrimSpace(k.UserID) == "" {
		return errors.NewInvalidInputError("user_id", k.UserID, "cannot be empty")
	}
	if strings.ContainsAny(k.UserID, ":/") {
		return errors.NewInvalidInputError("user_id", k.UserID, "cannot contain ':' or '/'")
	}
	if _, err := time.Parse("2006-01-02", k.Date); err != nil {
		return errors.NewInvalidInputError("date", k.Date, "must be YYYY-MM-DD")
	}
	return nil
}

// PauseDocument is the stored form of a pause interval
type PauseDocument struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// DayDocument is the stored form of a day record. Timestamps are ISO-8601
// strings; absent values are omitted.
type DayDocument struct {
	Start  string          `json:"start,omitempty"`
	End    string          `json:"end,omitempty"`
	Pauses []PauseDocument `json:"pauses"`
}

// Store is the document store holding at most one DayDocument per Key
type Store interface {
	// Get returns the document for key, or a NotFound AppError when absent
	Get(ctx context.Context, key Key) (*DayDocument, error)
	// Put replaces the document for key
	Put(ctx context.Context, key Key, doc *DayDocument) error
	Close() error
}

// NotFound builds the error every backend returns for a missing key
func NotFound(key Key) error {
	return errors.NewNotFoundError("day record", key.String())
}
