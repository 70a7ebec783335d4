// Package store persists computed layouts so they can be fetched again by ID.
//
// Implementations:
//   - [MemoryStore]: in-process, for tests and single-instance servers
//   - [FileStore]: JSON files under a directory, for the CLI
//   - [MongoStore]: MongoDB collection, for multi-instance deployments
//
// # Usage
//
//	rec := store.NewRecord(result, docHash, store.DefaultTTL)
//	if err := st.Put(ctx, rec); err != nil {
//	    return err
//	}
//	rec, err := st.Get(ctx, id)
//	if errors.Is(err, errors.ErrCodeLayoutNotFound) {
//	    // unknown or expired
//	}
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/panes/pkg/document"
	"github.com/matzehuels/panes/pkg/errors"
)

// DefaultTTL is how long a stored layout is kept.
const DefaultTTL = 30 * 24 * time.Hour

// Record is a stored layout.
type Record struct {
	ID        string           `json:"id" bson:"_id"`
	DocHash   string           `json:"doc_hash" bson:"doc_hash"`
	Result    *document.Result `json:"result" bson:"result"`
	CreatedAt time.Time        `json:"created_at" bson:"created_at"`
	ExpiresAt time.Time        `json:"expires_at,omitempty" bson:"expires_at,omitempty"`
}

// IsExpired reports whether the record has passed its expiry. Records
// without an expiry never expire.
func (r *Record) IsExpired() bool {
	return !r.ExpiresAt.IsZero() && time.Now().After(r.ExpiresAt)
}

// Summary is the listing view of a record.
type Summary struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name,omitempty" bson:"name,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Summary returns the listing view of r.
func (r *Record) Summary() Summary {
	s := Summary{ID: r.ID, CreatedAt: r.CreatedAt}
	if r.Result != nil {
		s.Name = r.Result.Name
	}
	return s
}

// NewID returns a random record ID.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id is a well-formed record ID.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// NewRecord wraps result in a record with a fresh ID. A zero ttl never
// expires.
func NewRecord(result *document.Result, docHash string, ttl time.Duration) *Record {
	now := time.Now().UTC()
	rec := &Record{
		ID:        NewID(),
		DocHash:   docHash,
		Result:    result,
		CreatedAt: now,
	}
	if ttl > 0 {
		rec.ExpiresAt = now.Add(ttl)
	}
	return rec
}

// Store is the interface for layout storage backends.
type Store interface {
	// Get returns the record with the given ID. Missing and expired records
	// yield an ErrCodeLayoutNotFound error.
	Get(ctx context.Context, id string) (*Record, error)

	// Put stores rec, replacing any record with the same ID.
	Put(ctx context.Context, rec *Record) error

	// Delete removes a record. Deleting a missing record is not an error.
	Delete(ctx context.Context, id string) error

	// List returns up to limit summaries, newest first.
	List(ctx context.Context, limit int) ([]Summary, error)

	// Cleanup removes expired records.
	Cleanup(ctx context.Context) error

	// Close releases resources held by the store.
	Close() error
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeLayoutNotFound, "layout %s not found", id)
}
