// Package store keeps records of finished conversions so the HTTP API can
// serve them after the request that produced them has returned.
//
// A [Record] holds the converted document together with its statistics.
// Implementations:
//   - [MemoryStore]: in-process, for tests and single-instance servers
//   - [FileStore]: JSON files in a directory, for the CLI
//   - [MongoStore]: a MongoDB collection, for shared deployments
//
// Records expire after their TTL. Get never returns an expired record.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/matzehuels/framecast/pkg/host"
	"github.com/matzehuels/framecast/pkg/perf"
	"github.com/matzehuels/framecast/pkg/pipeline"
)

// ErrNotFound is returned when a record does not exist or has expired.
var ErrNotFound = errors.New("conversion not found")

// DefaultTTL is how long records are kept.
const DefaultTTL = 24 * time.Hour

// Status is the outcome of a conversion.
type Status string

const (
	StatusDone     Status = "done"
	StatusFailed   Status = "failed"
	StatusTimedOut Status = "timed_out"
)

// Record is one stored conversion.
type Record struct {
	ID        string         `json:"id" bson:"_id"`
	Title     string         `json:"title" bson:"title"`
	Status    Status         `json:"status" bson:"status"`
	Error     string         `json:"error,omitempty" bson:"error,omitempty"`
	CacheHit  bool           `json:"cacheHit" bson:"cache_hit"`
	Stats     pipeline.Stats `json:"stats" bson:"stats"`
	Report    perf.Report    `json:"report" bson:"report"`
	Document  *host.Document `json:"document,omitempty" bson:"-"`
	Payload   []byte         `json:"-" bson:"document,omitempty"`
	CreatedAt time.Time      `json:"createdAt" bson:"created_at"`
	ExpiresAt time.Time      `json:"expiresAt" bson:"expires_at"`
}

// IsExpired reports whether the record has passed its expiry.
func (r *Record) IsExpired() bool {
	return !r.ExpiresAt.IsZero() && time.Now().After(r.ExpiresAt)
}

// NewRecord builds a record for conv, expiring after ttl.
func NewRecord(conv *pipeline.Conversion, title string, ttl time.Duration) *Record {
	now := time.Now()
	rec := &Record{
		ID:        conv.ID,
		Title:     title,
		Status:    StatusDone,
		CacheHit:  conv.CacheHit,
		Document:  conv.Document,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if conv.Result != nil {
		rec.Stats = conv.Result.Stats
		rec.Report = conv.Result.Report
	}
	return rec
}

// FailedRecord builds a record for a conversion that returned err.
func FailedRecord(id, title string, status Status, err error, ttl time.Duration) *Record {
	now := time.Now()
	return &Record{
		ID:        id,
		Title:     title,
		Status:    status,
		Error:     err.Error(),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// Store is the interface for conversion record backends.
type Store interface {
	// Get retrieves a record by ID. It returns ErrNotFound when the record
	// does not exist or has expired.
	Get(ctx context.Context, id string) (*Record, error)

	// Put stores a record, replacing any record with the same ID.
	Put(ctx context.Context, rec *Record) error

	// Delete removes a record. Deleting a missing record is not an error.
	Delete(ctx context.Context, id string) error

	// List returns up to limit unexpired records, newest first.
	List(ctx context.Context, limit int) ([]*Record, error)

	// Cleanup removes expired records and returns how many were removed.
	Cleanup(ctx context.Context) (int, error)

	Close() error
}
