// Package store persists computed summary tables keyed by the source
// snapshot hash, so repeated runs against the same ontology release can be
// served without recomputation and historical releases stay queryable.
package store

import (
	"context"
	"time"

	"github.com/mhalvors/golevels/pkg/summary"
)

// Entry is one stored summary table with its provenance.
type Entry struct {
	// Snapshot is the SHA-256 hash of the source OBO file.
	Snapshot string `json:"snapshot" bson:"snapshot"`

	// DataVersion is the data-version header of the source, when present.
	DataVersion string `json:"data_version" bson:"data_version"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`

	Table *summary.Table `json:"table" bson:"table"`
}

// Info is the provenance of a stored entry without its table.
type Info struct {
	Snapshot    string    `json:"snapshot" bson:"snapshot"`
	DataVersion string    `json:"data_version" bson:"data_version"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	Rows        int       `json:"rows" bson:"rows"`
}

// Store is a persistent summary-table archive. Saving an entry for an
// existing snapshot replaces it.
type Store interface {
	Save(ctx context.Context, e Entry) error

	// Load returns the entry for a snapshot hash. A missing snapshot
	// carries the NOT_FOUND error code.
	Load(ctx context.Context, snapshot string) (*Entry, error)

	// List returns provenance for every stored entry, newest first.
	List(ctx context.Context) ([]Info, error)

	Close(ctx context.Context) error
}
