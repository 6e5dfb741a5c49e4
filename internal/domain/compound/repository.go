package compound

import (
	"context"

	"github.com/turtacn/stilbar/pkg/types/common"
	ctypes "github.com/turtacn/stilbar/pkg/types/compound"
)

// Repository is the persistence contract for the compound library.
// Implementations: PostgreSQL (primary), CSV file store (seed import/export).
type Repository interface {
	// Save inserts a compound.  Returns a Conflict error when a compound
	// with the same hash already exists.
	Save(ctx context.Context, c *Compound) error

	// GetByHash returns the compound with the given hash ID, or a NotFound
	// error.
	GetByHash(ctx context.Context, hash string) (*Compound, error)

	// GetByCode returns the compound whose normalized code matches, or a
	// NotFound error.
	GetByCode(ctx context.Context, normalizedCode string) (*Compound, error)

	// List returns one page of compounds ordered by sequence number, plus
	// the total count.
	List(ctx context.Context, p common.Pagination) ([]*Compound, int, error)

	// All returns every compound ordered by sequence number.
	All(ctx context.Context) ([]*Compound, error)

	// Delete removes the compound with the given hash.  Returns a NotFound
	// error when no such compound exists.
	Delete(ctx context.Context, hash string) error

	// Stats returns library counts.
	Stats(ctx context.Context) (ctypes.LibraryStats, error)
}
