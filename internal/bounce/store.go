package bounce

import (
	"context"

	"github.com/ignite/mailgate/internal/domain"
)

// Store defines the data access contract for the bounce table.
type Store interface {
	// Get returns the bounce record for the address, or nil if none exists.
	// Expiry is the store's concern; a record still visible is still
	// suppressing.
	Get(ctx context.Context, address string) (*domain.BounceRecord, error)

	// Refresh sets the record's suppressed_until deadline (Unix seconds).
	// Create-if-absent semantics: refreshing a missing record creates it.
	Refresh(ctx context.Context, address string, until int64) error
}
