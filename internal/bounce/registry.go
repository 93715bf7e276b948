package bounce

import (
	"context"
	"fmt"
	"time"

	"github.com/ignite/mailgate/internal/domain"
	"github.com/ignite/mailgate/internal/pkg/logger"
)

// Registry answers "is this address currently suppressed?" and extends the
// suppression window as a side effect of every positive answer. It is safe
// for concurrent use; per-key atomicity is delegated to the store, and
// because each refresh writes an absolute deadline derived from its own
// clock, concurrent refreshes resolve as last-write-wins.
type Registry struct {
	store Store
}

// NewRegistry creates a registry backed by the given store. A nil store puts
// the registry in degraded mode: every check reports "not suppressed" without
// issuing any store call.
func NewRegistry(store Store) *Registry {
	return &Registry{store: store}
}

// Enabled reports whether a backing store is configured.
func (r *Registry) Enabled() bool {
	return r.store != nil
}

// CheckAndRefresh reports whether address is currently suppressed. On a hit
// it re-anchors the record's expiry to now plus the full suppression window
// before returning true. On a miss nothing is written. The address key is
// used exactly as received.
func (r *Registry) CheckAndRefresh(ctx context.Context, address string) (bool, error) {
	if r.store == nil {
		return false, nil
	}

	rec, err := r.store.Get(ctx, address)
	if err != nil {
		return false, fmt.Errorf("%w: lookup %s: %v", ErrStoreUnavailable, logger.RedactEmail(address), err)
	}
	if rec == nil {
		return false, nil
	}

	until := time.Now().Add(domain.SuppressionWindow).Unix()
	if err := r.store.Refresh(ctx, address, until); err != nil {
		return false, fmt.Errorf("%w: refresh %s: %v", ErrStoreUnavailable, logger.RedactEmail(address), err)
	}

	logger.Debug("bounce suppression refreshed", "address", address, "suppressed_until", until)
	return true, nil
}

// Record writes (or re-anchors) a bounce record for address, suppressing it
// for the full window from now. This is the ingestion path used by the
// bounce webhook; the check path never creates records. In degraded mode the
// signal is dropped with a warning.
func (r *Registry) Record(ctx context.Context, address string) error {
	if r.store == nil {
		logger.Warn("bounce signal dropped, no bounce table configured", "address", address)
		return nil
	}

	until := time.Now().Add(domain.SuppressionWindow).Unix()
	if err := r.store.Refresh(ctx, address, until); err != nil {
		return fmt.Errorf("%w: record %s: %v", ErrStoreUnavailable, logger.RedactEmail(address), err)
	}

	logger.Info("bounce recorded", "address", address, "suppressed_until", until)
	return nil
}
