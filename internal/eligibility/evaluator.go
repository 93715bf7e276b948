package eligibility

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ignite/mailgate/internal/domain"
	"github.com/ignite/mailgate/internal/pkg/logger"
	"github.com/ignite/mailgate/internal/validator"
)

// errNoReason fires when a verdict is unavailable but no rule produced a
// reason code. It indicates a bug, not a caller error.
var errNoReason = errors.New("unavailable verdict produced no reason code")

// BounceChecker reports whether an address is currently suppressed,
// refreshing the suppression window on a hit.
type BounceChecker interface {
	CheckAndRefresh(ctx context.Context, address string) (bool, error)
}

// AccountDirectory counts accounts on which an address is already verified.
type AccountDirectory interface {
	CountVerified(ctx context.Context, address string) (int, error)
}

// FormatChecker validates an address's syntax, domain and mailbox.
type FormatChecker interface {
	Check(ctx context.Context, address string) (validator.Result, error)
}

// Evaluator produces eligibility verdicts for candidate addresses.
type Evaluator struct {
	bounces  BounceChecker
	accounts AccountDirectory
	checker  FormatChecker
	validate bool
}

// NewEvaluator creates an evaluator. When validate is false the format
// checker is never consulted and addresses are treated as well-formed.
func NewEvaluator(bounces BounceChecker, accounts AccountDirectory, checker FormatChecker, validate bool) *Evaluator {
	return &Evaluator{
		bounces:  bounces,
		accounts: accounts,
		checker:  checker,
		validate: validate,
	}
}

// Evaluate gathers the three signals concurrently and returns a verdict.
// Any collaborator failure aborts the evaluation; the caller decides how
// to degrade.
func (e *Evaluator) Evaluate(ctx context.Context, address string) (domain.Verdict, error) {
	var (
		used       int
		suppressed bool
		format     = validator.Result{Valid: true}
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := e.accounts.CountVerified(gctx, address)
		if err != nil {
			return fmt.Errorf("account lookup: %w", err)
		}
		used = n
		return nil
	})

	g.Go(func() error {
		hit, err := e.bounces.CheckAndRefresh(gctx, address)
		if err != nil {
			return err
		}
		suppressed = hit
		return nil
	})

	if e.validate && e.checker != nil {
		g.Go(func() error {
			res, err := e.checker.Check(gctx, address)
			if err != nil {
				return fmt.Errorf("format check: %w", err)
			}
			format = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.Verdict{}, err
	}

	if used == 0 && format.Valid && !suppressed {
		return domain.Verdict{Available: true}, nil
	}

	var reason domain.Reason
	switch {
	case used != 0:
		reason = domain.ReasonUsed
	case suppressed:
		reason = domain.ReasonSMTP
	case format.Reason != domain.ReasonNone:
		reason = format.Reason
	default:
		logger.Error("eligibility invariant violated", "address", logger.RedactEmail(address))
		return domain.Verdict{}, errNoReason
	}

	return domain.Verdict{Available: false, Reason: reason}, nil
}
