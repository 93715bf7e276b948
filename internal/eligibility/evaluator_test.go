package eligibility

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/ignite/mailgate/internal/bounce"
	"github.com/ignite/mailgate/internal/domain"
	"github.com/ignite/mailgate/internal/validator"
)

type fakeBounces struct {
	hit bool
	err error
}

func (f *fakeBounces) CheckAndRefresh(_ context.Context, _ string) (bool, error) {
	return f.hit, f.err
}

type fakeAccounts struct {
	count int
	err   error
}

func (f *fakeAccounts) CountVerified(_ context.Context, _ string) (int, error) {
	return f.count, f.err
}

type fakeChecker struct {
	res   validator.Result
	err   error
	calls int32
}

func (f *fakeChecker) Check(_ context.Context, _ string) (validator.Result, error) {
	atomic.AddInt32(&f.calls, 1)
	return f.res, f.err
}

func valid() *fakeChecker { return &fakeChecker{res: validator.Result{Valid: true}} }

func failing(r domain.Reason) *fakeChecker {
	return &fakeChecker{res: validator.Result{Reason: r}}
}

func TestEvaluate_AllClear(t *testing.T) {
	e := NewEvaluator(&fakeBounces{}, &fakeAccounts{}, valid(), true)

	v, err := e.Evaluate(context.Background(), "new@example.com")
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !v.Available || v.Reason != domain.ReasonNone {
		t.Errorf("verdict = %+v, want available with no reason", v)
	}
}

func TestEvaluate_UsedBeatsEverything(t *testing.T) {
	// Address taken, suppressed, and malformed all at once: "used" wins.
	e := NewEvaluator(&fakeBounces{hit: true}, &fakeAccounts{count: 2}, failing(domain.ReasonFormat), true)

	v, err := e.Evaluate(context.Background(), "taken@example.com")
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if v.Available || v.Reason != domain.ReasonUsed {
		t.Errorf("verdict = %+v, want used", v)
	}
}

func TestEvaluate_SuppressionBeatsFormat(t *testing.T) {
	e := NewEvaluator(&fakeBounces{hit: true}, &fakeAccounts{}, failing(domain.ReasonDisposable), true)

	v, err := e.Evaluate(context.Background(), "bounced@example.com")
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if v.Available || v.Reason != domain.ReasonSMTP {
		t.Errorf("verdict = %+v, want smtp for suppressed address", v)
	}
}

func TestEvaluate_FormatReasons(t *testing.T) {
	for _, reason := range []domain.Reason{
		domain.ReasonFormat,
		domain.ReasonDisposable,
		domain.ReasonMX,
		domain.ReasonSMTP,
	} {
		e := NewEvaluator(&fakeBounces{}, &fakeAccounts{}, failing(reason), true)

		v, err := e.Evaluate(context.Background(), "bad@example.com")
		if err != nil {
			t.Fatalf("Evaluate(%s): %v", reason, err)
		}
		if v.Available || v.Reason != reason {
			t.Errorf("verdict = %+v, want reason %q", v, reason)
		}
	}
}

func TestEvaluate_ValidationDisabled(t *testing.T) {
	checker := failing(domain.ReasonFormat)
	e := NewEvaluator(&fakeBounces{}, &fakeAccounts{}, checker, false)

	v, err := e.Evaluate(context.Background(), "not-even-an-address")
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !v.Available {
		t.Errorf("verdict = %+v, want available when validation disabled", v)
	}
	if n := atomic.LoadInt32(&checker.calls); n != 0 {
		t.Errorf("checker calls = %d, want 0", n)
	}
}

func TestEvaluate_StoreOutagePropagates(t *testing.T) {
	storeErr := bounce.ErrStoreUnavailable
	e := NewEvaluator(&fakeBounces{err: storeErr}, &fakeAccounts{}, valid(), true)

	_, err := e.Evaluate(context.Background(), "any@example.com")
	if !errors.Is(err, bounce.ErrStoreUnavailable) {
		t.Fatalf("err = %v, want ErrStoreUnavailable", err)
	}
}

func TestEvaluate_AccountLookupErrorPropagates(t *testing.T) {
	e := NewEvaluator(&fakeBounces{}, &fakeAccounts{err: errors.New("db down")}, valid(), true)

	if _, err := e.Evaluate(context.Background(), "any@example.com"); err == nil {
		t.Fatal("account lookup failure must propagate")
	}
}

func TestEvaluate_CheckerErrorPropagates(t *testing.T) {
	checker := &fakeChecker{err: errors.New("resolver timeout")}
	e := NewEvaluator(&fakeBounces{}, &fakeAccounts{}, checker, true)

	if _, err := e.Evaluate(context.Background(), "any@example.com"); err == nil {
		t.Fatal("format check failure must propagate")
	}
}
