package validator

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/ignite/mailgate/internal/domain"
)

type fakeResolver struct {
	mxs []*net.MX
	err error
}

func (f *fakeResolver) LookupMX(_ context.Context, _ string) ([]*net.MX, error) {
	return f.mxs, f.err
}

type fakeProber struct {
	err   error
	calls int
	host  string
}

func (f *fakeProber) Probe(_ context.Context, host, _, _ string) error {
	f.calls++
	f.host = host
	return f.err
}

func allChecks() Options {
	return Options{CheckRegex: true, CheckMX: true, CheckDisposable: true, CheckSMTP: true}
}

func newTestValidator(opts Options, resolver Resolver, prober Prober) *Validator {
	v := New(opts, []string{"burner.example"}, "gate.example.com", "postmaster@example.com", nil)
	if resolver != nil {
		v.resolver = resolver
	}
	if prober != nil {
		v.prober = prober
	}
	return v
}

func TestCheck_InvalidSyntax(t *testing.T) {
	v := newTestValidator(Options{CheckRegex: true}, nil, nil)

	for _, addr := range []string{"", "plain", "no-at-sign.example.com", "@example.com", "user@", "user@nodot"} {
		res, err := v.Check(context.Background(), addr)
		if err != nil {
			t.Fatalf("Check(%q): %v", addr, err)
		}
		if res.Valid || res.Reason != domain.ReasonFormat {
			t.Errorf("Check(%q) = %+v, want format failure", addr, res)
		}
	}
}

func TestCheck_DisposableDomain(t *testing.T) {
	v := newTestValidator(Options{CheckRegex: true, CheckDisposable: true}, nil, nil)

	res, err := v.Check(context.Background(), "abuser@mailinator.com")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if res.Reason != domain.ReasonDisposable {
		t.Errorf("reason = %q, want disposable", res.Reason)
	}

	// Configured extras merge with the seed list, case-insensitively.
	res, err = v.Check(context.Background(), "abuser@Burner.Example")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if res.Reason != domain.ReasonDisposable {
		t.Errorf("reason = %q, want disposable for configured extra", res.Reason)
	}
}

func TestCheck_NoMXRecords(t *testing.T) {
	v := newTestValidator(allChecks(), &fakeResolver{mxs: nil}, &fakeProber{})

	res, err := v.Check(context.Background(), "user@nomx.example.com")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if res.Reason != domain.ReasonMX {
		t.Errorf("reason = %q, want mx", res.Reason)
	}
}

func TestCheck_MXNotFound(t *testing.T) {
	dnsErr := &net.DNSError{Err: "no such host", IsNotFound: true}
	v := newTestValidator(allChecks(), &fakeResolver{err: dnsErr}, &fakeProber{})

	res, err := v.Check(context.Background(), "user@missing.example.com")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if res.Reason != domain.ReasonMX {
		t.Errorf("reason = %q, want mx", res.Reason)
	}
}

func TestCheck_MXResolverOutagePropagates(t *testing.T) {
	v := newTestValidator(allChecks(), &fakeResolver{err: errors.New("i/o timeout")}, &fakeProber{})

	if _, err := v.Check(context.Background(), "user@example.com"); err == nil {
		t.Fatal("resolver transport failure must propagate, not pass validation")
	}
}

func TestCheck_SMTPRejection(t *testing.T) {
	resolver := &fakeResolver{mxs: []*net.MX{{Host: "mx1.example.com.", Pref: 10}}}
	prober := &fakeProber{err: ErrRecipientRejected}
	v := newTestValidator(allChecks(), resolver, prober)

	res, err := v.Check(context.Background(), "ghost@example.com")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if res.Reason != domain.ReasonSMTP {
		t.Errorf("reason = %q, want smtp", res.Reason)
	}
	if prober.host != "mx1.example.com" {
		t.Errorf("probe host = %q, want trailing dot stripped", prober.host)
	}
}

func TestCheck_SMTPTransportErrorPropagates(t *testing.T) {
	resolver := &fakeResolver{mxs: []*net.MX{{Host: "mx1.example.com."}}}
	prober := &fakeProber{err: errors.New("connection timed out")}
	v := newTestValidator(allChecks(), resolver, prober)

	if _, err := v.Check(context.Background(), "user@example.com"); err == nil {
		t.Fatal("probe transport failure must propagate")
	}
}

func TestCheck_AllClear(t *testing.T) {
	resolver := &fakeResolver{mxs: []*net.MX{{Host: "mx1.example.com."}}}
	prober := &fakeProber{}
	v := newTestValidator(allChecks(), resolver, prober)

	res, err := v.Check(context.Background(), "real.person@example.com")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !res.Valid || res.Reason != domain.ReasonNone {
		t.Errorf("result = %+v, want valid", res)
	}
	if prober.calls != 1 {
		t.Errorf("probe calls = %d, want 1", prober.calls)
	}
}

func TestCheck_DisabledChecksSkipped(t *testing.T) {
	// Everything off: even a junk domain passes without any network calls.
	resolver := &fakeResolver{err: errors.New("must not be called")}
	prober := &fakeProber{err: errors.New("must not be called")}
	v := newTestValidator(Options{}, resolver, prober)

	res, err := v.Check(context.Background(), "abuser@mailinator.com")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !res.Valid {
		t.Errorf("result = %+v, want valid when all checks disabled", res)
	}
	if prober.calls != 0 {
		t.Errorf("probe calls = %d, want 0", prober.calls)
	}
}
