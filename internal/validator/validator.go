package validator

import (
	"context"
	"errors"
	"fmt"
	"net"
	"regexp"
	"strings"

	"github.com/ignite/mailgate/internal/domain"
	"github.com/ignite/mailgate/internal/pkg/logger"
)

// Options selects which checks run. Checks run in cost order: syntax, then
// disposable, then MX, then the SMTP probe.
type Options struct {
	CheckRegex      bool
	CheckMX         bool
	CheckDisposable bool
	CheckSMTP       bool
}

// Result is the outcome of a validation. Reason is ReasonNone when Valid.
type Result struct {
	Valid  bool          `json:"valid"`
	Reason domain.Reason `json:"reason,omitempty"`
}

// Resolver looks up MX records. Extracted so tests can stub DNS.
type Resolver interface {
	LookupMX(ctx context.Context, domain string) ([]*net.MX, error)
}

// Prober performs a live SMTP recipient check against a mail exchanger.
// It returns ErrRecipientRejected when the server refuses the mailbox, or
// a transport error when the probe itself could not complete.
type Prober interface {
	Probe(ctx context.Context, host, from, to string) error
}

var addressRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Validator runs the configured checks for a candidate address.
type Validator struct {
	opts       Options
	disposable map[string]struct{}
	resolver   Resolver
	prober     Prober
	cache      *Cache
	probeFrom  string
}

// New creates a validator. extraDisposable is merged with the built-in
// disposable-domain seed list; cache may be nil.
func New(opts Options, extraDisposable []string, probeHELO, probeFrom string, cache *Cache) *Validator {
	set := make(map[string]struct{}, len(seedDisposableDomains)+len(extraDisposable))
	for _, d := range seedDisposableDomains {
		set[d] = struct{}{}
	}
	for _, d := range extraDisposable {
		set[strings.ToLower(strings.TrimSpace(d))] = struct{}{}
	}

	return &Validator{
		opts:       opts,
		disposable: set,
		resolver:   &netResolver{},
		prober:     &netProber{helo: probeHELO},
		cache:      cache,
		probeFrom:  probeFrom,
	}
}

// Check validates an address against the enabled checks. A cached result is
// returned when available; Redis failures are logged and ignored.
func (v *Validator) Check(ctx context.Context, address string) (Result, error) {
	if v.cache != nil {
		if res, ok, err := v.cache.Get(ctx, address); err != nil {
			logger.Warn("validation cache read failed", "error", err.Error())
		} else if ok {
			return res, nil
		}
	}

	res, err := v.check(ctx, address)
	if err != nil {
		return Result{}, err
	}

	if v.cache != nil {
		if err := v.cache.Set(ctx, address, res); err != nil {
			logger.Warn("validation cache write failed", "error", err.Error())
		}
	}
	return res, nil
}

func (v *Validator) check(ctx context.Context, address string) (Result, error) {
	_, dom, ok := splitAddress(address)

	if v.opts.CheckRegex {
		if !ok || !addressRegex.MatchString(address) {
			return Result{Reason: domain.ReasonFormat}, nil
		}
	} else if !ok {
		// Later checks need a domain part regardless of the regex toggle.
		return Result{Reason: domain.ReasonFormat}, nil
	}

	if v.opts.CheckDisposable {
		if _, bad := v.disposable[strings.ToLower(dom)]; bad {
			return Result{Reason: domain.ReasonDisposable}, nil
		}
	}

	var mxHost string
	if v.opts.CheckMX || v.opts.CheckSMTP {
		host, reason, err := v.bestMX(ctx, dom)
		if err != nil {
			return Result{}, err
		}
		if reason != domain.ReasonNone {
			if v.opts.CheckMX {
				return Result{Reason: reason}, nil
			}
			// MX check disabled but the probe has nowhere to connect.
			return Result{Reason: domain.ReasonSMTP}, nil
		}
		mxHost = host
	}

	if v.opts.CheckSMTP {
		err := v.prober.Probe(ctx, mxHost, v.probeFrom, address)
		if errors.Is(err, ErrRecipientRejected) {
			return Result{Reason: domain.ReasonSMTP}, nil
		}
		if err != nil {
			return Result{}, fmt.Errorf("smtp probe via %s: %w", mxHost, err)
		}
	}

	return Result{Valid: true}, nil
}

// bestMX resolves the preferred mail exchanger for dom. A definitive
// "no such domain / no MX" answer maps to ReasonMX; resolver transport
// failures propagate as errors.
func (v *Validator) bestMX(ctx context.Context, dom string) (string, domain.Reason, error) {
	mxs, err := v.resolver.LookupMX(ctx, dom)
	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
			return "", domain.ReasonMX, nil
		}
		return "", domain.ReasonNone, fmt.Errorf("mx lookup %s: %w", dom, err)
	}
	if len(mxs) == 0 {
		return "", domain.ReasonMX, nil
	}
	// LookupMX returns records sorted by preference.
	return strings.TrimSuffix(mxs[0].Host, "."), domain.ReasonNone, nil
}

func splitAddress(address string) (local, dom string, ok bool) {
	at := strings.LastIndex(address, "@")
	if at <= 0 || at == len(address)-1 {
		return "", "", false
	}
	return address[:at], address[at+1:], true
}

type netResolver struct{}

func (netResolver) LookupMX(ctx context.Context, dom string) ([]*net.MX, error) {
	return net.DefaultResolver.LookupMX(ctx, dom)
}
