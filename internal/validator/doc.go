// Package validator implements active email validation: syntax, disposable
// domain, MX, and live SMTP probing, each independently toggleable. Results
// may be cached in Redis so repeated signups with the same address do not
// re-probe; the cache is advisory and falls through to a live check on any
// Redis error.
package validator
