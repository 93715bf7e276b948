// Package bounce implements the bounce-suppression registry.
//
// Addresses that produced delivery failures are recorded in a shared
// key-value table and treated as suppressed until the record expires.
// The registry only reads and refreshes records; initial records are
// written by the bounce-webhook ingester when a provider reports a
// permanent delivery failure.
//
// The suppression window slides: every positive lookup re-anchors the
// record's expiry to now plus the full window. An address that keeps being
// checked before expiry therefore stays suppressed indefinitely. This is
// deliberate, observable behavior and must not be changed to a fixed-origin
// TTL.
//
// The registry distinguishes two failure modes: no table configured is a
// safe no-op (checks report "not suppressed" without touching the network),
// while a configured table that errors surfaces ErrStoreUnavailable so a
// store outage can never silently let mail through to a known-bad address.
package bounce
