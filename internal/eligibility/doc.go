// Package eligibility decides whether a candidate address may be attached
// to an account. It combines three independent signals: whether the address
// is already verified elsewhere, whether it is bounce-suppressed, and
// whether it passes format validation. The signals are fetched
// concurrently; the verdict's reason code follows a fixed precedence.
package eligibility
