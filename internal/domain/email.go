package domain

import "time"

// Reason explains why an address was judged unavailable. The values form a
// fixed precedence order; see eligibility.Evaluator for the decision table.
type Reason string

const (
	// ReasonNone means the address is available. It is the zero value so an
	// available verdict marshals without a reason field.
	ReasonNone Reason = ""

	// ReasonUsed means the address is already verified on another account.
	ReasonUsed Reason = "used"

	// ReasonFormat means the address failed syntax validation.
	ReasonFormat Reason = "format"

	// ReasonDisposable means the address belongs to a throwaway-mail domain.
	ReasonDisposable Reason = "disposable"

	// ReasonMX means the address domain publishes no usable MX records.
	ReasonMX Reason = "mx"

	// ReasonSMTP covers two conditions: the address is suppressed by the
	// bounce registry, or a live SMTP probe rejected the mailbox. External
	// consumers of the reason code depend on this shared value, so the two
	// are deliberately not split.
	ReasonSMTP Reason = "smtp"
)

// Verdict is the result of an eligibility evaluation.
type Verdict struct {
	Available bool   `json:"available"`
	Reason    Reason `json:"reason,omitempty"`
}

// BounceCategory is the fixed sort-key discriminator for bounce records,
// allowing them to share a table with other per-address record kinds.
const BounceCategory = "BOUNCE_INFO"

// SuppressionWindow is how long a bounced address stays suppressed after the
// most recent check. The window slides: every positive lookup re-anchors it.
const SuppressionWindow = 7 * 24 * time.Hour

// BounceRecord is a single entry in the bounce table. The address key is used
// exactly as received from the bounce signal; no normalization is applied.
// SuppressedUntil is registered as the table's TTL attribute, so expiry is
// handled by the store itself rather than by application filtering.
type BounceRecord struct {
	Address         string `json:"address" dynamodbav:"PK"`
	Category        string `json:"category" dynamodbav:"SK"`
	SuppressedUntil int64  `json:"suppressed_until" dynamodbav:"suppressed_until"`
}

// BounceType classifies an inbound bounce notification.
type BounceType string

const (
	BouncePermanent BounceType = "Permanent"
	BounceTransient BounceType = "Transient"
)
