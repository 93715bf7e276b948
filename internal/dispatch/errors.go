package dispatch

import "errors"

var (
	// ErrSuppressedRecipient means the recipient is bounce-suppressed
	// and the send was refused before reaching the transport.
	ErrSuppressedRecipient = errors.New("recipient is bounce-suppressed")

	// ErrTransportFailure wraps a delivery-provider error.
	ErrTransportFailure = errors.New("mail transport failure")
)
