package dispatch

import (
	"context"
	"fmt"

	"github.com/ignite/mailgate/internal/pkg/logger"
)

// Message is a fully-rendered outbound email.
type Message struct {
	From     string
	FromName string
	To       string
	Subject  string
	HTML     string
	Text     string
}

// BounceChecker reports whether an address is currently suppressed,
// refreshing the suppression window on a hit.
type BounceChecker interface {
	CheckAndRefresh(ctx context.Context, address string) (bool, error)
}

// Transport hands a message to a delivery provider and returns the
// provider's message id.
type Transport interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// Guard wraps a transport with a bounce-suppression gate.
type Guard struct {
	bounces   BounceChecker
	transport Transport
}

// NewGuard creates a dispatch guard.
func NewGuard(bounces BounceChecker, transport Transport) *Guard {
	return &Guard{bounces: bounces, transport: transport}
}

// Send checks the recipient against the bounce registry and, if clear,
// delegates to the transport. Transport errors are logged and re-raised
// without retry.
func (g *Guard) Send(ctx context.Context, msg Message) (string, error) {
	suppressed, err := g.bounces.CheckAndRefresh(ctx, msg.To)
	if err != nil {
		return "", err
	}
	if suppressed {
		logger.Info("send refused for suppressed recipient", "to", logger.RedactEmail(msg.To))
		return "", fmt.Errorf("%w: %s", ErrSuppressedRecipient, logger.RedactEmail(msg.To))
	}

	id, err := g.transport.Send(ctx, msg)
	if err != nil {
		logger.Error("transport send failed", "to", logger.RedactEmail(msg.To), "error", err.Error())
		return "", fmt.Errorf("%w: %v", ErrTransportFailure, err)
	}

	logger.Info("message dispatched", "to", logger.RedactEmail(msg.To), "message_id", id)
	return id, nil
}
