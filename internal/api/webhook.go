package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/ignite/mailgate/internal/domain"
	"github.com/ignite/mailgate/internal/pkg/logger"
)

const maxWebhookBody = 1 << 20

// BounceWebhook ingests bounce notifications from the delivery provider.
// It accepts either a plain JSON payload {"email": ..., "bounceType": ...}
// or an SES SNS envelope with the notification JSON nested in Message.
// Permanent bounces create a suppression record; transient bounces are
// logged and dropped.
func (h *Handlers) BounceWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read error")
		return
	}

	recipients, bounceType := parseBounceNotification(body)
	if len(recipients) == 0 {
		writeError(w, http.StatusBadRequest, "no recipient found")
		return
	}

	if !strings.EqualFold(bounceType, string(domain.BouncePermanent)) {
		logger.Info("transient bounce ignored", "recipients", len(recipients), "bounce_type", bounceType)
		writeJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
		return
	}

	recorded := 0
	for _, addr := range recipients {
		if err := h.bounces.Record(r.Context(), addr); err != nil {
			logger.Error("bounce record failed", "email", addr, "error", err.Error())
			writeError(w, http.StatusServiceUnavailable, "suppression store unavailable")
			return
		}
		logger.Info("bounce recorded", "email", addr)
		recorded++
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"status": "processed", "recorded": recorded})
}

// parseBounceNotification extracts bounced recipients and the bounce type
// from either payload shape.
func parseBounceNotification(body []byte) ([]string, string) {
	var envelope struct {
		Type    string `json:"Type"`
		Message string `json:"Message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Type == "Notification" {
		body = []byte(envelope.Message)
	}

	var notification struct {
		NotificationType string `json:"notificationType"`
		Bounce           struct {
			BounceType        string `json:"bounceType"`
			BouncedRecipients []struct {
				EmailAddress string `json:"emailAddress"`
			} `json:"bouncedRecipients"`
		} `json:"bounce"`
		Email      string `json:"email"`
		BounceType string `json:"bounceType"`
	}
	if err := json.Unmarshal(body, &notification); err != nil {
		return nil, ""
	}

	if notification.NotificationType == "Bounce" {
		var addrs []string
		for _, r := range notification.Bounce.BouncedRecipients {
			if r.EmailAddress != "" {
				addrs = append(addrs, r.EmailAddress)
			}
		}
		return addrs, notification.Bounce.BounceType
	}

	if notification.Email != "" {
		return []string{notification.Email}, notification.BounceType
	}
	return nil, ""
}
