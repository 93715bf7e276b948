package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ignite/mailgate/internal/bounce"
	"github.com/ignite/mailgate/internal/dispatch"
	"github.com/ignite/mailgate/internal/domain"
	"github.com/ignite/mailgate/internal/mailtemplate"
	"github.com/ignite/mailgate/internal/pkg/logger"
)

// Evaluator decides address eligibility.
type Evaluator interface {
	Evaluate(ctx context.Context, address string) (domain.Verdict, error)
}

// Sender performs a guarded send.
type Sender interface {
	Send(ctx context.Context, msg dispatch.Message) (string, error)
}

// BounceRecorder creates suppression records from bounce notifications.
type BounceRecorder interface {
	Record(ctx context.Context, address string) error
}

// Handlers holds the HTTP handler dependencies.
type Handlers struct {
	evaluator Evaluator
	sender    Sender
	bounces   BounceRecorder
	templates *mailtemplate.Engine
	site      mailtemplate.Site
}

// NewHandlers wires the handler dependencies.
func NewHandlers(evaluator Evaluator, sender Sender, bounces BounceRecorder, templates *mailtemplate.Engine, site mailtemplate.Site) *Handlers {
	return &Handlers{
		evaluator: evaluator,
		sender:    sender,
		bounces:   bounces,
		templates: templates,
		site:      site,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// Health reports liveness.
func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type eligibilityRequest struct {
	Email string `json:"email"`
}

// CheckEligibility evaluates an address and returns the verdict.
func (h *Handlers) CheckEligibility(w http.ResponseWriter, r *http.Request) {
	var req eligibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	verdict, err := h.evaluator.Evaluate(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, bounce.ErrStoreUnavailable) {
			writeError(w, http.StatusServiceUnavailable, "suppression store unavailable")
			return
		}
		logger.Error("eligibility evaluation failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "evaluation failed")
		return
	}

	writeJSON(w, http.StatusOK, verdict)
}

type sendRequest struct {
	To       string                 `json:"to"`
	Subject  string                 `json:"subject"`
	Template string                 `json:"template,omitempty"`
	Data     map[string]interface{} `json:"data,omitempty"`
	HTML     string                 `json:"html,omitempty"`
	Text     string                 `json:"text,omitempty"`
}

// Send renders the message body if a template is named, then hands the
// message to the guarded sender.
func (h *Handlers) Send(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.To == "" || req.Subject == "" {
		writeError(w, http.StatusBadRequest, "to and subject are required")
		return
	}
	if req.Template == "" && req.HTML == "" {
		writeError(w, http.StatusBadRequest, "template or html is required")
		return
	}

	html := req.HTML
	if req.Template != "" {
		rendered, err := h.templates.Render(req.Template, req.Data)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		html = rendered
	}

	msg := dispatch.Message{
		From:     h.site.SenderAddress,
		FromName: h.site.SenderName,
		To:       req.To,
		Subject:  req.Subject,
		HTML:     html,
		Text:     req.Text,
	}

	id, err := h.sender.Send(r.Context(), msg)
	if err != nil {
		switch {
		case errors.Is(err, dispatch.ErrSuppressedRecipient):
			writeError(w, http.StatusConflict, "recipient is suppressed")
		case errors.Is(err, bounce.ErrStoreUnavailable):
			writeError(w, http.StatusServiceUnavailable, "suppression store unavailable")
		case errors.Is(err, dispatch.ErrTransportFailure):
			writeError(w, http.StatusBadGateway, "delivery provider error")
		default:
			logger.Error("send failed", "error", err.Error())
			writeError(w, http.StatusInternalServerError, "send failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message_id": id})
}
