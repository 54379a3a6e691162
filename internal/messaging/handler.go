// Package messaging is the HTTP face of the WhatsApp webhook: verification
// handshake, signature checking, and dispatch into the conversation engine.
package messaging

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/cuure-health/booking-bot/internal/conversation"
	"github.com/cuure-health/booking-bot/internal/observability/metrics"
	"github.com/cuure-health/booking-bot/internal/whatsapp"
	"github.com/cuure-health/booking-bot/pkg/logging"
)

var messagingTracer = otel.Tracer("cuure.internal.messaging")

// ConversationEngine processes one inbound event.
type ConversationEngine interface {
	Handle(ctx context.Context, from string, ev conversation.Event)
}

// Handler serves the webhook endpoints.
type Handler struct {
	engine      ConversationEngine
	verifyToken string
	appSecret   string
	metrics     *metrics.MessagingMetrics
	logger      *logging.Logger
}

// NewHandler wires a webhook handler. An empty appSecret disables signature
// checking.
func NewHandler(engine ConversationEngine, verifyToken, appSecret string, m *metrics.MessagingMetrics, logger *logging.Logger) *Handler {
	if engine == nil {
		panic("messaging: conversation engine required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		engine:      engine,
		verifyToken: verifyToken,
		appSecret:   appSecret,
		metrics:     m,
		logger:      logger,
	}
}

// VerifyWebhook answers the Meta subscription handshake: echo hub.challenge
// when the mode and token match, 403 otherwise.
func (h *Handler) VerifyWebhook(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("hub.mode")
	token := r.URL.Query().Get("hub.verify_token")
	challenge := r.URL.Query().Get("hub.challenge")

	if mode == "subscribe" && token == h.verifyToken {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, challenge)
		return
	}
	h.logger.Warn("webhook verification rejected", "mode", mode)
	http.Error(w, "Forbidden", http.StatusForbidden)
}

// InboundWebhook accepts a webhook delivery. Invalid signatures are rejected;
// everything else is acknowledged with 200 so Meta does not retry, and
// non-message deliveries are dropped silently.
func (h *Handler) InboundWebhook(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, span := messagingTracer.Start(r.Context(), "messaging.inbound_webhook")
	defer span.End()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.metrics.ObserveInbound("read_error")
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if h.appSecret != "" {
		if !whatsapp.ValidateSignature(h.appSecret, body, r.Header.Get("X-Hub-Signature-256")) {
			h.metrics.ObserveInbound("bad_signature")
			h.logger.Warn("webhook signature rejected")
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
	}

	msg, ok := whatsapp.ParseWebhook(body)
	if !ok {
		// Status callbacks and other non-message deliveries.
		h.metrics.ObserveInbound("ignored")
		w.WriteHeader(http.StatusOK)
		return
	}
	span.SetAttributes(attribute.String("cuure.webhook.from", msg.From))

	var ev conversation.Event
	if msg.InteractiveID != "" {
		ev = conversation.SelectionEvent(msg.InteractiveID)
	} else {
		ev = conversation.TextEvent(msg.Text)
	}

	h.engine.Handle(ctx, msg.From, ev)

	h.metrics.ObserveInbound("handled")
	h.metrics.ObserveWebhookLatency(time.Since(start).Seconds())
	w.WriteHeader(http.StatusOK)
}

// HealthCheck reports liveness.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, `{"status":"ok"}`)
}
