package stripewebhooks

import (
	"context"
	"errors"
	"io"
	"net/http"

	"consultoc-api/internal/domain/billing"
	stripeinfra "consultoc-api/internal/infra/stripe"
	"consultoc-api/internal/notify"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const maxBodyBytes = 65536

type EventParser interface {
	Parse(payload []byte, sigHeader string) (stripeinfra.Event, error)
}

type PaymentRecorder interface {
	Record(ctx context.Context, p billing.Payment) (bool, error)
}

type Handler struct {
	parser   EventParser
	payments PaymentRecorder
	notifier notify.Notifier
	log      zerolog.Logger
}

func NewHandler(parser EventParser, payments PaymentRecorder, notifier notify.Notifier, log zerolog.Logger) *Handler {
	return &Handler{
		parser:   parser,
		payments: payments,
		notifier: notifier,
		log:      log.With().Str("component", "stripe_webhook").Logger(),
	}
}

// StripeWebhook verifies the delivery and dispatches on the event kind.
func (h *Handler) StripeWebhook(c *gin.Context) {
	payload, err := readStripeBody(c, maxBodyBytes)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error reading request body"})
		return
	}

	event, err := h.parser.Parse(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		switch {
		case errors.Is(err, stripeinfra.ErrSignature):
			h.log.Warn().Err(err).Msg("stripe signature verification failed")
			c.JSON(http.StatusBadRequest, gin.H{"error": "Signature verification failed"})
		default:
			h.log.Warn().Err(err).Msg("stripe payload rejected")
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		}
		return
	}

	switch e := event.(type) {
	case stripeinfra.CheckoutCompleted:
		if err := h.handleCheckoutCompleted(c.Request.Context(), e); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success"})

	case stripeinfra.CheckoutExpired:
		h.log.Info().Str("event_id", e.ID).Str("session_id", e.SessionID).Msg("checkout session expired")
		c.JSON(http.StatusOK, gin.H{"status": "success"})

	case stripeinfra.SubscriptionDeleted:
		h.log.Info().Str("event_id", e.ID).Str("subscription_id", e.SubscriptionID).Str("plan", e.Plan).Msg("subscription canceled")
		c.JSON(http.StatusOK, gin.H{"status": "success"})

	default:
		// acknowledge unknown events to avoid retries
		h.log.Debug().Str("event_id", event.EventID()).Str("type", event.EventType()).Msg("stripe event ignored")
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
	}
}

func readStripeBody(c *gin.Context, maxBytes int64) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	return io.ReadAll(c.Request.Body)
}
