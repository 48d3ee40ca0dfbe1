package billing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"consultoc-api/internal/domain/billing"
	"consultoc-api/internal/domain/plans"
	"consultoc-api/internal/domain/valuations"
	stripeinfra "consultoc-api/internal/infra/stripe"
	"consultoc-api/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type CheckoutGateway interface {
	CreateCheckoutSession(ctx context.Context, req stripeinfra.CheckoutRequest) (stripeinfra.Session, error)
}

type ValuationFinder interface {
	Get(ctx context.Context, id string) (valuations.Valuation, error)
}

type PaymentLister interface {
	List(ctx context.Context) ([]billing.Payment, error)
}

type Handler struct {
	gateway    CheckoutGateway
	valuations ValuationFinder
	payments   PaymentLister
	log        zerolog.Logger
}

func NewHandler(gateway CheckoutGateway, finder ValuationFinder, payments PaymentLister, log zerolog.Logger) *Handler {
	return &Handler{
		gateway:    gateway,
		valuations: finder,
		payments:   payments,
		log:        log.With().Str("component", "billing_api").Logger(),
	}
}

type checkoutRequest struct {
	Plano       string `json:"plano" form:"plano"`
	Plan        string `json:"plan" form:"plan"`
	ValuationID string `json:"valuation_id" form:"valuation_id"`
	Email       string `json:"email" form:"email"`
}

func (r checkoutRequest) planName() string {
	if v := strings.TrimSpace(r.Plano); v != "" {
		return v
	}
	return strings.TrimSpace(r.Plan)
}

// CreateCheckoutSession opens a Stripe Checkout for a catalog plan or for
// the report of a stored valuation. Body and query string are both read.
func (h *Handler) CreateCheckoutSession(c *gin.Context) {
	var body checkoutRequest
	if err := c.ShouldBindQuery(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query"})
		return
	}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
			return
		}
	}

	valuationID := strings.TrimSpace(body.ValuationID)
	name := body.planName()
	if name == "" && valuationID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing plano or valuation_id"})
		return
	}
	if name == "" {
		name = plans.ReportPlan
	}

	plan, err := plans.Lookup(name)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown plan"})
		return
	}

	if valuationID != "" {
		if _, err := h.valuations.Get(c.Request.Context(), valuationID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Valuation not found"})
				return
			}
			h.log.Error().Err(err).Str("valuation_id", valuationID).Msg("valuation lookup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load valuation"})
			return
		}
	}

	s, err := h.gateway.CreateCheckoutSession(c.Request.Context(), stripeinfra.CheckoutRequest{
		Plan:          plan,
		ValuationID:   valuationID,
		CustomerEmail: strings.TrimSpace(body.Email),
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create checkout session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"checkout_url": s.URL, "session_id": s.ID})
}

// ListPlans exposes the static price table.
func (h *Handler) ListPlans(c *gin.Context) {
	c.JSON(http.StatusOK, plans.Catalog())
}
