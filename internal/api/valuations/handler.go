package valuations

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"consultoc-api/internal/domain/valuations"
	"consultoc-api/internal/estimator"
	"consultoc-api/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type Store interface {
	Create(ctx context.Context, in store.NewValuation) (valuations.Valuation, error)
	List(ctx context.Context, opts store.ListOptions) ([]valuations.Valuation, error)
	Get(ctx context.Context, id string) (valuations.Valuation, error)
}

type Handler struct {
	estimator estimator.Estimator
	store     Store
	log       zerolog.Logger
}

func NewHandler(est estimator.Estimator, s Store, log zerolog.Logger) *Handler {
	return &Handler{estimator: est, store: s, log: log.With().Str("component", "valuations_api").Logger()}
}

// Create estimates the property and stores the valuation.
func (h *Handler) Create(c *gin.Context) {
	var body CreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	address := body.ResolveAddress()
	if err := valuations.ValidateRecord(address, body.Area); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	attrs := body.Attributes()
	value, err := h.estimator.Estimate(attrs)
	if err != nil {
		if errors.Is(err, valuations.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.log.Error().Err(err).Msg("estimate failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to estimate value"})
		return
	}

	v, err := h.store.Create(c.Request.Context(), store.NewValuation{
		Address:        address,
		UsableArea:     attrs.Area,
		Rooms:          attrs.Rooms,
		QualityTier:    attrs.QualityTier,
		EstimatedValue: &value,
		PricingModel:   h.estimator.Name(),
		Latitude:       body.Latitude,
		Longitude:      body.Longitude,
	})
	if err != nil {
		h.writeStoreError(c, err, "Failed to save valuation")
		return
	}

	h.log.Info().Str("valuation_id", v.ID).Float64("valor_estimado", value).Str("modelo", v.PricingModel).Msg("valuation created")
	c.JSON(http.StatusCreated, CreateResponse{
		ID:             v.ID,
		EstimatedValue: value,
		Status:         v.Status,
		PricingModel:   v.PricingModel,
		CreatedAt:      v.CreatedAt,
	})
}

// List returns every valuation, newest first unless ?ordem=asc.
func (h *Handler) List(c *gin.Context) {
	opts := store.ListOptions{NewestFirst: true}
	if strings.EqualFold(c.Query("ordem"), "asc") {
		opts.NewestFirst = false
	}

	list, err := h.store.List(c.Request.Context(), opts)
	if err != nil {
		h.writeStoreError(c, err, "Failed to load valuations")
		return
	}
	if list == nil {
		list = []valuations.Valuation{}
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) Get(c *gin.Context) {
	v, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeStoreError(c, err, "Failed to load valuation")
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *Handler) writeStoreError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, valuations.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Valuation not found"})
	default:
		h.log.Error().Err(err).Msg(msg)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}
