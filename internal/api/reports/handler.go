package reports

import (
	"context"
	"errors"
	"math"
	"net/http"
	"path"
	"strconv"
	"strings"

	"consultoc-api/internal/domain/valuations"
	"consultoc-api/internal/report"
	"consultoc-api/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type ValuationFinder interface {
	Get(ctx context.Context, id string) (valuations.Valuation, error)
}

type Generator interface {
	Generate(ctx context.Context, d report.Data) (string, error)
}

type Handler struct {
	generator Generator
	finder    ValuationFinder
	log       zerolog.Logger
}

func NewHandler(gen Generator, finder ValuationFinder, log zerolog.Logger) *Handler {
	return &Handler{generator: gen, finder: finder, log: log.With().Str("component", "reports_api").Logger()}
}

// GeneratePDF renders the laudo for :id. valor and endereco come from the
// query; whatever is missing is read from the stored valuation.
func (h *Handler) GeneratePDF(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	address := strings.TrimSpace(c.Query("endereco"))

	var value *float64
	if raw := strings.TrimSpace(c.Query("valor")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid valor"})
			return
		}
		value = &v
	}

	if value == nil || address == "" {
		stored, err := h.finder.Get(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Valuation not found"})
				return
			}
			h.log.Error().Err(err).Str("valuation_id", id).Msg("failed to load valuation")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load valuation"})
			return
		}
		if address == "" {
			address = stored.Address
		}
		if value == nil {
			if stored.EstimatedValue == nil {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Valuation has no estimated value"})
				return
			}
			value = stored.EstimatedValue
		}
	}

	location, err := h.generator.Generate(c.Request.Context(), report.Data{
		ValuationID: id,
		Address:     address,
		Value:       *value,
	})
	if err != nil {
		h.log.Error().Err(err).Str("valuation_id", id).Msg("report generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"mensagem": "Laudo gerado com sucesso",
		"arquivo":  path.Base(location),
		"local":    location,
	})
}
