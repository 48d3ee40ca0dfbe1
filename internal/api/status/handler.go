package status

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const Version = "1.2-estavel"

type DatabaseProbe interface {
	Version(ctx context.Context) (string, error)
}

type Handler struct {
	probe DatabaseProbe
	log   zerolog.Logger
}

func NewHandler(probe DatabaseProbe, log zerolog.Logger) *Handler {
	return &Handler{probe: probe, log: log.With().Str("component", "status_api").Logger()}
}

// Home reports the service as online; the database state is informative only.
func (h *Handler) Home(c *gin.Context) {
	banco := "conectado"
	if _, err := h.probe.Version(c.Request.Context()); err != nil {
		h.log.Warn().Err(err).Msg("database probe failed")
		banco = "indisponivel"
	}
	c.JSON(http.StatusOK, gin.H{"status": "online", "banco": banco, "versao": Version})
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) TestDB(c *gin.Context) {
	version, err := h.probe.Version(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("database probe failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Database unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"database": "Conectado com Sucesso", "versao": version})
}
