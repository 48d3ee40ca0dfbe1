package valuations

import (
	"strings"
	"time"

	"consultoc-api/internal/domain/valuations"
	"consultoc-api/internal/estimator"
)

// CreateRequest accepts the Portuguese field names of the current form and
// the English names of older clients.
type CreateRequest struct {
	Endereco    string   `json:"endereco"`
	Address     string   `json:"address"`
	Area        float64  `json:"area"`
	Quartos     *int     `json:"quartos"`
	Rooms       *int     `json:"rooms"`
	Padrao      *int     `json:"padrao"`
	QualityTier *int     `json:"quality_tier"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

func (r CreateRequest) ResolveAddress() string {
	if v := strings.TrimSpace(r.Endereco); v != "" {
		return v
	}
	return strings.TrimSpace(r.Address)
}

func (r CreateRequest) Attributes() estimator.Attributes {
	a := estimator.Attributes{Area: r.Area, QualityTier: estimator.DefaultQualityTier}
	switch {
	case r.Quartos != nil:
		a.Rooms = *r.Quartos
	case r.Rooms != nil:
		a.Rooms = *r.Rooms
	}
	switch {
	case r.Padrao != nil:
		a.QualityTier = *r.Padrao
	case r.QualityTier != nil:
		a.QualityTier = *r.QualityTier
	}
	return a
}

type CreateResponse struct {
	ID             string            `json:"id"`
	EstimatedValue float64           `json:"valor_estimado"`
	Status         valuations.Status `json:"status"`
	PricingModel   string            `json:"modelo"`
	CreatedAt      time.Time         `json:"created_at"`
}
