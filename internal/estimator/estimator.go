// Package estimator turns property attributes into a market value.
package estimator

import (
	"fmt"
	"math"

	"consultoc-api/internal/domain/valuations"
)

const (
	MinQualityTier = 1
	MaxQualityTier = 5

	// DefaultQualityTier is used when a request omits the tier.
	DefaultQualityTier = 3
)

// Attributes are the model inputs for one property.
type Attributes struct {
	Area        float64
	Rooms       int
	QualityTier int
}

// Estimator is a pricing policy. Implementations are immutable and safe
// for concurrent use.
type Estimator interface {
	Estimate(a Attributes) (float64, error)
	Name() string
}

// Validate rejects attributes no policy can price.
func (a Attributes) Validate() error {
	if math.IsNaN(a.Area) || math.IsInf(a.Area, 0) || a.Area <= 0 {
		return fmt.Errorf("%w: area must be greater than zero", valuations.ErrValidation)
	}
	if a.Rooms < 0 {
		return fmt.Errorf("%w: quartos must not be negative", valuations.ErrValidation)
	}
	if a.QualityTier < MinQualityTier || a.QualityTier > MaxQualityTier {
		return fmt.Errorf("%w: padrao must be between %d and %d", valuations.ErrValidation, MinQualityTier, MaxQualityTier)
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
