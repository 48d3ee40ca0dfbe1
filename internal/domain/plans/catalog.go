package plans

import (
	"errors"
	"fmt"
	"strings"
)

// Tier constants (single source of truth)
const (
	TierReport       = "laudo"
	TierEssential    = "essential"
	TierProfessional = "professional"
	TierAdvanced     = "advanced"
)

const (
	CurrencyBRL = "brl"

	// ReportPlan is bought when a checkout references a valuation only.
	ReportPlan = "laudo"
)

var ErrInvalidPlan = errors.New("invalid plan")

var catalog = []Plan{
	{Name: ReportPlan, Label: "Laudo de avaliação avulso", Tier: TierReport, AmountMinor: 14900, Currency: CurrencyBRL, Mode: ModePayment},
	{Name: "basico", Label: "Consultoc Básico", Tier: TierEssential, AmountMinor: 29900, Currency: CurrencyBRL, Mode: ModeSubscription, Interval: "month"},
	{Name: "pro", Label: "Consultoc Pro", Tier: TierProfessional, AmountMinor: 59900, Currency: CurrencyBRL, Mode: ModeSubscription, Interval: "month"},
	{Name: "premium", Label: "Consultoc Premium", Tier: TierAdvanced, AmountMinor: 99900, Currency: CurrencyBRL, Mode: ModeSubscription, Interval: "month"},
}

// Catalog returns a copy of the price table ordered by amount.
func Catalog() []Plan {
	out := make([]Plan, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup resolves a plan by name, ignoring case and surrounding spaces.
func Lookup(name string) (Plan, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, p := range catalog {
		if p.Name == key {
			return p, nil
		}
	}
	return Plan{}, fmt.Errorf("%w: %q", ErrInvalidPlan, name)
}
