package report

import (
	"context"
	"strings"

	"consultoc-api/internal/clock"

	"github.com/rs/zerolog"
)

// Generator renders a report and hands it to a Storage.
type Generator struct {
	storage Storage
	clock   clock.Clock
	log     zerolog.Logger
}

func NewGenerator(storage Storage, clk clock.Clock, log zerolog.Logger) *Generator {
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &Generator{storage: storage, clock: clk, log: log.With().Str("component", "report").Logger()}
}

// FileName derives the stored name from the valuation id. Characters
// outside [A-Za-z0-9_-] are dropped.
func FileName(valuationID string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return -1
	}, valuationID)
	if clean == "" {
		clean = "sem-id"
	}
	return "laudo_" + clean + ".pdf"
}

// Generate renders d (stamping GeneratedAt when unset) and stores it.
func (g *Generator) Generate(ctx context.Context, d Data) (string, error) {
	if d.GeneratedAt.IsZero() {
		d.GeneratedAt = g.clock.Now()
	}

	pdf, err := Render(d)
	if err != nil {
		return "", err
	}

	location, err := g.storage.Save(ctx, FileName(d.ValuationID), pdf)
	if err != nil {
		return "", err
	}

	g.log.Info().Str("valuation_id", d.ValuationID).Str("location", location).Int("bytes", len(pdf)).Msg("report generated")
	return location, nil
}
