// Package notify tells people about confirmed payments.
package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// PaymentNotice carries what a notification needs about one checkout.
type PaymentNotice struct {
	SessionID     string
	Plan          string
	ValuationID   string
	CustomerEmail string
	CustomerName  string
	AmountMinor   int64
	Currency      string
}

type Notifier interface {
	PaymentConfirmed(ctx context.Context, n PaymentNotice) error
}

// LogNotifier only writes the notice to the log.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log.With().Str("component", "notifier").Logger()}
}

func (l *LogNotifier) PaymentConfirmed(_ context.Context, n PaymentNotice) error {
	l.log.Info().
		Str("session_id", n.SessionID).
		Str("plan", n.Plan).
		Str("valuation_id", n.ValuationID).
		Str("email", n.CustomerEmail).
		Int64("amount_minor", n.AmountMinor).
		Msg("payment confirmed (smtp disabled, notification logged only)")
	return nil
}
