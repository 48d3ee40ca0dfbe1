package stripewebhooks

import (
	"context"

	"consultoc-api/internal/domain/billing"
	stripeinfra "consultoc-api/internal/infra/stripe"
	"consultoc-api/internal/notify"
)

// handleCheckoutCompleted writes the ledger row and, for a first delivery
// of a settled payment, sends the notifications. Notification errors are
// logged only.
func (h *Handler) handleCheckoutCompleted(ctx context.Context, e stripeinfra.CheckoutCompleted) error {
	log := h.log.With().Str("event_id", e.ID).Str("session_id", e.SessionID).Logger()

	if !stripeinfra.PaymentSettled(e.PaymentStatus) {
		log.Info().Str("payment_status", e.PaymentStatus).Msg("checkout completed without settled payment")
		return nil
	}

	p := billing.Payment{
		StripeSessionID: e.SessionID,
		Mode:            e.Mode,
		Plan:            e.Plan,
		AmountMinor:     e.AmountTotal,
		Currency:        e.Currency,
		Status:          stripeinfra.NormalizePaymentStatus(e.PaymentStatus),
	}
	if e.ValuationID != "" {
		p.ValuationID = &e.ValuationID
	}
	if e.CustomerEmail != "" {
		p.CustomerEmail = &e.CustomerEmail
	}

	created, err := h.payments.Record(ctx, p)
	if err != nil {
		log.Error().Err(err).Msg("failed to record payment")
		return err
	}
	if !created {
		log.Info().Msg("duplicate checkout delivery, notifications skipped")
		return nil
	}

	err = h.notifier.PaymentConfirmed(ctx, notify.PaymentNotice{
		SessionID:     e.SessionID,
		Plan:          e.Plan,
		ValuationID:   e.ValuationID,
		CustomerEmail: e.CustomerEmail,
		CustomerName:  e.CustomerName,
		AmountMinor:   e.AmountTotal,
		Currency:      e.Currency,
	})
	if err != nil {
		log.Error().Err(err).Msg("payment notification failed")
	}
	return nil
}
