package stripe

import "strings"

const (
	PaymentStatusPaid    = "pago"
	PaymentStatusPending = "pendente"
)

// NormalizePaymentStatus maps a Checkout Session payment_status to the
// ledger vocabulary.
func NormalizePaymentStatus(s string) string {
	switch strings.TrimSpace(s) {
	case "paid", "no_payment_required":
		return PaymentStatusPaid
	case "", "unpaid":
		return PaymentStatusPending
	default:
		return strings.TrimSpace(s)
	}
}

// PaymentSettled reports whether the checkout captured (or did not need) money.
func PaymentSettled(s string) bool {
	return NormalizePaymentStatus(s) == PaymentStatusPaid
}
