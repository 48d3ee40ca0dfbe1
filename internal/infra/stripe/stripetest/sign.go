// Package stripetest builds signed webhook deliveries for tests.
package stripetest

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// SignatureHeader returns a Stripe-Signature header value for payload.
func SignatureHeader(payload []byte, secret string, at time.Time) string {
	ts := at.Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", ts)
	mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

// CheckoutCompletedPayload is a minimal checkout.session.completed event.
func CheckoutCompletedPayload(eventID, sessionID, plan, valuationID, email, paymentStatus string, amount int64) []byte {
	return []byte(fmt.Sprintf(`{
  "id": %q,
  "object": "event",
  "api_version": "2023-10-16",
  "type": "checkout.session.completed",
  "data": {
    "object": {
      "id": %q,
      "object": "checkout.session",
      "mode": "subscription",
      "payment_status": %q,
      "amount_total": %d,
      "currency": "brl",
      "client_reference_id": %q,
      "customer_details": {"email": %q, "name": "Maria Souza"},
      "metadata": {"plan": %q, "valuation_id": %q}
    }
  }
}`, eventID, sessionID, paymentStatus, amount, valuationID, email, plan, valuationID))
}

// EventPayload is an event of any type carrying object as data.
func EventPayload(eventID, eventType, object string) []byte {
	return []byte(fmt.Sprintf(`{"id": %q, "object": "event", "api_version": "2023-10-16", "type": %q, "data": {"object": %s}}`,
		eventID, eventType, object))
}
