package stripe

import (
	"encoding/json"
	"errors"
	"fmt"

	stripego "github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/webhook"
)

var (
	ErrSignature = errors.New("webhook signature verification failed")
	ErrPayload   = errors.New("malformed webhook payload")
)

// Event is one verified webhook delivery. The concrete type tells which
// fields exist.
type Event interface {
	EventID() string
	EventType() string
}

type CheckoutCompleted struct {
	ID            string
	SessionID     string
	Mode          string
	PaymentStatus string
	Plan          string
	ValuationID   string
	CustomerEmail string
	CustomerName  string
	AmountTotal   int64
	Currency      string
}

type CheckoutExpired struct {
	ID        string
	SessionID string
}

type SubscriptionDeleted struct {
	ID             string
	SubscriptionID string
	CustomerID     string
	Plan           string
}

// Unhandled is any kind this service does not act on.
type Unhandled struct {
	ID   string
	Type string
}

func (e CheckoutCompleted) EventID() string { return e.ID }
func (CheckoutCompleted) EventType() string { return "checkout.session.completed" }
func (e CheckoutExpired) EventID() string { return e.ID }
func (CheckoutExpired) EventType() string { return "checkout.session.expired" }
func (e SubscriptionDeleted) EventID() string { return e.ID }
func (SubscriptionDeleted) EventType() string { return "customer.subscription.deleted" }
func (e Unhandled) EventID() string { return e.ID }
func (e Unhandled) EventType() string { return e.Type }

// Verifier checks webhook signatures with the endpoint secret.
type Verifier struct {
	secret string
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: secret}
}

// Parse verifies the Stripe-Signature header before decoding anything.
func (v *Verifier) Parse(payload []byte, sigHeader string) (Event, error) {
	if sigHeader == "" {
		return nil, fmt.Errorf("%w: missing Stripe-Signature header", ErrSignature)
	}
	if err := webhook.ValidatePayload(payload, sigHeader, v.secret); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSignature, err)
	}

	var evt stripego.Event
	if err := json.Unmarshal(payload, &evt); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayload, err)
	}
	if evt.Data == nil || len(evt.Data.Raw) == 0 {
		return nil, fmt.Errorf("%w: event %s has no data", ErrPayload, evt.ID)
	}

	switch string(evt.Type) {
	case "checkout.session.completed":
		var s stripego.CheckoutSession
		if err := json.Unmarshal(evt.Data.Raw, &s); err != nil {
			return nil, fmt.Errorf("%w: checkout session: %v", ErrPayload, err)
		}
		return checkoutCompleted(evt.ID, &s), nil

	case "checkout.session.expired":
		var s stripego.CheckoutSession
		if err := json.Unmarshal(evt.Data.Raw, &s); err != nil {
			return nil, fmt.Errorf("%w: checkout session: %v", ErrPayload, err)
		}
		return CheckoutExpired{ID: evt.ID, SessionID: s.ID}, nil

	case "customer.subscription.deleted":
		var sub stripego.Subscription
		if err := json.Unmarshal(evt.Data.Raw, &sub); err != nil {
			return nil, fmt.Errorf("%w: subscription: %v", ErrPayload, err)
		}
		out := SubscriptionDeleted{ID: evt.ID, SubscriptionID: sub.ID, Plan: sub.Metadata["plan"]}
		if sub.Customer != nil {
			out.CustomerID = sub.Customer.ID
		}
		return out, nil

	default:
		return Unhandled{ID: evt.ID, Type: string(evt.Type)}, nil
	}
}

func checkoutCompleted(eventID string, s *stripego.CheckoutSession) CheckoutCompleted {
	out := CheckoutCompleted{
		ID:            eventID,
		SessionID:     s.ID,
		Mode:          string(s.Mode),
		PaymentStatus: string(s.PaymentStatus),
		Plan:          s.Metadata["plan"],
		ValuationID:   s.Metadata["valuation_id"],
		CustomerEmail: s.CustomerEmail,
		AmountTotal:   s.AmountTotal,
		Currency:      string(s.Currency),
	}
	if out.ValuationID == "" {
		out.ValuationID = s.ClientReferenceID
	}
	if s.CustomerDetails != nil {
		if s.CustomerDetails.Email != "" {
			out.CustomerEmail = s.CustomerDetails.Email
		}
		out.CustomerName = s.CustomerDetails.Name
	}
	return out
}
