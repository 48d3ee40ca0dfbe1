package stripe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"consultoc-api/internal/domain/plans"

	"github.com/rs/zerolog"
	stripego "github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/client"
)

var ErrGateway = errors.New("payment provider error")

// CheckoutRequest describes one hosted checkout to open.
type CheckoutRequest struct {
	Plan          plans.Plan
	ValuationID   string
	CustomerEmail string
}

// Session is what the client needs to redirect the buyer.
type Session struct {
	ID  string
	URL string
}

// sessionCreator is the slice of the Stripe client the gateway uses.
type sessionCreator interface {
	New(params *stripego.CheckoutSessionParams) (*stripego.CheckoutSession, error)
}

// Gateway opens Stripe Checkout sessions with a per-instance API key.
type Gateway struct {
	sessions sessionCreator
	appURL   string
	log      zerolog.Logger
}

func NewGateway(secretKey, appURL string, log zerolog.Logger) *Gateway {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return newGateway(sc.CheckoutSessions, appURL, log)
}

func newGateway(sessions sessionCreator, appURL string, log zerolog.Logger) *Gateway {
	return &Gateway{
		sessions: sessions,
		appURL:   strings.TrimRight(appURL, "/"),
		log:      log.With().Str("component", "stripe_gateway").Logger(),
	}
}

func (g *Gateway) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (Session, error) {
	params := g.buildParams(req)
	params.Context = ctx

	s, err := g.sessions.New(params)
	if err != nil {
		g.log.Error().Err(err).Str("plan", req.Plan.Name).Msg("checkout session creation failed")
		return Session{}, fmt.Errorf("%w: create checkout session: %v", ErrGateway, err)
	}

	g.log.Info().Str("session_id", s.ID).Str("plan", req.Plan.Name).Str("valuation_id", req.ValuationID).Msg("checkout session created")
	return Session{ID: s.ID, URL: s.URL}, nil
}

func (g *Gateway) buildParams(req CheckoutRequest) *stripego.CheckoutSessionParams {
	plan := req.Plan
	metadata := map[string]string{"plan": plan.Name}
	if req.ValuationID != "" {
		metadata["valuation_id"] = req.ValuationID
	}

	priceData := &stripego.CheckoutSessionLineItemPriceDataParams{
		Currency:   stripego.String(plan.Currency),
		UnitAmount: stripego.Int64(plan.AmountMinor),
		ProductData: &stripego.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripego.String(plan.Label),
		},
	}
	if plan.Recurring() {
		priceData.Recurring = &stripego.CheckoutSessionLineItemPriceDataRecurringParams{
			Interval: stripego.String(plan.Interval),
		}
	}

	params := &stripego.CheckoutSessionParams{
		SuccessURL: stripego.String(g.appURL + "/pagamento/sucesso?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripego.String(g.appURL + "/pagamento/cancelado"),
		Mode:       stripego.String(string(plan.Mode)),
		LineItems: []*stripego.CheckoutSessionLineItemParams{
			{PriceData: priceData, Quantity: stripego.Int64(1)},
		},
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	if req.ValuationID != "" {
		params.ClientReferenceID = stripego.String(req.ValuationID)
	}
	if req.CustomerEmail != "" {
		params.CustomerEmail = stripego.String(req.CustomerEmail)
	}

	if plan.Recurring() {
		params.SubscriptionData = &stripego.CheckoutSessionSubscriptionDataParams{Metadata: metadata}
	} else {
		params.PaymentIntentData = &stripego.CheckoutSessionPaymentIntentDataParams{Metadata: metadata}
	}
	return params
}
