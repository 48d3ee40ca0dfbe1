package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"consultoc-api/database"
	"consultoc-api/internal/api/billing"
	"consultoc-api/internal/api/reports"
	"consultoc-api/internal/api/status"
	stripewebhooks "consultoc-api/internal/api/stripewebhook"
	"consultoc-api/internal/api/valuations"
	"consultoc-api/internal/estimator"
	stripeinfra "consultoc-api/internal/infra/stripe"
	"consultoc-api/internal/infra/stripe/stripetest"
	"consultoc-api/internal/notify"
	"consultoc-api/internal/report"
	"consultoc-api/internal/store"
	"consultoc-api/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	webhookSecret = "whsec_routes"
	adminSecret   = "admin-secret"
)

type stubGateway struct{}

func (stubGateway) CreateCheckoutSession(context.Context, stripeinfra.CheckoutRequest) (stripeinfra.Session, error) {
	return stripeinfra.Session{ID: "cs_stub", URL: "https://checkout.stripe.com/c/pay/cs_stub"}, nil
}

func newEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zerolog.Nop()

	db := testutil.NewTestDB(t)
	vals := store.NewValuations(db, nil)
	pays := store.NewPayments(db, nil)
	est, err := estimator.NewLinear(5500)
	require.NoError(t, err)
	storage, err := report.NewDirStorage(t.TempDir())
	require.NoError(t, err)

	r := gin.New()
	RegisterRoutes(r, Handlers{
		Status:     status.NewHandler(database.NewProbe(db), log),
		Valuations: valuations.NewHandler(est, vals, log),
		Billing:    billing.NewHandler(stubGateway{}, vals, pays, log),
		Webhook:    stripewebhooks.NewHandler(stripeinfra.NewVerifier(webhookSecret), pays, notify.NewLogNotifier(log), log),
		Reports:    reports.NewHandler(report.NewGenerator(storage, nil, log), vals, log),
	}, adminSecret)
	return r
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRoutes_PublicAndAliases(t *testing.T) {
	r := newEngine(t)

	for _, path := range []string{"/", "/health", "/test-db", "/v1/planos", "/v1/avaliacoes", "/avaliacoes"} {
		w := serve(r, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	for _, path := range []string{"/v1/avaliacoes/processar", "/avaliar"} {
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(`{"endereco": "<b>Rua A</b>", "area": 80}`))
		req.Header.Set("Content-Type", "application/json")
		w := serve(r, req)
		assert.Equal(t, http.StatusCreated, w.Code, path)
	}

	for _, path := range []string{"/v1/checkout/criar", "/criar-checkout"} {
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(`{"plano": "basico"}`))
		req.Header.Set("Content-Type", "application/json")
		w := serve(r, req)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestRoutes_AddressStoredAsTyped(t *testing.T) {
	r := newEngine(t)

	const address = "Rua D'Ávila & Filhos, 10"
	req := httptest.NewRequest(http.MethodPost, "/avaliar", bytes.NewBufferString(`{"endereco": "Rua D'Ávila & Filhos, 10", "area": 80}`))
	req.Header.Set("Content-Type", "application/json")
	w := serve(r, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = serve(r, httptest.NewRequest(http.MethodGet, "/v1/avaliacoes/"+created.ID, nil))
	require.Equal(t, http.StatusOK, w.Code)
	var got struct {
		Address string `json:"endereco"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, address, got.Address)
}

func TestRoutes_WebhookReceivesRawBody(t *testing.T) {
	r := newEngine(t)

	// a string with markup would be rewritten by the sanitiser and break the signature
	payload := stripetest.CheckoutCompletedPayload("evt_1", "cs_1", "pro", "", "<b>maria</b>@example.com", "paid", 59900)
	for _, path := range []string{"/webhook-stripe", "/v1/webhook/stripe"} {
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
		req.Header.Set("Stripe-Signature", stripetest.SignatureHeader(payload, webhookSecret, time.Now()))
		w := serve(r, req)
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
}

func TestRoutes_AdminLedgerRequiresAdminToken(t *testing.T) {
	r := newEngine(t)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/v1/admin/pagamentos", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(adminSecret))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/pagamentos", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}
