package routes

import (
	"consultoc-api/internal/api/billing"
	"consultoc-api/internal/api/reports"
	"consultoc-api/internal/api/status"
	stripewebhooks "consultoc-api/internal/api/stripewebhook"
	"consultoc-api/internal/api/valuations"
	"consultoc-api/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Status     *status.Handler
	Valuations *valuations.Handler
	Billing    *billing.Handler
	Webhook    *stripewebhooks.Handler
	Reports    *reports.Handler
}

func RegisterRoutes(r *gin.Engine, h Handlers, adminSecret string) {
	// The webhook must see the exact bytes Stripe signed, so it stays
	// outside the sanitising group.
	r.POST("/webhook-stripe", h.Webhook.StripeWebhook)
	r.POST("/v1/webhook/stripe", h.Webhook.StripeWebhook)

	r.GET("/", h.Status.Home)
	r.GET("/health", h.Status.Health)
	r.GET("/test-db", h.Status.TestDB)

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/avaliar", h.Valuations.Create)
	public.GET("/avaliacoes", h.Valuations.List)
	public.POST("/criar-checkout", h.Billing.CreateCheckoutSession)

	v1 := public.Group("/v1")
	v1.POST("/avaliacoes/processar", h.Valuations.Create)
	v1.GET("/avaliacoes", h.Valuations.List)
	v1.GET("/avaliacoes/:id", h.Valuations.Get)
	v1.GET("/planos", h.Billing.ListPlans)
	v1.POST("/checkout/criar", h.Billing.CreateCheckoutSession)
	v1.GET("/laudo/pdf/:id", h.Reports.GeneratePDF)

	admin := r.Group("/v1/admin")
	admin.Use(middleware.AuthMiddleware(adminSecret), middleware.RequireRole("admin"))
	admin.GET("/pagamentos", h.Billing.GetPaymentHistory)
}
