package api

import (
	"log/slog"
	"net/http"
	"time"

	"credit-system/internal/api/handler"
	custommiddleware "credit-system/internal/api/middleware"
	"credit-system/internal/config"
	"credit-system/internal/domain/credit"
	"credit-system/internal/domain/customer"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "credit-system/docs"
)

// SetupRouter wires the HTTP surface: middleware chain, operational
// endpoints and the /api route groups.
func SetupRouter(customerService customer.CustomerService, creditService credit.CreditService, cfg config.Config, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.StructuredLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(middleware.Timeout(60 * time.Second))

	rateLimiter := custommiddleware.NewRateLimiterMiddleware(cfg.Server.RateLimit, logger)
	r.Use(rateLimiter.Middleware)
	r.Use(custommiddleware.MetricsMiddleware())

	customerHandler := handler.NewCustomerHandler(customerService, logger)
	creditHandler := handler.NewCreditHandler(creditService, logger)
	authHandler := handler.NewAuthHandler(cfg, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	r.Handle(metricsPath, promhttp.Handler())

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Post("/auth/token", authHandler.GenerateBearerToken)

	r.Route("/api", func(r chi.Router) {
		r.Use(custommiddleware.AuthMiddleware(cfg.Server.Auth, logger))

		r.Route("/customers", func(r chi.Router) {
			r.Post("/", customerHandler.CreateCustomer)
			r.Patch("/", customerHandler.UpdateCustomer)
			r.Get("/{customerID}", customerHandler.GetCustomer)
			r.Delete("/{customerID}", customerHandler.DeleteCustomer)
		})

		r.Route("/credits", func(r chi.Router) {
			r.Post("/", creditHandler.CreateCredit)
			r.Get("/", creditHandler.ListCredits)
			r.Get("/{creditCode}", creditHandler.GetCreditByCode)
		})
	})

	return r
}
