package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xela07ax/insurance-backoffice/internal/policy/handler"
	"go.uber.org/zap"
)

// PolicyServer — HTTP-поверхность policy-сервиса: полисы, требования
// и композитные проекции. Живет за шлюзом, сам CORS не обрабатывает.
type PolicyServer struct {
	router *chi.Mux
	logger *zap.Logger

	policyHandler *handler.PolicyHandler // /api/policies
	claimHandler  *handler.ClaimHandler  // /api/claims
}

func NewPolicyServer(
	logger *zap.Logger,
	reg *prometheus.Registry,
	policyH *handler.PolicyHandler,
	claimH *handler.ClaimHandler,
) *PolicyServer {
	s := &PolicyServer{
		router:        chi.NewRouter(),
		logger:        logger.Named("policy-api"),
		policyHandler: policyH,
		claimHandler:  claimH,
	}

	s.routes(reg)
	return s
}

func (s *PolicyServer) routes(reg *prometheus.Registry) {
	r := s.router

	// Инфраструктурные Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Healthcheck и метрики для мониторинга
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	if reg != nil {
		r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}

	r.Route("/api/policies", func(r chi.Router) {
		r.Get("/", s.policyHandler.List)
		r.Post("/", s.policyHandler.Create)
		// Композитные и индексные маршруты идут до /{id},
		// чтобы chi не принял "customer" за идентификатор
		r.Get("/all-with-customers", s.policyHandler.ListWithCustomers)
		r.Get("/with-customer/{id}", s.policyHandler.GetWithCustomer)
		r.Get("/customer/{customerId}", s.policyHandler.ListByCustomer)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.policyHandler.Get)
			r.Put("/", s.policyHandler.Update)
			r.Delete("/", s.policyHandler.Delete)
		})
	})

	r.Route("/api/claims", func(r chi.Router) {
		r.Get("/", s.claimHandler.List)
		r.Post("/", s.claimHandler.Create)
		r.Get("/policy/{policyId}", s.claimHandler.ListByPolicy)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.claimHandler.Get)
			r.Put("/", s.claimHandler.Update)
			r.Patch("/status", s.claimHandler.UpdateStatus)
			r.Delete("/", s.claimHandler.Delete)
		})
	})
}

// ServeHTTP позволяет использовать PolicyServer как стандартный http.Handler
func (s *PolicyServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
