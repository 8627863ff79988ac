package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/xela07ax/insurance-backoffice/internal/customer/handler"
	"go.uber.org/zap"
)

// CustomerServer — HTTP-поверхность customer-сервиса.
type CustomerServer struct {
	router *chi.Mux
	logger *zap.Logger

	customerHandler *handler.CustomerHandler // /api/customers
}

func NewCustomerServer(logger *zap.Logger, customerH *handler.CustomerHandler) *CustomerServer {
	s := &CustomerServer{
		router:          chi.NewRouter(),
		logger:          logger.Named("customer-api"),
		customerHandler: customerH,
	}

	s.routes()
	return s
}

func (s *CustomerServer) routes() {
	r := s.router

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/api/customers", func(r chi.Router) {
		r.Get("/", s.customerHandler.List)
		r.Post("/", s.customerHandler.Create)
		r.Get("/search", s.customerHandler.Search)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.customerHandler.Get)
			r.Put("/", s.customerHandler.Update)
			r.Delete("/", s.customerHandler.Delete)
		})
	})
}

// ServeHTTP позволяет использовать CustomerServer как стандартный http.Handler
func (s *CustomerServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
