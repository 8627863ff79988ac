package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/xela07ax/insurance-backoffice/internal/auth/handler"
	"go.uber.org/zap"
)

// AuthServer — HTTP-поверхность auth-сервиса.
// Оба маршрута публичные: выдача токена и регистрация.
type AuthServer struct {
	router *chi.Mux
	logger *zap.Logger

	authHandler *handler.AuthHandler // /api/auth
}

func NewAuthServer(logger *zap.Logger, authH *handler.AuthHandler) *AuthServer {
	s := &AuthServer{
		router:      chi.NewRouter(),
		logger:      logger.Named("auth-api"),
		authHandler: authH,
	}

	s.routes()
	return s
}

func (s *AuthServer) routes() {
	r := s.router

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/signin", s.authHandler.SignIn)
		r.Post("/signup", s.authHandler.SignUp)
	})
}

// ServeHTTP позволяет использовать AuthServer как стандартный http.Handler
func (s *AuthServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
