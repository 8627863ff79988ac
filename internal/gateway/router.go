package gateway

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"strings"

	"go.uber.org/zap"
)

// Route связывает префикс пути с логическим именем бэкенда.
type Route struct {
	Prefix  string
	Service string
}

// DefaultRoutes — таблица маршрутизации бэк-офиса.
// Префиксы не пересекаются, поэтому порядок не играет роли.
var DefaultRoutes = []Route{
	{Prefix: "/api/customers", Service: "customer-service"},
	{Prefix: "/api/policies", Service: "policy-service"},
	{Prefix: "/api/claims", Service: "policy-service"},
	{Prefix: "/api/auth", Service: "auth-service"},
}

// Router — единая точка входа: подбирает бэкенд по префиксу пути
// и проксирует запрос без каких-либо трансформаций тела.
type Router struct {
	routes  []Route
	proxies map[string]*httputil.ReverseProxy
	logger  *zap.Logger
	metrics *Metrics
}

func NewRouter(reg Registry, routes []Route, logger *zap.Logger, metrics *Metrics) (*Router, error) {
	proxies := make(map[string]*httputil.ReverseProxy)

	for _, rt := range routes {
		if _, ok := proxies[rt.Service]; ok {
			continue
		}
		target, ok := reg.Resolve(rt.Service)
		if !ok {
			return nil, fmt.Errorf("gateway: no address configured for %s", rt.Service)
		}

		proxy := httputil.NewSingleHostReverseProxy(target)
		// Отказ бэкенда не должен ронять шлюз: логируем и отдаем 502
		svc := rt.Service
		proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
			logger.Error("backend unreachable",
				zap.String("service", svc),
				zap.String("path", r.URL.Path),
				zap.Error(err),
			)
			w.WriteHeader(http.StatusBadGateway)
		}
		proxies[rt.Service] = proxy
	}

	return &Router{
		routes:  routes,
		proxies: proxies,
		logger:  logger.Named("gateway"),
		metrics: metrics,
	}, nil
}

func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	for _, route := range rt.routes {
		if strings.HasPrefix(r.URL.Path, route.Prefix) {
			rt.metrics.ForwardedTotal.WithLabelValues(route.Prefix, route.Service).Inc()
			rt.proxies[route.Service].ServeHTTP(w, r)
			return
		}
	}

	rt.logger.Debug("no route matched", zap.String("path", r.URL.Path))
	http.NotFound(w, r)
}
