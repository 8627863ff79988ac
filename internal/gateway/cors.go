package gateway

import "net/http"

// CORSFilter реализует cross-origin политику шлюза для единственного
// разрешенного origin-а (обычно адрес фронта).
//
// Семантика:
//   - origin совпал: навешиваем заголовки доступа; preflight (OPTIONS)
//     завершается сразу 200, до бэкенда не доходит;
//   - origin не совпал: запрос уходит на бэкенд как есть, без
//     cross-origin заголовков. Блокировка ответа — забота браузера,
//     серверной авторизацией это не является.
func CORSFilter(allowedOrigin string, metrics *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if origin != "" && origin == allowedOrigin {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
				h.Set("Access-Control-Allow-Headers", "*")
				h.Set("Access-Control-Allow-Credentials", "true")
				h.Set("Access-Control-Max-Age", "3600")

				if r.Method == http.MethodOptions {
					if metrics != nil {
						metrics.PreflightTotal.Inc()
					}
					w.WriteHeader(http.StatusOK)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
