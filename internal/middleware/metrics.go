package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"memories/internal/metrics"
)

// InstrumentHandler records request counts and durations per route
// template. It must run inside the router so the matched route is known.
func InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		route := routeTemplate(r)
		status := strconv.Itoa(rw.statusCode)

		metrics.RequestsTotal.WithLabelValues(r.Method, route, status).Inc()
		metrics.RequestDuration.WithLabelValues(r.Method, route, status).Observe(time.Since(start).Seconds())
		if rw.statusCode >= http.StatusBadRequest {
			metrics.RequestErrors.WithLabelValues(r.Method, route, status).Inc()
		}
	})
}

func routeTemplate(r *http.Request) string {
	route := mux.CurrentRoute(r)
	if route == nil {
		return "unmatched"
	}
	tpl, err := route.GetPathTemplate()
	if err != nil {
		return "unmatched"
	}
	return tpl
}
