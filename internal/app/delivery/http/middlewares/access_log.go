package middlewares

import (
	"net/http"
	"time"
)

// RequestLogger writes one plain access line per request to the logrus
// logger. This is the human-readable companion to the structured zap log.
func (m *Middlewares) RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		duration := time.Since(start)

		tz, err := time.LoadLocation(m.InternalConfig.App.Timezone)
		if err != nil {
			tz = time.UTC
		}

		m.AccessLog.Printf(`{%s} | {%s} | {%s} ==> {%s} | {%s}`, time.Now().In(tz).Format(time.RFC850), r.RemoteAddr, r.Method, r.RequestURI, duration)
	})
}
