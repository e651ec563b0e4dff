// metrics/metrics.go
package metrics

import (
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	apperrors "github.com/dalemusser/amountwords/pantry/errors"
	"github.com/dalemusser/amountwords/words"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// reqDuration is a histogram of HTTP request durations in seconds, labeled
// by path, method, and status code.
var reqDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name: "http_request_duration_seconds",
		Help: "Duration of HTTP requests.",
		// buckets in seconds
		Buckets: []float64{0.01, 0.1, 0.3, 1.2, 5},
	},
	[]string{"path", "method", "status"},
)

// formatTotal counts Format calls by matched language, currency name and
// result ("ok", "unknown_language" or an error code).
var formatTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "amountwords_format_total",
		Help: "Amount-to-words conversions.",
	},
	[]string{"language", "currency", "result"},
)

// RegisterDefault registers the Go runtime and process collectors, the HTTP
// request duration histogram and the conversion counter. Call it once at
// startup; repeated calls are harmless.
//
// It panics (or logs fatally) if registration fails for a reason other than
// the collector already being registered.
func RegisterDefault(logger *zap.Logger) {
	mustRegister(logger, "Go collector", collectors.NewGoCollector())
	mustRegister(logger, "process collector", collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	mustRegister(logger, "HTTP request histogram", reqDuration)
	mustRegister(logger, "format counter", formatTotal)
}

// FormatObserver records every conversion in amountwords_format_total.
// Pass it to words.WithObserver.
type FormatObserver struct{}

// ObserveFormat implements words.Observer.
func (FormatObserver) ObserveFormat(ev words.Event) {
	lang, cur, result := formatLabels(ev)
	formatTotal.WithLabelValues(lang, cur, result).Inc()
}

// formatLabels keeps label cardinality bounded: an unmatched language string
// is reported as "unknown" rather than verbatim.
func formatLabels(ev words.Event) (lang, cur, result string) {
	lang = ev.Language
	cur = ev.Currency
	result = "ok"

	switch {
	case ev.Err != nil:
		// failures happen before the language is matched
		result = apperrors.CodeFromError(ev.Err)
		lang = "unknown"
	case ev.UnknownLanguage:
		result = "unknown_language"
		lang = "unknown"
	}
	if cur == "" {
		cur = "unknown"
	}
	return lang, truncateUTF8(cur, 32), result
}

// mustRegister registers c, tolerating AlreadyRegisteredError so tests and
// repeated startups can call RegisterDefault freely. Any other failure is
// fatal: through the logger when there is one, otherwise a panic.
func mustRegister(logger *zap.Logger, name string, c prometheus.Collector) {
	err := prometheus.Register(c)
	if err == nil {
		return
	}
	if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
		return
	}
	if logger == nil {
		panic("metrics: failed to register " + name + ": " + err.Error())
	}
	logger.Fatal("failed to register "+name, zap.Error(err))
}

// maxPathLabelLength bounds the path label.
const maxPathLabelLength = 256

// HTTPMetrics records every request in http_request_duration_seconds. The
// path label is the chi route pattern ("/v1/currencies/{code}"), so place it
// inside the router, after logging.Recoverer.
func HTTPMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, max(r.ProtoMajor, 1))

		next.ServeHTTP(ww, r)

		reqDuration.WithLabelValues(
			routeLabel(r),
			r.Method,
			strconv.Itoa(statusLabel(ww.Status())),
		).Observe(time.Since(start).Seconds())
	})
}

// statusLabel maps "never written" to 200 and anything outside 100..599 to 500.
func statusLabel(code int) int {
	switch {
	case code == 0:
		return http.StatusOK
	case code < 100 || code > 599:
		return http.StatusInternalServerError
	}
	return code
}

// routeLabel prefers the matched route pattern over the raw path. Long values
// are cut at a rune boundary and marked with "...".
func routeLabel(r *http.Request) string {
	path := r.URL.Path
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			path = pattern
		}
	}
	if len(path) > maxPathLabelLength {
		path = truncateUTF8(path, maxPathLabelLength-3) + "..."
	}
	return path
}

// Handler returns an http.Handler that exposes the Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// truncateUTF8 cuts s to at most maxBytes without splitting a rune.
func truncateUTF8(s string, maxBytes int) string {
	if maxBytes <= 0 {
		return ""
	}
	if len(s) <= maxBytes {
		return s
	}
	for maxBytes > 0 && !utf8.RuneStart(s[maxBytes]) {
		maxBytes--
	}
	return s[:maxBytes]
}
