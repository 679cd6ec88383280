package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTP and dispatch Prometheus metrics. Defined in a standalone package to avoid
// import cycles between the mail/billing packages and the HTTP layer.

var (
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_ms",
		Help:    "Duración de requests HTTP en milisegundos",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"method", "path", "status"})

	CredentialsSent = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "credentials_emails_sent_total",
		Help: "Correos de credenciales enviados con éxito",
	})

	CredentialsFailed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "credentials_emails_failed_total",
		Help: "Correos de credenciales fallidos, por etapa (encode|compose|dispatch)",
	}, []string{"stage"})

	SubscriptionsResumed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "subscriptions_resumed_total",
		Help: "Suscripciones con cancelación pendiente reanudadas",
	})

	SitesRegistered = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sites_registered_total",
		Help: "Sites registrados",
	})
)

// ObserveHTTPRequest registra la duración de un request.
func ObserveHTTPRequest(method, path string, status int, d time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, strconv.Itoa(status)).
		Observe(float64(d.Milliseconds()))
}

// Register registers all metrics on the given registry (or default if nil).
func Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	cs := []prometheus.Collector{
		HTTPRequestDuration,
		CredentialsSent,
		CredentialsFailed,
		SubscriptionsResumed,
		SitesRegistered,
	}
	for _, c := range cs {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}
	return nil
}
