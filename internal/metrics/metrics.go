package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values of GeocodingErrors.
const (
	ReasonUpstream = "upstream"
	ReasonNotFound = "not_found"
	ReasonOther    = "other"
)

type Metrics struct {
	GeocodingSeconds *prometheus.HistogramVec
	GeocodingErrors  *prometheus.CounterVec
	CafesLoaded      prometheus.Gauge
	CafesRanked      prometheus.Gauge
	ArtifactRequests *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		GeocodingSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cafemap_geocoding_request_duration_seconds",
			Help:    "Duration of requests to the geocoding provider API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		GeocodingErrors: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "cafemap_geocoding_errors_total",
			Help: "Total number of failed geocoding requests by reason.",
		}, []string{"reason"}),
		CafesLoaded: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "cafemap_cafes_loaded",
			Help: "Number of cafes read from the cafe source.",
		}),
		CafesRanked: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "cafemap_cafes_ranked",
			Help: "Number of nearest cafes put on the map.",
		}),
		ArtifactRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "cafemap_artifact_requests_total",
			Help: "Total number of map page requests by response status.",
		}, []string{"status"}),
	}
}
