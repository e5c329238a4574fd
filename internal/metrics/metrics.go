package metrics

import (
	"errors"

	"github.com/jdillenkofer/slash3"
	"github.com/jdillenkofer/slash3/bucketname"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	ResultValid         = "valid"
	ResultMalformedUri  = "malformed_uri"
	ResultMalformedKey  = "malformed_key"
	ResultInvalidBucket = "invalid_bucket"
	ResultOther         = "other"
)

type Metrics struct {
	registry         *prometheus.Registry
	validatedCounter *prometheus.CounterVec
	bucketsCounter   *prometheus.CounterVec
}

func New() (*Metrics, error) {
	registry := prometheus.NewRegistry()

	validatedCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "slash3",
			Subsystem: "validate",
			Name:      "uris_total",
			Help:      "No of URIs validated partitioned by result",
		},
		[]string{"result"},
	)

	bucketsCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "slash3",
			Subsystem: "validate",
			Name:      "valid_uris_by_bucket_total",
			Help:      "No of valid URIs partitioned by bucket",
		},
		[]string{"bucket"},
	)

	for _, collector := range []prometheus.Collector{validatedCounter, bucketsCounter} {
		if err := registry.Register(collector); err != nil {
			return nil, err
		}
	}

	return &Metrics{
		registry:         registry,
		validatedCounter: validatedCounter,
		bucketsCounter:   bucketsCounter,
	}, nil
}

// Result maps a validation error to the result label it is counted under.
func Result(err error) string {
	switch {
	case err == nil:
		return ResultValid
	case errors.Is(err, slash3.ErrMalformedUri):
		return ResultMalformedUri
	case errors.Is(err, slash3.ErrMalformedKey):
		return ResultMalformedKey
	case errors.Is(err, bucketname.ErrInvalidBucketName):
		return ResultInvalidBucket
	default:
		return ResultOther
	}
}

// Observe counts one validated URI. u is ignored when err is set.
func (m *Metrics) Observe(u slash3.Uri, err error) {
	m.validatedCounter.WithLabelValues(Result(err)).Inc()
	if err == nil {
		m.bucketsCounter.WithLabelValues(u.Bucket()).Inc()
	}
}

func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteToTextfile writes all metrics in the text exposition format, for
// node_exporter's textfile collector.
func (m *Metrics) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
