package server

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "paperview_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paperview_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paperview_errors_total",
			Help: "Total error responses by code",
		},
		[]string{"code"},
	)

	GraphsBuilt = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paperview_graphs_built_total",
			Help: "Citation graphs synthesized, by record source",
		},
		[]string{"source"},
	)

	GraphNodes = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "paperview_graph_nodes",
			Help:    "Node count of synthesized graphs",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal, ErrorsTotal,
		GraphsBuilt, GraphNodes,
	)
}
