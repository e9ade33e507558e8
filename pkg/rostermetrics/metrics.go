// Package rostermetrics exposes Prometheus instrumentation for snapshot
// rebuilds and hierarchy health.
package rostermetrics

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RebuildsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "roster_hierarchy_rebuilds_total",
		Help: "Number of hierarchy snapshot rebuilds.",
	})

	HierarchyErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "roster_hierarchy_errors_total",
		Help: "Structural errors found during snapshot rebuilds, by kind.",
	}, []string{"kind"})

	ExcludedUnits = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "roster_hierarchy_excluded_units",
		Help: "Units excluded from traversal in the current snapshot.",
	})

	SnapshotUnits = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "roster_snapshot_units",
		Help: "Units loaded into the current snapshot.",
	})

	SnapshotPersonnel = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "roster_snapshot_personnel",
		Help: "Personnel loaded into the current snapshot.",
	})
)

type PrometheusController struct {
	path string
}

func NewPrometheusController(path string) *PrometheusController {
	if path == "" {
		path = "/debug/prometheus"
	}
	return &PrometheusController{path: path}
}

func (c *PrometheusController) Key() string {
	return c.path
}

func (c *PrometheusController) Register(r *mux.Router) {
	r.Handle(c.path, promhttp.Handler()).Methods(http.MethodGet)
}

// Serve blocks serving the metrics endpoint on addr.
func (c *PrometheusController) Serve(addr string) error {
	r := mux.NewRouter()
	c.Register(r)
	return http.ListenAndServe(addr, r)
}
