package metrics

import (
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// System metrics
	SystemMemoryUsage = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "system_memory_bytes",
		Help: "Current system memory usage",
	})

	SystemGoroutines = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "system_goroutines",
		Help: "Number of goroutines",
	})

	// Graph metrics for the most recent extraction run
	GraphNodeCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "graph_nodes_total",
		Help: "Resolved entities in the latest relationship graph",
	})

	GraphEdgeCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "graph_edges_total",
		Help: "Triplet edges in the latest relationship graph",
	})
)

// UpdateSystemMetrics updates system-level metrics.
func UpdateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	SystemMemoryUsage.Set(float64(m.Alloc))
	SystemGoroutines.Set(float64(runtime.NumGoroutine()))
}

// RecordGraphSize records the node and edge counts of a finished run.
func RecordGraphSize(nodes, edges int) {
	GraphNodeCount.Set(float64(nodes))
	GraphEdgeCount.Set(float64(edges))
}
