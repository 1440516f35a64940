package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// ReqCount counts HTTP requests by method, route and status.
	ReqCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskrewards_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ReqDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "taskrewards_request_duration_seconds",
			Help: "Request duration seconds",
		},
		[]string{"method", "path"},
	)

	ErrorCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskrewards_errors_total",
			Help: "Total application errors",
		},
		[]string{"handler", "type"},
	)

	TasksCompleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "taskrewards_tasks_completed_total",
			Help: "Total task completions, including repeated completions",
		},
	)

	// CardsDrawn counts reward draws by the rarity of the drawn card.
	CardsDrawn = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskrewards_cards_drawn_total",
			Help: "Total cards drawn as rewards",
		},
		[]string{"rarity"},
	)
)

var registerOnce sync.Once

// Register adds all collectors to the default registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(ReqCount, ReqDuration, ErrorCount, TasksCompleted, CardsDrawn)
	})
}
