// Package metrics defines the service's Prometheus instruments. Counters
// are registered once at init through promauto and shared across packages.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersSubmittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "procserve_orders_submitted_total",
		Help: "Total number of drafts successfully submitted as orders.",
	})

	BidsAcceptedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "procserve_bids_accepted_total",
		Help: "Total number of bids accepted.",
	})

	DraftsPurged = promauto.NewCounter(prometheus.CounterOpts{
		Name: "procserve_drafts_purged_total",
		Help: "Total number of stale drafts removed by the purge job.",
	})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "procserve_http_requests_total",
		Help: "Total HTTP requests by method, path and status code.",
	},
		[]string{"method", "path", "status"},
	)
)
