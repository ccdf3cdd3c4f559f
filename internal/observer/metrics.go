package observer

import "github.com/prometheus/client_golang/prometheus"

var (
	notificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "contactd",
			Subsystem: "observer",
			Name:      "notifications_total",
			Help:      "Total change notifications fanned out, by event kind",
		},
		[]string{"kind"},
	)

	deliveriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "contactd",
			Subsystem: "observer",
			Name:      "deliveries_total",
			Help:      "Per-observer delivery outcomes",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(notificationsTotal, deliveriesTotal)
}
