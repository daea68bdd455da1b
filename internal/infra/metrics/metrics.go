package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ticksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "meter_ticks_total",
		Help: "Completed simulation ticks.",
	})
	billsUpserted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "meter_bills_upserted_total",
		Help: "Bills created or refreshed by the engine.",
	})
	notificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "meter_notifications_total",
		Help: "Notifications persisted, by type.",
	}, []string{"type"})
	deliveryFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "meter_delivery_failures_total",
		Help: "Out-of-band deliveries the gateway rejected.",
	})
)

func IncTick() { ticksTotal.Inc() }

func IncBillUpsert() { billsUpserted.Inc() }

func IncNotification(kind string) { notificationsTotal.WithLabelValues(kind).Inc() }

func IncDeliveryFailure() { deliveryFailures.Inc() }
