package payments

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	paymentsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "backoffice",
		Subsystem: "payments",
		Name:      "submitted_total",
		Help:      "Payment instructions submitted to the payment API",
	})

	paymentsDiscarded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "backoffice",
		Subsystem: "payments",
		Name:      "discarded_total",
		Help:      "Orders dropped before submission (no payment term, no bank code, or schema violation)",
	})

	paymentsTransferred = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "backoffice",
		Subsystem: "payments",
		Name:      "transferred_total",
		Help:      "Transfers confirmed by the payment API",
	})
)
