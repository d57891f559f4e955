package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OperationsStarted counts operations that reached the pending state by kind
	OperationsStarted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tonlink_operations_started_total",
			Help: "Total number of wallet operations started",
		},
		[]string{"kind"},
	)

	// OperationsCompleted counts settled operations by kind and outcome code
	OperationsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tonlink_operations_completed_total",
			Help: "Total number of wallet operations settled",
		},
		[]string{"kind", "outcome"},
	)

	// OperationDuration tracks the time between the deep link and the outcome
	OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tonlink_operation_duration_seconds",
			Help:    "Wallet operation round-trip duration in seconds",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300},
		},
		[]string{"kind"},
	)

	// PendingOperations tracks in-flight operations by kind
	PendingOperations = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tonlink_pending_operations",
			Help: "Number of pending wallet operations by kind",
		},
		[]string{"kind"},
	)

	// CallbacksReceived counts inbound callback links by parsed shape
	CallbacksReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tonlink_callbacks_received_total",
			Help: "Total number of inbound callback links",
		},
		[]string{"shape", "handled"},
	)

	// ProofVerifications counts connection proof checks by result
	ProofVerifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tonlink_proof_verifications_total",
			Help: "Total number of connection proof verifications",
		},
		[]string{"result"},
	)

	// ErrorsTotal counts errors by type
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tonlink_errors_total",
			Help: "Total number of errors",
		},
		[]string{"component", "error_type"},
	)

	// Connected is 1 while a wallet is connected
	Connected = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tonlink_wallet_connected",
			Help: "Whether a wallet is currently connected",
		},
	)
)
