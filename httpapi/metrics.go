package httpapi

import "github.com/prometheus/client_golang/prometheus"

var (
	subprocessesStarted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "agentcli_bridge_subprocesses_started_total",
		Help: "Total number of upstream CLI subprocesses spawned.",
	})

	dispatchModeTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "agentcli_bridge_dispatch_mode_total",
		Help: "Requests served per response-dispatch mode.",
	}, []string{"mode"})

	sessionStoreSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "agentcli_bridge_session_store_size",
		Help: "Current number of session mappings held in memory.",
	})
)

func init() {
	prometheus.MustRegister(subprocessesStarted, dispatchModeTotal, sessionStoreSize)
}
