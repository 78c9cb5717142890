package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	Commands = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "sinuca_commands_total", Help: "Bracket commands by outcome"},
		[]string{"command", "outcome"},
	)
	VersionConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "sinuca_version_conflicts_total", Help: "Saves rejected because the tournament changed underneath"},
	)
	Published = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "sinuca_ws_messages_total", Help: "Messages published to websocket rooms"},
	)
	Subscribers = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "sinuca_ws_clients", Help: "Connected websocket clients"},
	)
)

func Register() {
	prometheus.MustRegister(Commands, VersionConflicts, Published, Subscribers)
}
