package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bryanmalak/real-time-power-monitoring/internal/simulator"
)

var (
	deviceWatts = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "power_monitor_device_watts",
		Help: "Latest simulated power draw per device.",
	}, []string{"device"})

	ticksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "power_monitor_ticks_total",
		Help: "Number of completed simulation ticks.",
	})

	seriesLength = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "power_monitor_series_length",
		Help: "Current number of buffered samples per device series.",
	})

	streamClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "power_monitor_stream_clients",
		Help: "Number of connected dashboard stream clients.",
	})
)

// ObserveTick records the readings produced by one simulation tick.
func ObserveTick(snap simulator.TickSnapshot) {
	for _, sample := range snap.Readings {
		deviceWatts.WithLabelValues(string(sample.Device)).Set(sample.Watts)
	}
	ticksTotal.Inc()
	seriesLength.Set(float64(snap.SeriesLen))
}

// StreamClientConnected adjusts the connected stream client gauge.
func StreamClientConnected(delta int) {
	streamClients.Add(float64(delta))
}
