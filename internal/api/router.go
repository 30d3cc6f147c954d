package api

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires every HTTP surface of the dashboard: the JSON API, the
// live stream, Prometheus metrics, and the embedded chart page.
func NewRouter(h *Handlers, hub *Hub) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", h.Health).Methods("GET")
	r.HandleFunc("/api/devices", h.ListDevices).Methods("GET")
	r.HandleFunc("/api/series", h.AllSeries).Methods("GET")
	r.HandleFunc("/api/series/{device}", h.DeviceSeries).Methods("GET")
	r.HandleFunc("/api/latest", h.Latest).Methods("GET")
	r.HandleFunc("/api/costs", h.Costs).Methods("GET")
	r.HandleFunc("/api/summary", h.Summary).Methods("GET")
	r.HandleFunc("/api/stream", hub.HandleStream).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/", h.Dashboard).Methods("GET")

	return r
}
