package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/bryanmalak/real-time-power-monitoring/internal/energy"
	"github.com/bryanmalak/real-time-power-monitoring/internal/history"
	"github.com/bryanmalak/real-time-power-monitoring/internal/models"
)

// DeviceSource exposes the fixed appliance set with its configured
// bounds. Implemented by the simulator.
type DeviceSource interface {
	Devices() []models.DeviceInfo
}

// Handlers serves the dashboard's JSON API from the in-memory series
// store. Handlers only read snapshot copies; the simulator remains the
// sole writer.
type Handlers struct {
	Devices   DeviceSource
	Store     *history.Store
	Estimator energy.Estimator
}

// Health reports liveness.
func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// ListDevices returns the simulated appliances and their watt bounds.
func (h *Handlers) ListDevices(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, h.Devices.Devices())
}

type seriesResponse struct {
	MaxSamples int                               `json:"max_samples"`
	SeriesLen  int                               `json:"series_len"`
	Series     map[models.Device][]models.Sample `json:"series"`
}

// AllSeries returns the full buffered series for every device.
func (h *Handlers) AllSeries(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, seriesResponse{
		MaxSamples: h.Store.MaxSamples(),
		SeriesLen:  h.Store.Len(),
		Series:     h.Store.Snapshot(),
	})
}

// DeviceSeries returns the buffered series for one device.
func (h *Handlers) DeviceSeries(w http.ResponseWriter, r *http.Request) {
	device := models.Device(mux.Vars(r)["device"])
	if !device.Valid() {
		writeError(w, http.StatusNotFound, "unknown device")
		return
	}
	series := h.Store.Series(device)
	if series == nil {
		series = []models.Sample{}
	}
	writeJSON(w, series)
}

// Latest returns the most recent sample per device.
func (h *Handlers) Latest(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, h.Store.Latest())
}

type costsResponse struct {
	RateUSDPerKWh float64                 `json:"rate_usd_per_kwh"`
	Costs         []energy.CostProjection `json:"costs"`
}

// Costs returns running cost projections per device, extrapolated from
// the mean draw over the buffered window.
func (h *Handlers) Costs(w http.ResponseWriter, _ *http.Request) {
	devices := h.Store.Devices()
	costs := make([]energy.CostProjection, 0, len(devices))
	for _, device := range devices {
		costs = append(costs, h.Estimator.Project(device, h.Store.Series(device)))
	}
	writeJSON(w, costsResponse{
		RateUSDPerKWh: h.Estimator.RateUSDPerKWh(),
		Costs:         costs,
	})
}

// Summary returns mean, peak, and latest draw per device.
func (h *Handlers) Summary(w http.ResponseWriter, _ *http.Request) {
	devices := h.Store.Devices()
	summaries := make([]energy.Summary, 0, len(devices))
	for _, device := range devices {
		summaries = append(summaries, energy.Summarize(device, h.Store.Series(device)))
	}
	writeJSON(w, summaries)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
