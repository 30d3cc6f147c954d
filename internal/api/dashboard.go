package api

import (
	_ "embed"
	"net/http"
)

//go:embed static/index.html
var dashboardHTML []byte

// Dashboard serves the embedded single-page chart that renders the live
// sample stream.
func (h *Handlers) Dashboard(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(dashboardHTML)
}
