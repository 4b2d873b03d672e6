package handlers

import (
	"net/http"
	"time"
)

type HealthResponse struct {
	Status      string  `json:"status"`
	Timestamp   string  `json:"timestamp"`
	Uptime      float64 `json:"uptime"`
	Environment string  `json:"environment"`
	Database    string  `json:"database"`
	Tables      int     `json:"tables"`
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	check := h.HealthService.Check(r.Context())

	resp := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    h.HealthService.Uptime().Seconds(),
		Database:  check.Database,
		Tables:    check.Tables,
	}
	if h.Cfg != nil {
		resp.Environment = h.Cfg.Environment
	}

	status := http.StatusOK
	if !check.Healthy {
		resp.Status = "error"
		status = http.StatusServiceUnavailable
	}

	writeSuccess(w, resp, status)
}

func (h *Handlers) Ready(w http.ResponseWriter, r *http.Request) {
	if !h.HealthService.Check(r.Context()).Healthy {
		writeSuccess(w, map[string]bool{"ready": false}, http.StatusServiceUnavailable)
		return
	}
	writeSuccess(w, map[string]bool{"ready": true}, http.StatusOK)
}

func (h *Handlers) Live(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, map[string]bool{"alive": true}, http.StatusOK)
}
