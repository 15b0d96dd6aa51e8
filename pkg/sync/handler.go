package sync

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/forecal/forecal/internal/rest"
	log "github.com/sirupsen/logrus"
)

type StatusDTO struct {
	TokenPresent bool      `json:"tokenPresent"`
	LastCycle    string    `json:"lastCycle,omitempty"`
	LastReport   ReportDTO `json:"lastReport"`
}

type ReportDTO struct {
	Considered int `json:"considered"`
	Rewritten  int `json:"rewritten"`
	Unchanged  int `json:"unchanged"`
	Skipped    int `json:"skipped"`
	Failed     int `json:"failed"`
}

type Handler struct {
	engine *Engine
}

func NewHandler(engine *Engine) *Handler {
	return &Handler{engine: engine}
}

// GetStatus returns the engine's observable state for health reporting.
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	status := h.engine.Status()
	if err := json.NewEncoder(w).Encode(statusToDTO(status)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// TriggerSync runs one cycle on demand, serialized with the scheduled ones.
func (h *Handler) TriggerSync(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Debug("Manual sync cycle requested")

	report, err := h.engine.Sync(r.Context())
	if err != nil {
		log.Errorf("manual sync cycle failed: %v", err)
		w.WriteHeader(http.StatusBadGateway)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Sync cycle failed",
			Details: err.Error(),
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	if err := json.NewEncoder(w).Encode(reportToDTO(report)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func statusToDTO(status Status) StatusDTO {
	dto := StatusDTO{
		TokenPresent: status.TokenPresent,
		LastReport:   reportToDTO(status.LastReport),
	}
	if !status.LastCycle.IsZero() {
		dto.LastCycle = status.LastCycle.Format(time.RFC3339)
	}
	return dto
}

func reportToDTO(report Report) ReportDTO {
	return ReportDTO{
		Considered: report.Considered,
		Rewritten:  report.Rewritten,
		Unchanged:  report.Unchanged,
		Skipped:    report.Skipped,
		Failed:     report.Failed,
	}
}
