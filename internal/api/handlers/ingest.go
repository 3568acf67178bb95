package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gameshelf/gameshelf/internal/ingest"
	"github.com/sirupsen/logrus"
)

type IngestHandler struct {
	scheduler *ingest.Scheduler
	logger    *logrus.Logger
}

func NewIngestHandler(scheduler *ingest.Scheduler, logger *logrus.Logger) *IngestHandler {
	return &IngestHandler{scheduler: scheduler, logger: logger}
}

type SyncResponse struct {
	Status string `json:"status"`
}

// Sync kicks a refresh run in the background. 409 when one is already in
// flight.
func (h *IngestHandler) Sync(w http.ResponseWriter, r *http.Request) {
	err := h.scheduler.RunAsync()
	if errors.Is(err, ingest.ErrRefreshInProgress) {
		http.Error(w, "Refresh already in progress", http.StatusConflict)
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("manual sync trigger failed")
		http.Error(w, "Failed to start refresh", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(SyncResponse{Status: "started"})
}
