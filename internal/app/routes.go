package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Health / sync status
	r.HandleFunc("/api/health", deps.SyncHandler.GetStatus).Methods("GET")
	r.HandleFunc("/api/sync/status", deps.SyncHandler.GetStatus).Methods("GET")

	// Manual cycle trigger
	r.HandleFunc("/api/sync/run", deps.SyncHandler.TriggerSync).Methods("POST")
}
