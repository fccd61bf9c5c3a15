package handlers

import (
	"database/sql"
	"net/http"

	"github.com/rdevries/portfolio-statement-backend/internal/api/response"
	"github.com/rdevries/portfolio-statement-backend/internal/database"
)

// SystemHandler handles system-level requests
type SystemHandler struct {
	db *sql.DB
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db *sql.DB) *SystemHandler {
	return &SystemHandler{db: db}
}

// Health reports whether the service and its database are reachable
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := database.HealthCheck(h.db); err != nil {
		response.RespondError(w, http.StatusServiceUnavailable, "database unreachable", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
