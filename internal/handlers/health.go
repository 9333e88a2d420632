package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
)

// HealthHandler reports database connectivity.
type HealthHandler struct {
	DB *sql.DB
}

// TestDB runs a trivial query against the database and reports the outcome.
func (h *HealthHandler) TestDB(w http.ResponseWriter, r *http.Request) {
	var one int
	if err := h.DB.QueryRowContext(r.Context(), "SELECT 1").Scan(&one); err != nil {
		slog.Error("test-db", "error", err)
		JSONError(w, "db connection failed", http.StatusInternalServerError)
		return
	}
	JSON(w, map[string]string{"message": "db connection successful"}, http.StatusOK)
}
