package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/crucial707/file-comparator/internal/middleware"
	"github.com/crucial707/file-comparator/internal/models"
	"github.com/crucial707/file-comparator/internal/repo"
)

// ComparisonHandler saves, lists, and deletes a user's stored comparisons.
type ComparisonHandler struct {
	Repo *repo.ComparisonRepo
}

// Save stores a comparison result for the authenticated user.
func (h *ComparisonHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONError(w, "token is missing", http.StatusUnauthorized)
		return
	}

	var input struct {
		Filename1 string  `json:"filename1"`
		Filename2 string  `json:"filename2"`
		Diff      *string `json:"diff"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid json", http.StatusBadRequest)
		return
	}
	// An empty diff is valid (identical files); a missing field is not.
	if input.Filename1 == "" || input.Filename2 == "" || input.Diff == nil {
		JSONError(w, "missing data", http.StatusBadRequest)
		return
	}

	c, err := h.Repo.Create(r.Context(), userID, input.Filename1, input.Filename2, *input.Diff)
	if err != nil {
		slog.Error("save comparison", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSON(w, map[string]interface{}{
		"message":    "comparison saved",
		"comparison": c,
	}, http.StatusCreated)
}

// List returns the authenticated user's comparisons, newest first.
func (h *ComparisonHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONError(w, "token is missing", http.StatusUnauthorized)
		return
	}

	list, err := h.Repo.ListByUser(r.Context(), userID)
	if err != nil {
		slog.Error("list comparisons", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []models.Comparison{}
	}

	JSON(w, list, http.StatusOK)
}

// Delete removes one comparison. The repo checks ownership inside the DELETE
// statement; a miss is a 404 whether the row is absent or someone else's.
func (h *ComparisonHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONError(w, "token is missing", http.StatusUnauthorized)
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid comparison id", http.StatusBadRequest)
		return
	}

	if err := h.Repo.Delete(r.Context(), id, userID); err != nil {
		if err == repo.ErrComparisonNotFound {
			JSONError(w, "comparison not found", http.StatusNotFound)
			return
		}
		slog.Error("delete comparison", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSON(w, map[string]string{"message": "comparison deleted"}, http.StatusOK)
}
