// Package plans serves saved-plan CRUD plus the lenient import endpoint.
package plans

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/calgal7-del/1040-paydays/pkg/api/middleware"
	"github.com/calgal7-del/1040-paydays/pkg/core/plan"
	"github.com/calgal7-del/1040-paydays/pkg/core/store"
	"github.com/calgal7-del/1040-paydays/pkg/models"
)

// maxImportBytes bounds the lenient import body.
const maxImportBytes = 64 * 1024

// Handler holds the plan endpoints' dependencies.
type Handler struct {
	Repo store.PlanRepo
}

// NewHandler creates a plans handler over the given repository.
func NewHandler(repo store.PlanRepo) *Handler {
	return &Handler{Repo: repo}
}

// HandleCollection serves the collection route: GET lists recent plans,
// POST saves one.
func (h *Handler) HandleCollection(w http.ResponseWriter, r *http.Request) {
	if middleware.CORS(w, r, "GET, POST") {
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.save(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleItem serves /api/plans/{id}: GET loads, DELETE removes.
func (h *Handler) HandleItem(w http.ResponseWriter, r *http.Request) {
	if middleware.CORS(w, r, "GET, DELETE") {
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/plans/")
	if id == "" || strings.Contains(id, "/") {
		http.Error(w, "invalid plan id", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		p, err := h.Repo.Load(r.Context(), id)
		if err != nil {
			h.repoError(w, err)
			return
		}
		writeJSON(w, p)
	case http.MethodDelete:
		if err := h.Repo.Delete(r.Context(), id); err != nil {
			h.repoError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleImport accepts a plan file in any dialect the lenient parser takes
// and saves it as a new plan.
func (h *Handler) HandleImport(w http.ResponseWriter, r *http.Request) {
	if middleware.CORS(w, r, "POST") {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	var payload plan.SharePayload
	if err := plan.ParseLenient(body, &payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	name := payload.Name
	if name == "" {
		name = "Imported plan"
	}

	saved, err := h.Repo.Save(r.Context(), models.SavedPlan{Name: name, FormValues: payload.FormValues})
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to save plan: %v", err), http.StatusInternalServerError)
		return
	}
	fmt.Printf("[PLANS] Imported plan %s (%q)\n", saved.ID, saved.Name)

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, saved)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if q := r.URL.Query().Get("limit"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n > 0 {
			limit = n
		}
	}

	summaries, err := h.Repo.Recent(r.Context(), limit)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to list plans: %v", err), http.StatusInternalServerError)
		return
	}
	if summaries == nil {
		summaries = []models.PlanSummary{}
	}
	writeJSON(w, summaries)
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request) {
	var p models.SavedPlan
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(p.Name) == "" {
		http.Error(w, "plan name is required", http.StatusBadRequest)
		return
	}

	saved, err := h.Repo.Save(r.Context(), p)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to save plan: %v", err), http.StatusInternalServerError)
		return
	}
	fmt.Printf("[PLANS] Saved plan %s (%q)\n", saved.ID, saved.Name)
	writeJSON(w, saved)
}

func (h *Handler) repoError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrPlanNotFound) {
		http.Error(w, "plan not found", http.StatusNotFound)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
