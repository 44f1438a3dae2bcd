// Package share creates and resolves share links: the whole plan rides in
// the URL token, so resolving needs no storage.
package share

import (
	"fmt"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/calgal7-del/1040-paydays/pkg/api/middleware"
	"github.com/calgal7-del/1040-paydays/pkg/core/plan"
	"github.com/calgal7-del/1040-paydays/pkg/core/projection"
)

// CreateResponse returns the token plus the path the UI can link to.
type CreateResponse struct {
	Token string `json:"token"`
	Path  string `json:"path"`
}

// ResolveResponse returns the shared form and its sanitized reading, so the
// receiving client can render immediately without a second round trip.
type ResolveResponse struct {
	Plan  plan.SharePayload          `json:"plan"`
	Input projection.ProjectionInput `json:"input"`
}

// HandleCreate turns a posted plan into a share token.
func HandleCreate(w http.ResponseWriter, r *http.Request) {
	if middleware.CORS(w, r, "POST") {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var payload plan.SharePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	token, err := plan.EncodeShareToken(payload)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	fmt.Printf("[SHARE] Issued token (%d chars) for %q\n", len(token), payload.Name)

	writeJSON(w, CreateResponse{Token: token, Path: "/s/" + token})
}

// HandleResolve decodes /api/share/{token} back into a plan.
func HandleResolve(w http.ResponseWriter, r *http.Request) {
	if middleware.CORS(w, r, "GET") {
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	token := strings.TrimPrefix(r.URL.Path, "/api/share/")
	payload, err := plan.DecodeShareToken(token)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, ResolveResponse{Plan: payload, Input: payload.FormValues.Sanitize()})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
