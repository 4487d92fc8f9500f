package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"

	"github.com/soyeahso/agentdex/internal/catalog"
)

// HealthResponse is returned by the public health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}

// AgentListResponse wraps a set of catalog records.
type AgentListResponse struct {
	Count          int                   `json:"count"`
	CatalogVersion string                `json:"catalogVersion"`
	Keyword        string                `json:"keyword,omitempty"`
	Agents         []catalog.AgentRecord `json:"agents"`
}

// registerHTTPRoutes sets up all HTTP routes on the server mux.
func (s *Server) registerHTTPRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /agents", s.handleListAgents)
	mux.HandleFunc("GET /agents/{name}", s.handleGetAgent)
	mux.HandleFunc("GET /search", s.handleSearch)
	mux.HandleFunc("GET /ws", s.handleWebSocket)

	// Catch-all for unknown routes
	mux.HandleFunc("/", handleNotFound)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func (s *Server) handleListAgents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, AgentListResponse{
		Count:          s.cat.Len(),
		CatalogVersion: s.cat.Version(),
		Agents:         s.cat.Records(),
	})
}

func (s *Server) handleGetAgent(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	rec, err := s.cat.Get(name)
	if err != nil {
		var nf *catalog.NotFoundError
		if errors.As(err, &nf) {
			writeJSON(w, http.StatusNotFound, ErrorShape{
				Code:        "not_found",
				Message:     nf.Error(),
				Suggestions: nf.Suggestions,
			})
			return
		}
		writeJSON(w, http.StatusInternalServerError, ErrorShape{Code: "internal", Message: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("purpose")
	matched := slices.AppendSeq(make([]catalog.AgentRecord, 0), s.cat.FilterByPurpose(keyword))

	writeJSON(w, http.StatusOK, AgentListResponse{
		Count:          len(matched),
		CatalogVersion: s.cat.Version(),
		Keyword:        keyword,
		Agents:         matched,
	})
}

// handleNotFound returns a 404 for unknown routes.
func handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]string{
		"error": "not found",
		"path":  r.URL.Path,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
