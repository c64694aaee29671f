package server

import (
	"encoding/json"
	"net/http"

	"github.com/lazypower/hologram/internal/checkpoint"
	"github.com/lazypower/hologram/internal/pressure"
	"github.com/lazypower/hologram/internal/ranking"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// scopeParam reads the scope query parameter, mapping absence to the
// global scope.
func scopeParam(r *http.Request) string {
	return pressure.ScopeFor(r.URL.Query().Get("scope"))
}

// handlePressure returns the persisted rows for a scope, hottest first.
// min narrows by temperature: HOT, WARM or COLD (the default).
func (s *Server) handlePressure(w http.ResponseWriter, r *http.Request) {
	min := pressure.Cold
	switch r.URL.Query().Get("min") {
	case "HOT":
		min = pressure.Hot
	case "WARM":
		min = pressure.Warm
	case "", "COLD":
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "min must be HOT, WARM or COLD"})
		return
	}

	scope := scopeParam(r)
	files := make([]pressure.ScoredFile, 0)
	files = append(files, s.pressure.ScoredAbove(scope, min)...)
	writeJSON(w, http.StatusOK, map[string]any{
		"scope": scope,
		"files": files,
	})
}

// handleContext runs the full degradation chain and returns the suggestion
// with its source tier, so operators can see what a session would get.
func (s *Server) handleContext(w http.ResponseWriter, r *http.Request) {
	scope := scopeParam(r)

	var recent []string
	for _, row := range s.pressure.Query(scope, pressure.Cold) {
		recent = append(recent, row.FilePath)
	}

	suggestion := s.engine.Suggest(scope, ranking.RequestPayload{
		Prompt: r.URL.Query().Get("prompt"),
	}, recent)
	writeJSON(w, http.StatusOK, suggestion)
}

func (s *Server) handleCheckpoints(w http.ResponseWriter, r *http.Request) {
	names := checkpoint.List(s.checkpointDir)
	if names == nil {
		names = []string{}
	}
	pointer, _ := checkpoint.ReadPointer(s.checkpointDir)
	writeJSON(w, http.StatusOK, map[string]any{
		"checkpoints": names,
		"pointer":     pointer,
	})
}

func (s *Server) handleLatestCheckpoint(w http.ResponseWriter, r *http.Request) {
	res := checkpoint.Recover(s.checkpointDir)
	if res == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no valid checkpoint"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"checkpoint":    res.Checkpoint,
		"recovery_path": res.RecoveryPath,
	})
}

func (s *Server) handleMemories(w http.ResponseWriter, r *http.Request) {
	scope := scopeParam(r)
	items, err := s.db.ListMemories(scope)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"scope":    scope,
		"memories": items,
	})
}

// handleDecay applies one decay pass to the scope and reports how many rows
// changed.
func (s *Server) handleDecay(w http.ResponseWriter, r *http.Request) {
	// An explicit empty scope decays every row; a named scope only its own.
	scope := r.URL.Query().Get("scope")
	changed := s.pressure.DecayAll(scope)
	writeJSON(w, http.StatusOK, map[string]any{
		"scope":   scope,
		"changed": changed,
	})
}
