// Package server exposes profiling, validation, merging, and export as an
// HTTP API, for callers that want a running service instead of a one-shot
// CLI invocation.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/patternscope/patternscope"
	"github.com/patternscope/patternscope/internal/store"
)

// Server is the HTTP adapter around patternscope's core API.
type Server struct {
	router *chi.Mux
	store  *store.Store
}

// ProfileRequest is the body of POST /profile. Values is decoded as raw
// JSON so handleProfile can run it through patternscope.DecodeValues
// and surface ErrNotAList/ErrNonStringValues for a malformed top-level
// value instead of a generic decode error.
type ProfileRequest struct {
	Values  json.RawMessage       `json:"values"`
	Options *patternscope.Options `json:"options,omitempty"`
}

// ValidateRequest is the body of POST /validate.
type ValidateRequest struct {
	ProfileID string `json:"profile_id"`
	Value     string `json:"value"`
}

// MergeRequest is the body of POST /merge.
type MergeRequest struct {
	ProfileIDA string `json:"profile_id_a"`
	ProfileIDB string `json:"profile_id_b"`
}

// New builds a Server backed by st.
func New(st *store.Store) *Server {
	s := &Server{
		router: chi.NewRouter(),
		store:  st,
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Post("/profile", s.handleProfile)
		r.Get("/profile/{id}", s.handleGetProfile)
		r.Post("/validate", s.handleValidate)
		r.Post("/merge", s.handleMerge)
	})

	return s
}

// ListenAndServe opens a local store under the user's config directory and
// serves the API at addr until the process exits.
func ListenAndServe(addr string) error {
	st, err := store.Open(store.DefaultConfig(defaultStorePath()))
	if err != nil {
		return err
	}
	defer st.Close()

	return http.ListenAndServe(addr, New(st).router)
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".config/patternscope/profiles.db")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	var req ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	values, err := patternscope.DecodeValues(req.Values)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	opts := patternscope.DefaultOptions
	if req.Options != nil {
		opts = *req.Options
	}

	profile, err := patternscope.NewProfile(values, opts)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	exported := patternscope.Export(profile)
	if err := s.store.Put(r.Context(), profile.ID.String(), exported); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusCreated, exported)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	exported, err := s.store.Get(r.Context(), id)
	if err == store.ErrNotFound {
		s.respondError(w, http.StatusNotFound, "profile not found")
		return
	}
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, exported)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := s.rebuildProfile(r.Context(), req.ProfileID)
	if err != nil {
		s.respondError(w, http.StatusNotFound, err.Error())
		return
	}

	if err := patternscope.Validate(profile, req.Value); err != nil {
		s.respondJSON(w, http.StatusOK, map[string]any{"matched": false, "error": err.Error()})
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"matched": true})
}

func (s *Server) handleMerge(w http.ResponseWriter, r *http.Request) {
	var req MergeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := s.rebuildProfile(r.Context(), req.ProfileIDA)
	if err != nil {
		s.respondError(w, http.StatusNotFound, err.Error())
		return
	}
	b, err := s.rebuildProfile(r.Context(), req.ProfileIDB)
	if err != nil {
		s.respondError(w, http.StatusNotFound, err.Error())
		return
	}

	merged := patternscope.Merge(a, b)
	exported := patternscope.Export(merged)
	if err := s.store.Put(r.Context(), merged.ID.String(), exported); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusCreated, exported)
}

// rebuildProfile loads an exported record and re-profiles its recorded
// pattern members, since Profile itself is never persisted, only its
// export.
func (s *Server) rebuildProfile(ctx context.Context, id string) (*patternscope.Profile, error) {
	exported, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	rawPatterns, _ := exported["patterns"].([]any)
	members := make([]string, 0)
	for _, rp := range rawPatterns {
		p, ok := rp.(map[string]any)
		if !ok {
			continue
		}
		rawMembers, _ := p["members"].([]any)
		for _, m := range rawMembers {
			if v, ok := m.(string); ok {
				members = append(members, v)
			}
		}
	}

	return patternscope.NewProfile(members, patternscope.DefaultOptions)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
