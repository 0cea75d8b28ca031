package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"synastry-service/ephemeris"
	"synastry-service/service"
)

const maxBodyBytes = 1 << 20

type synastryRequest struct {
	First  service.ChartInput `json:"first"`
	Second service.ChartInput `json:"second"`
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errBadBody, err)
	}
	return nil
}

func writeText(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(text))
}

// handleHealthCheck provides a simple health check endpoint
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *Server) handleComputeChart(w http.ResponseWriter, r *http.Request) {
	var in service.ChartInput
	if err := decode(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.svc.ComputeChart(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleSynastry(w http.ResponseWriter, r *http.Request) {
	var req synastryRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.svc.Synastry(r.Context(), req.First, req.Second)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var in service.ProfileInput
	if err := decode(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.svc.CreateProfile(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.svc.Profiles(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"profiles": profiles,
		"count":    len(profiles),
	})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.Profile(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteProfile(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleNatalReport(w http.ResponseWriter, r *http.Request) {
	text, err := s.svc.NatalReport(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeText(w, text)
}

func (s *Server) handleProfileSynastry(w http.ResponseWriter, r *http.Request) {
	id, otherID := chi.URLParam(r, "id"), chi.URLParam(r, "otherID")
	if r.URL.Query().Get("format") == "text" {
		text, err := s.svc.SynastryReport(r.Context(), id, otherID)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeText(w, text)
		return
	}
	res, err := s.svc.ProfileSynastry(r.Context(), id, otherID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleMatches(w http.ResponseWriter, r *http.Request) {
	minAge, err := intParam(r, "minAge")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	maxAge, err := intParam(r, "maxAge")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	matches, err := s.svc.Matches(r.Context(), chi.URLParam(r, "id"), minAge, maxAge)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"matches": matches,
		"count":   len(matches),
	})
}

func (s *Server) handleSearchLocations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	locs, err := s.svc.SearchLocations(r.Context(), q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"query":     q,
		"locations": locs,
	})
}

// intParam reads an optional integer query parameter; absent means 0.
func intParam(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", ephemeris.ErrInvalidInput, name)
	}
	return v, nil
}
