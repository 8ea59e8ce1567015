package api

import (
	"net/http"

	"github.com/vytor/heptareview/internal/logger"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Debug("handling stats request")

	stats, err := s.StatsService.GetStats(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, stats)
}

func (s *Server) handleSubjectDistribution(w http.ResponseWriter, r *http.Request) {
	dist, err := s.StatsService.GetSubjectDistribution(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, dist)
}

func (s *Server) handleFamiliarityDistribution(w http.ResponseWriter, r *http.Request) {
	dist, err := s.StatsService.GetFamiliarityDistribution(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, dist)
}
