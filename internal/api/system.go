package api

import "net/http"

// handleHealth returns the server health status. Open endpoint used by
// terminals and monitoring.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
	})
}

// handleSystemStats reports operational counters for the admin screen.
func (s *Server) handleSystemStats(w http.ResponseWriter, r *http.Request) {
	staffCount, err := s.staffRepo.Count(r.Context())
	if err != nil {
		s.logger.Error("counting staff failed", "error", err)
		writeInternalError(w, "internal server error")
		return
	}
	categoryCount, err := s.catalogRepo.CountCategories(r.Context())
	if err != nil {
		s.logger.Error("counting categories failed", "error", err)
		writeInternalError(w, "internal server error")
		return
	}

	stats := map[string]any{
		"version":        s.version,
		"ws_sessions":    s.hub.SessionCount(),
		"staff_count":    staffCount,
		"category_count": categoryCount,
		"mqtt_connected": s.mqtt != nil && s.mqtt.IsConnected(),
	}
	writeJSON(w, http.StatusOK, stats)
}
