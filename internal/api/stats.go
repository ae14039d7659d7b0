package api

import "net/http"

// handleStats returns the admin dashboard aggregates.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	dashboard, err := s.statsRepo.Dashboard(r.Context())
	if err != nil {
		s.logger.Error("building dashboard stats", "error", err)
		writeInternalError(w, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

// handleStatsPortfolio returns the detailed portfolio report.
func (s *Server) handleStatsPortfolio(w http.ResponseWriter, r *http.Request) {
	report, err := s.statsRepo.PortfolioReport(r.Context())
	if err != nil {
		s.logger.Error("building portfolio report", "error", err)
		writeInternalError(w, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, report)
}
