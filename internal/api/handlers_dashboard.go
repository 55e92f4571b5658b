package api

import "net/http"

// handleDashboard returns the portfolio-level devis snapshot.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.dashboardUC.Executer(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}
