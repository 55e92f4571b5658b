package api

import "net/http"

// handleRecalculerTotaux recomputes a devis's cached totals bottom-up
// from its debourse/margin configuration.
func (s *Server) handleRecalculerTotaux(w http.ResponseWriter, r *http.Request) {
	identity, err := s.authManager.Identify(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := idParam(r, "id")
	if err != nil {
		http.Error(w, "identifiant invalide", http.StatusBadRequest)
		return
	}
	if err := s.calculUC.Executer(r.Context(), id, identity.UserID); err != nil {
		writeError(w, err)
		return
	}
	d, err := s.devisUC.Consulter(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}
