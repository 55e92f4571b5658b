package api

import "net/http"

// handleConvertirDevis converts an accepted devis into a work site.
func (s *Server) handleConvertirDevis(w http.ResponseWriter, r *http.Request) {
	devisID, err := idParam(r, "devisId")
	if err != nil {
		http.Error(w, "identifiant invalide", http.StatusBadRequest)
		return
	}
	result, err := s.conversionUC.Executer(r.Context(), devisID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
