package api

import "net/http"

// handleComparerDevis diffs two devis and returns the comparatif and its lines.
func (s *Server) handleComparerDevis(w http.ResponseWriter, r *http.Request) {
	sourceID, err := idParam(r, "sourceId")
	if err != nil {
		http.Error(w, "identifiant invalide", http.StatusBadRequest)
		return
	}
	cibleID, err := idParam(r, "cibleId")
	if err != nil {
		http.Error(w, "identifiant invalide", http.StatusBadRequest)
		return
	}
	comparatif, lignes, err := s.comparaisonUC.Executer(r.Context(), sourceID, cibleID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"comparatif": comparatif,
		"lignes":     lignes,
	})
}
