package api

import "net/http"

// handleListerJournal returns a devis's audit trail entries, newest first.
func (s *Server) handleListerJournal(w http.ResponseWriter, r *http.Request) {
	devisID, err := idParam(r, "devisId")
	if err != nil {
		http.Error(w, "identifiant invalide", http.StatusBadRequest)
		return
	}
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)
	entries, err := s.journalUC.Lister(r.Context(), devisID, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
