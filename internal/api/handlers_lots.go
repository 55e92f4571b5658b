package api

import "net/http"

type creerLotRequest struct {
	Titre    string `json:"titre"`
	ParentID *int64 `json:"parent_id,omitempty"`
}

// handleCreerLot adds a new lot to a devis.
func (s *Server) handleCreerLot(w http.ResponseWriter, r *http.Request) {
	identity, err := s.authManager.Identify(r)
	if err != nil {
		writeError(w, err)
		return
	}
	devisID, err := idParam(r, "devisId")
	if err != nil {
		http.Error(w, "identifiant invalide", http.StatusBadRequest)
		return
	}
	var req creerLotRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "corps de requete invalide", http.StatusBadRequest)
		return
	}
	l, err := s.lotUC.Creer(r.Context(), devisID, req.Titre, req.ParentID, identity.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

// handleListerLots returns a devis's lots in display order.
func (s *Server) handleListerLots(w http.ResponseWriter, r *http.Request) {
	devisID, err := idParam(r, "devisId")
	if err != nil {
		http.Error(w, "identifiant invalide", http.StatusBadRequest)
		return
	}
	lots, err := s.lotUC.Lister(r.Context(), devisID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lots)
}

// handleSupprimerLot soft-deletes a lot.
func (s *Server) handleSupprimerLot(w http.ResponseWriter, r *http.Request) {
	identity, err := s.authManager.Identify(r)
	if err != nil {
		writeError(w, err)
		return
	}
	devisID, err := idParam(r, "devisId")
	if err != nil {
		http.Error(w, "identifiant invalide", http.StatusBadRequest)
		return
	}
	lotID, err := idParam(r, "lotId")
	if err != nil {
		http.Error(w, "identifiant invalide", http.StatusBadRequest)
		return
	}
	if err := s.lotUC.Supprimer(r.Context(), devisID, lotID, identity.UserID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
