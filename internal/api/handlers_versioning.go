package api

import (
	"net/http"

	"github.com/pinggolf/btp-planning-core/internal/devis/valueobjects"
)

// handleCreerRevision freezes a devis and creates the next numbered
// revision of its family.
func (s *Server) handleCreerRevision(w http.ResponseWriter, r *http.Request) {
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
	d, err := s.versioningUC.CreerRevision(r.Context(), devisID, identity.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

type creerVarianteRequest struct {
	Label string `json:"label"`
}

// handleCreerVariante creates a labeled variant of a devis.
func (s *Server) handleCreerVariante(w http.ResponseWriter, r *http.Request) {
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
	var req creerVarianteRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "corps de requete invalide", http.StatusBadRequest)
		return
	}
	d, err := s.versioningUC.CreerVariante(r.Context(), devisID, valueobjects.LabelVariante(req.Label), identity.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}
