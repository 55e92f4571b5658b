package api

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/pinggolf/btp-planning-core/internal/devis/valueobjects"
)

type creerFraisChantierRequest struct {
	Type      string `json:"type"`
	Libelle   string `json:"libelle"`
	MontantHT string `json:"montant_ht"`
	Mode      string `json:"mode"`
	TauxTVA   string `json:"taux_tva"`
}

// handleCreerFraisChantier adds a site cost line to a devis.
func (s *Server) handleCreerFraisChantier(w http.ResponseWriter, r *http.Request) {
	devisID, err := idParam(r, "devisId")
	if err != nil {
		http.Error(w, "identifiant invalide", http.StatusBadRequest)
		return
	}
	var req creerFraisChantierRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "corps de requete invalide", http.StatusBadRequest)
		return
	}
	montant, err := decimal.NewFromString(req.MontantHT)
	if err != nil {
		http.Error(w, "montant invalide", http.StatusBadRequest)
		return
	}
	tva, err := decimal.NewFromString(req.TauxTVA)
	if err != nil {
		http.Error(w, "taux de TVA invalide", http.StatusBadRequest)
		return
	}
	f, err := s.fraisChantierUC.Creer(r.Context(), devisID, valueobjects.TypeFraisChantier(req.Type), req.Libelle, montant, valueobjects.ModeRepartition(req.Mode), tva)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

// handleListerFraisChantier returns a devis's site cost lines.
func (s *Server) handleListerFraisChantier(w http.ResponseWriter, r *http.Request) {
	devisID, err := idParam(r, "devisId")
	if err != nil {
		http.Error(w, "identifiant invalide", http.StatusBadRequest)
		return
	}
	frais, err := s.fraisChantierUC.Lister(r.Context(), devisID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, frais)
}

// handleSupprimerFraisChantier deletes a site cost line.
func (s *Server) handleSupprimerFraisChantier(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		http.Error(w, "identifiant invalide", http.StatusBadRequest)
		return
	}
	if err := s.fraisChantierUC.Supprimer(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
