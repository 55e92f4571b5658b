package api

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/pinggolf/btp-planning-core/internal/devis/valueobjects"
)

type creerLigneRequest struct {
	Designation    string `json:"designation"`
	Unite          string `json:"unite"`
	Quantite       string `json:"quantite"`
	PrixUnitaireHT string `json:"prix_unitaire_ht"`
	TauxTVA        string `json:"taux_tva"`
}

// handleCreerLigne adds a new line to a lot.
func (s *Server) handleCreerLigne(w http.ResponseWriter, r *http.Request) {
	identity, err := s.authManager.Identify(r)
	if err != nil {
		writeError(w, err)
		return
	}
	lotID, err := idParam(r, "lotId")
	if err != nil {
		http.Error(w, "identifiant invalide", http.StatusBadRequest)
		return
	}
	var req creerLigneRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "corps de requete invalide", http.StatusBadRequest)
		return
	}
	quantite, err := decimal.NewFromString(req.Quantite)
	if err != nil {
		http.Error(w, "quantite invalide", http.StatusBadRequest)
		return
	}
	prix, err := decimal.NewFromString(req.PrixUnitaireHT)
	if err != nil {
		http.Error(w, "prix unitaire invalide", http.StatusBadRequest)
		return
	}
	tva, err := decimal.NewFromString(req.TauxTVA)
	if err != nil {
		http.Error(w, "taux de TVA invalide", http.StatusBadRequest)
		return
	}
	l, err := s.ligneUC.Creer(r.Context(), lotID, req.Designation, valueobjects.UniteArticle(req.Unite), quantite, prix, tva, identity.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

type modifierQuantiteRequest struct {
	Quantite string `json:"quantite"`
}

// handleModifierQuantiteLigne updates a line's quantity.
func (s *Server) handleModifierQuantiteLigne(w http.ResponseWriter, r *http.Request) {
	identity, err := s.authManager.Identify(r)
	if err != nil {
		writeError(w, err)
		return
	}
	ligneID, err := idParam(r, "ligneId")
	if err != nil {
		http.Error(w, "identifiant invalide", http.StatusBadRequest)
		return
	}
	var req modifierQuantiteRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "corps de requete invalide", http.StatusBadRequest)
		return
	}
	quantite, err := decimal.NewFromString(req.Quantite)
	if err != nil {
		http.Error(w, "quantite invalide", http.StatusBadRequest)
		return
	}
	l, err := s.ligneUC.ModifierQuantite(r.Context(), ligneID, quantite, identity.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

// handleListerLignes returns a lot's lines in display order.
func (s *Server) handleListerLignes(w http.ResponseWriter, r *http.Request) {
	lotID, err := idParam(r, "lotId")
	if err != nil {
		http.Error(w, "identifiant invalide", http.StatusBadRequest)
		return
	}
	lignes, err := s.ligneUC.Lister(r.Context(), lotID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lignes)
}

// handleSupprimerLigne soft-deletes a line.
func (s *Server) handleSupprimerLigne(w http.ResponseWriter, r *http.Request) {
	identity, err := s.authManager.Identify(r)
	if err != nil {
		writeError(w, err)
		return
	}
	ligneID, err := idParam(r, "ligneId")
	if err != nil {
		http.Error(w, "identifiant invalide", http.StatusBadRequest)
		return
	}
	if err := s.ligneUC.Supprimer(r.Context(), ligneID, identity.UserID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
