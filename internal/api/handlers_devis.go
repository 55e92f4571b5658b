package api

import (
	"net/http"

	"github.com/pinggolf/btp-planning-core/internal/devis/valueobjects"
)

type creerDevisRequest struct {
	ClientNom string `json:"client_nom"`
}

// handleCreerDevis creates a brand-new devis in BROUILLON.
func (s *Server) handleCreerDevis(w http.ResponseWriter, r *http.Request) {
	identity, err := s.authManager.Identify(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req creerDevisRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "corps de requete invalide", http.StatusBadRequest)
		return
	}
	d, err := s.devisUC.Creer(r.Context(), req.ClientNom, identity.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

// handleConsulterDevis loads a devis by id.
func (s *Server) handleConsulterDevis(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		http.Error(w, "identifiant invalide", http.StatusBadRequest)
		return
	}
	d, err := s.devisUC.Consulter(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// handleListerDevis returns a paginated page of every devis.
func (s *Server) handleListerDevis(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)
	devis, err := s.devisUC.Lister(r.Context(), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, devis)
}

type majMetadonneesRequest struct {
	ClientNom           string `json:"client_nom"`
	ClientAdresse       string `json:"client_adresse"`
	ClientTelephone     string `json:"client_telephone"`
	ClientEmail         string `json:"client_email"`
	ChantierRef         string `json:"chantier_ref"`
	Objet               string `json:"objet"`
	Notes               string `json:"notes"`
	ConditionsGenerales string `json:"conditions_generales"`
}

// handleMettreAJourMetadonneesDevis edits the descriptive fields of a
// devis still in BROUILLON.
func (s *Server) handleMettreAJourMetadonneesDevis(w http.ResponseWriter, r *http.Request) {
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
	var req majMetadonneesRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "corps de requete invalide", http.StatusBadRequest)
		return
	}
	d, err := s.devisUC.MettreAJourMetadonnees(r.Context(), id, req.ClientNom, req.ClientAdresse, req.ClientTelephone, req.ClientEmail, req.ChantierRef, req.Objet, req.Notes, req.ConditionsGenerales, identity.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// handleSupprimerDevis soft-deletes a devis.
func (s *Server) handleSupprimerDevis(w http.ResponseWriter, r *http.Request) {
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
	if err := s.devisUC.Supprimer(r.Context(), id, identity.UserID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type transitionnerRequest struct {
	Cible string `json:"cible"`
}

// handleTransitionnerDevis moves a devis to a new status per the guard matrix.
func (s *Server) handleTransitionnerDevis(w http.ResponseWriter, r *http.Request) {
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
	var req transitionnerRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "corps de requete invalide", http.StatusBadRequest)
		return
	}
	d, err := s.workflowUC.Transitionner(r.Context(), id, valueobjects.StatutDevis(req.Cible), identity.Role, identity.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}
