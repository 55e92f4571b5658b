package api

import (
	"net/http"

	devisvo "github.com/pinggolf/btp-planning-core/internal/devis/valueobjects"
	"github.com/pinggolf/btp-planning-core/internal/planningcharge/usecase"
	"github.com/pinggolf/btp-planning-core/internal/planningcharge/valueobjects"
)

type creerBesoinChargeRequest struct {
	ChantierID   int64   `json:"chantier_id"`
	Semaine      string  `json:"semaine"`
	Metier       string  `json:"metier"`
	BesoinHeures float64 `json:"besoin_heures"`
}

// handleCreerBesoinCharge records a new workload requirement for a chantier/week/trade.
func (s *Server) handleCreerBesoinCharge(w http.ResponseWriter, r *http.Request) {
	identity, err := s.authManager.Identify(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req creerBesoinChargeRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "corps de requete invalide", http.StatusBadRequest)
		return
	}
	semaine, err := valueobjects.ParseSemaine(req.Semaine)
	if err != nil {
		http.Error(w, "semaine invalide", http.StatusBadRequest)
		return
	}
	besoin, err := s.createBesoinUC.Executer(r.Context(), req.ChantierID, semaine, devisvo.TypeMetier(req.Metier), req.BesoinHeures, identity.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, besoin)
}

// handleListerBesoinsChantier returns the workload requirements recorded
// for one chantier.
func (s *Server) handleListerBesoinsChantier(w http.ResponseWriter, r *http.Request) {
	chantierID, err := idParam(r, "chantierId")
	if err != nil {
		http.Error(w, "identifiant invalide", http.StatusBadRequest)
		return
	}
	besoins, err := s.getBesoinsUC.Executer(r.Context(), chantierID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, besoins)
}

// handleGetPlanningCharge assembles the cross-chantier, cross-week workload grid.
func (s *Server) handleGetPlanningCharge(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	debut, err := valueobjects.ParseSemaine(q.Get("debut"))
	if err != nil {
		http.Error(w, "semaine de debut invalide", http.StatusBadRequest)
		return
	}
	fin, err := valueobjects.ParseSemaine(q.Get("fin"))
	if err != nil {
		http.Error(w, "semaine de fin invalide", http.StatusBadRequest)
		return
	}
	params := usecase.GetPlanningChargeParams{
		Debut:     debut,
		Fin:       fin,
		Recherche: q.Get("recherche"),
		Unite:     valueobjects.UniteCharge(q.Get("unite")),
	}
	grille, err := s.getPlanningChargeUC.Executer(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, grille)
}
