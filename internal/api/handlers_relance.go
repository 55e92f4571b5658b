package api

import (
	"net/http"
	"time"
)

type planifierRelanceRequest struct {
	EnvoiDate time.Time `json:"envoi_date"`
}

// handlePlanifierRelances schedules the reminder sequence for a devis.
func (s *Server) handlePlanifierRelances(w http.ResponseWriter, r *http.Request) {
	devisID, err := idParam(r, "devisId")
	if err != nil {
		http.Error(w, "identifiant invalide", http.StatusBadRequest)
		return
	}
	var req planifierRelanceRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "corps de requete invalide", http.StatusBadRequest)
		return
	}
	relances, err := s.relanceUC.Planifier(r.Context(), devisID, req.EnvoiDate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, relances)
}

// handleAnnulerRelances cancels the pending reminders of a devis.
func (s *Server) handleAnnulerRelances(w http.ResponseWriter, r *http.Request) {
	devisID, err := idParam(r, "devisId")
	if err != nil {
		http.Error(w, "identifiant invalide", http.StatusBadRequest)
		return
	}
	if err := s.relanceUC.Annuler(r.Context(), devisID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleExecuterRelances runs the due-reminders batch; triggered by the
// relance-batch NATS subject in production, exposed here for manual runs.
func (s *Server) handleExecuterRelances(w http.ResponseWriter, r *http.Request) {
	if err := s.rateLimiter.Wait(r.Context(), "relance"); err != nil {
		writeError(w, err)
		return
	}
	sent, failed, err := s.relanceUC.ExecuterLot(r.Context(), time.Now().UTC())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"envoyees": sent, "echouees": failed})
}
