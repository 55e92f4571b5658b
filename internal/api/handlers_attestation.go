package api

import "net/http"

type emettreAttestationRequest struct {
	ClientNom string `json:"client_nom"`
}

// handleEmettreAttestationTVA issues the reduced-VAT attestation for a devis.
func (s *Server) handleEmettreAttestationTVA(w http.ResponseWriter, r *http.Request) {
	devisID, err := idParam(r, "devisId")
	if err != nil {
		http.Error(w, "identifiant invalide", http.StatusBadRequest)
		return
	}
	var req emettreAttestationRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "corps de requete invalide", http.StatusBadRequest)
		return
	}
	a, err := s.attestationUC.Emettre(r.Context(), devisID, req.ClientNom)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}
