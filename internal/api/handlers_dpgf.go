package api

import (
	"encoding/base64"
	"net/http"

	"github.com/pinggolf/btp-planning-core/internal/devis/usecase"
)

type importerDPGFRequest struct {
	Payload   string                  `json:"payload"` // base64-encoded source file
	Mapping   usecase.DPGFColumnMapping `json:"mapping"`
	StartRow  int                     `json:"start_row"`
}

// handleImporterDPGF parses an uploaded bill-of-quantities file and
// materializes it as lots and lines under a devis.
func (s *Server) handleImporterDPGF(w http.ResponseWriter, r *http.Request) {
	devisID, err := idParam(r, "devisId")
	if err != nil {
		http.Error(w, "identifiant invalide", http.StatusBadRequest)
		return
	}
	var req importerDPGFRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "corps de requete invalide", http.StatusBadRequest)
		return
	}
	payload, err := base64.StdEncoding.DecodeString(req.Payload)
	if err != nil {
		http.Error(w, "contenu non decodable en base64", http.StatusBadRequest)
		return
	}
	if err := s.rateLimiter.Wait(r.Context(), "dpgf_import"); err != nil {
		writeError(w, err)
		return
	}
	resultat, err := s.dpgfImportUC.Executer(r.Context(), devisID, payload, req.Mapping, req.StartRow)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resultat)
}
