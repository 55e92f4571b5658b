package api

import (
	"net/http"

	"github.com/pinggolf/btp-planning-core/internal/devis/valueobjects"
)

type creerSignatureRequest struct {
	Type       string `json:"type"`
	Signataire string `json:"signataire"`
	Payload    []byte `json:"payload"`
}

// handleCreerSignature captures an electronic signature on a devis.
func (s *Server) handleCreerSignature(w http.ResponseWriter, r *http.Request) {
	devisID, err := idParam(r, "devisId")
	if err != nil {
		http.Error(w, "identifiant invalide", http.StatusBadRequest)
		return
	}
	var req creerSignatureRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "corps de requete invalide", http.StatusBadRequest)
		return
	}
	sig, err := s.signatureUC.Creer(r.Context(), devisID, valueobjects.TypeSignature(req.Type), req.Signataire, req.Payload, r.RemoteAddr, r.UserAgent())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sig)
}

type revoquerSignatureRequest struct {
	Motif string `json:"motif"`
}

// handleRevoquerSignature revokes the active signature of a devis.
func (s *Server) handleRevoquerSignature(w http.ResponseWriter, r *http.Request) {
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
	var req revoquerSignatureRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "corps de requete invalide", http.StatusBadRequest)
		return
	}
	if err := s.signatureUC.Revoquer(r.Context(), devisID, identity.UserID, req.Motif); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleVerifierSignature recomputes the document hash and compares it
// against the stored signature.
func (s *Server) handleVerifierSignature(w http.ResponseWriter, r *http.Request) {
	devisID, err := idParam(r, "devisId")
	if err != nil {
		http.Error(w, "identifiant invalide", http.StatusBadRequest)
		return
	}
	result, err := s.signatureUC.Verifier(r.Context(), devisID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
