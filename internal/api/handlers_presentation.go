package api

import (
	"net/http"

	"github.com/pinggolf/btp-planning-core/internal/devis/valueobjects"
)

// handlePresentationTemplate resolves a predefined template name into
// its option bag.
func (s *Server) handlePresentationTemplate(w http.ResponseWriter, r *http.Request) {
	nom := r.URL.Query().Get("nom")
	opts, err := s.presentationUC.DepuisTemplate(nom)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, opts)
}

// handlePresentationPersonnaliser builds a custom options bag from a
// caller-supplied payload, still forcing debourse figures off.
func (s *Server) handlePresentationPersonnaliser(w http.ResponseWriter, r *http.Request) {
	var opts valueobjects.OptionsPresentation
	if err := decodeJSON(r, &opts); err != nil {
		http.Error(w, "corps de requete invalide", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, s.presentationUC.Personnaliser(opts))
}
