package api

import (
	"net/http"
	"strings"

	"github.com/pinggolf/btp-planning-core/internal/devis/repository"
	"github.com/pinggolf/btp-planning-core/internal/devis/valueobjects"
)

// handleRechercherDevis searches quotes by client name, status, free
// text and commercial/conducteur. The filter's date and amount range
// fields are not read from the request.
func (s *Server) handleRechercherDevis(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := repository.DevisFilter{
		ClientNom: q.Get("client_nom"),
		Texte:     q.Get("q"),
		Limit:     queryInt(r, "limit", 50),
		Offset:    queryInt(r, "offset", 0),
	}
	if raw := q.Get("statuts"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			filter.Statuts = append(filter.Statuts, valueobjects.StatutDevis(s))
		}
	}
	if raw := q.Get("commercial_id"); raw != "" {
		if id, err := idFromString(raw); err == nil {
			filter.CommercialID = &id
		}
	}
	if raw := q.Get("conducteur_id"); raw != "" {
		if id, err := idFromString(raw); err == nil {
			filter.ConducteurID = &id
		}
	}

	devis, err := s.searchUC.Executer(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, devis)
}
