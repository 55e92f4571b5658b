package api

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/pinggolf/btp-planning-core/internal/devis/valueobjects"
)

type creerArticleRequest struct {
	Code           string `json:"code"`
	Designation    string `json:"designation"`
	Unite          string `json:"unite"`
	PrixUnitaireHT string `json:"prix_unitaire_ht"`
	Categorie      string `json:"categorie"`
}

// handleCreerArticle adds a new entry to the price library.
func (s *Server) handleCreerArticle(w http.ResponseWriter, r *http.Request) {
	var req creerArticleRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "corps de requete invalide", http.StatusBadRequest)
		return
	}
	prix, err := decimal.NewFromString(req.PrixUnitaireHT)
	if err != nil {
		http.Error(w, "prix unitaire invalide", http.StatusBadRequest)
		return
	}
	a, err := s.articleUC.Creer(r.Context(), req.Code, req.Designation, valueobjects.UniteArticle(req.Unite), prix, valueobjects.CategorieArticle(req.Categorie))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

type majPrixArticleRequest struct {
	NouveauPrix string `json:"nouveau_prix"`
}

// handleMettreAJourPrixArticle edits an article's catalog price.
func (s *Server) handleMettreAJourPrixArticle(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		http.Error(w, "identifiant invalide", http.StatusBadRequest)
		return
	}
	var req majPrixArticleRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "corps de requete invalide", http.StatusBadRequest)
		return
	}
	prix, err := decimal.NewFromString(req.NouveauPrix)
	if err != nil {
		http.Error(w, "prix invalide", http.StatusBadRequest)
		return
	}
	a, err := s.articleUC.MettreAJourPrix(r.Context(), id, prix)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// handleRechercherArticles searches the price library by text and
// optional category, paginated.
func (s *Server) handleRechercherArticles(w http.ResponseWriter, r *http.Request) {
	texte := r.URL.Query().Get("q")
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	var categorie *valueobjects.CategorieArticle
	if raw := r.URL.Query().Get("categorie"); raw != "" {
		c := valueobjects.CategorieArticle(raw)
		categorie = &c
	}

	articles, err := s.articleUC.Rechercher(r.Context(), texte, categorie, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, articles)
}
