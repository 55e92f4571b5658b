package entities

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pinggolf/btp-planning-core/internal/devis/errors"
	"github.com/pinggolf/btp-planning-core/internal/devis/valueobjects"
)

// Article is a price-library entry referenced by lines.
type Article struct {
	ID             int64
	Code           string
	Designation    string
	Unite          valueobjects.UniteArticle
	PrixUnitaireHT decimal.Decimal
	Categorie      valueobjects.CategorieArticle
	Composants     []byte // opaque JSON, decoded by the presentation layer
	Actif          bool

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// NewArticle validates and builds a new catalog article.
func NewArticle(code, designation string, unite valueobjects.UniteArticle, prixUnitaireHT decimal.Decimal, categorie valueobjects.CategorieArticle) (*Article, error) {
	if code == "" {
		return nil, errors.Validation("ArticleValidationError", "le code de l'article est obligatoire")
	}
	if designation == "" {
		return nil, errors.Validation("ArticleValidationError", "la designation de l'article est obligatoire")
	}
	if prixUnitaireHT.IsNegative() {
		return nil, errors.Validation("ArticleValidationError", "le prix unitaire ne peut pas etre negatif")
	}
	now := time.Now().UTC()
	return &Article{
		Code: code, Designation: designation, Unite: unite,
		PrixUnitaireHT: prixUnitaireHT, Categorie: categorie, Actif: true,
		CreatedAt: now, UpdatedAt: now,
	}, nil
}

// MettreAJourPrix updates the unit price, guarding against negative values.
func (a *Article) MettreAJourPrix(nouveauPrix decimal.Decimal) error {
	if nouveauPrix.IsNegative() {
		return errors.Validation("ArticleValidationError", "le prix unitaire ne peut pas etre negatif")
	}
	a.PrixUnitaireHT = nouveauPrix
	a.UpdatedAt = time.Now().UTC()
	return nil
}

// EstSupprime reports whether the article has been soft-deleted.
func (a *Article) EstSupprime() bool { return a.DeletedAt != nil }
