package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/pinggolf/btp-planning-core/internal/devis/entities"
	"github.com/pinggolf/btp-planning-core/internal/devis/repository"
	"github.com/pinggolf/btp-planning-core/internal/devis/valueobjects"
)

// ArticleUseCase manages the shared price-library catalog referenced by
// devis lines.
type ArticleUseCase struct {
	articles repository.ArticleRepository
}

// NewArticleUseCase wires the use case's collaborators.
func NewArticleUseCase(articles repository.ArticleRepository) *ArticleUseCase {
	return &ArticleUseCase{articles: articles}
}

// Creer validates and persists a new catalog article.
func (uc *ArticleUseCase) Creer(ctx context.Context, code, designation string, unite valueobjects.UniteArticle, prixUnitaireHT decimal.Decimal, categorie valueobjects.CategorieArticle) (*entities.Article, error) {
	a, err := entities.NewArticle(code, designation, unite, prixUnitaireHT, categorie)
	if err != nil {
		return nil, err
	}
	if err := uc.articles.Save(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// MettreAJourPrix updates an article's unit price, guarded against
// negative values by the entity.
func (uc *ArticleUseCase) MettreAJourPrix(ctx context.Context, articleID int64, nouveauPrix decimal.Decimal) (*entities.Article, error) {
	a, err := uc.articles.FindByID(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if err := a.MettreAJourPrix(nouveauPrix); err != nil {
		return nil, err
	}
	if err := uc.articles.Save(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Rechercher searches the catalog by free text and optional category.
func (uc *ArticleUseCase) Rechercher(ctx context.Context, texte string, categorie *valueobjects.CategorieArticle, limit, offset int) ([]*entities.Article, error) {
	return uc.articles.Search(ctx, texte, categorie, limit, offset)
}
