package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pinggolf/btp-planning-core/internal/devis/entities"
	domainerrors "github.com/pinggolf/btp-planning-core/internal/devis/errors"
	"github.com/pinggolf/btp-planning-core/internal/devis/valueobjects"
)

// ArticleRepository persists catalog Article entities on Postgres.
type ArticleRepository struct {
	*Store
}

// NewArticleRepository wires an ArticleRepository on the shared store.
func NewArticleRepository(s *Store) *ArticleRepository {
	return &ArticleRepository{Store: s}
}

const articleColumns = `id, code, designation, unite, prix_unitaire_ht, categorie, composants, actif, created_at, updated_at, deleted_at`

func scanArticle(row rowScanner) (*entities.Article, error) {
	var a entities.Article
	var deletedAt sql.NullTime
	if err := row.Scan(&a.ID, &a.Code, &a.Designation, &a.Unite, &a.PrixUnitaireHT, &a.Categorie,
		&a.Composants, &a.Actif, &a.CreatedAt, &a.UpdatedAt, &deletedAt); err != nil {
		return nil, err
	}
	if deletedAt.Valid {
		a.DeletedAt = &deletedAt.Time
	}
	return &a, nil
}

// Save inserts a new article, or updates it in place when its ID is already set.
func (r *ArticleRepository) Save(ctx context.Context, a *entities.Article) error {
	if a.ID == 0 {
		const query = `
			INSERT INTO articles (code, designation, unite, prix_unitaire_ht, categorie, composants, actif, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
		err := r.db.QueryRowContext(ctx, query, a.Code, a.Designation, a.Unite, a.PrixUnitaireHT, a.Categorie,
			a.Composants, a.Actif, a.CreatedAt, a.UpdatedAt).Scan(&a.ID)
		if err != nil {
			return fmt.Errorf("insert article: %w", err)
		}
		return nil
	}
	const query = `
		UPDATE articles SET code = $1, designation = $2, unite = $3, prix_unitaire_ht = $4, categorie = $5,
			composants = $6, actif = $7, updated_at = $8, deleted_at = $9
		WHERE id = $10`
	res, err := r.db.ExecContext(ctx, query, a.Code, a.Designation, a.Unite, a.PrixUnitaireHT, a.Categorie,
		a.Composants, a.Actif, a.UpdatedAt, nullTime(a.DeletedAt), a.ID)
	if err != nil {
		return fmt.Errorf("update article %d: %w", a.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domainerrors.ArticleNotFound(a.ID)
	}
	return nil
}

// FindByID loads a non-deleted article by its primary key.
func (r *ArticleRepository) FindByID(ctx context.Context, id int64) (*entities.Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM articles WHERE id = $1 AND deleted_at IS NULL`, articleColumns)
	a, err := scanArticle(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domainerrors.ArticleNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("find article %d: %w", id, err)
	}
	return a, nil
}

// FindByCode loads a non-deleted article by its catalog code.
func (r *ArticleRepository) FindByCode(ctx context.Context, code string) (*entities.Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM articles WHERE code = $1 AND deleted_at IS NULL`, articleColumns)
	a, err := scanArticle(r.db.QueryRowContext(ctx, query, code))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domainerrors.ArticleNotFound(0)
	}
	if err != nil {
		return nil, fmt.Errorf("find article by code %s: %w", code, err)
	}
	return a, nil
}

func (r *ArticleRepository) queryList(ctx context.Context, query string, args ...any) ([]*entities.Article, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*entities.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// FindAll returns a page of non-deleted articles, ordered by code.
func (r *ArticleRepository) FindAll(ctx context.Context, limit, offset int) ([]*entities.Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM articles WHERE deleted_at IS NULL ORDER BY code LIMIT $1 OFFSET $2`, articleColumns)
	out, err := r.queryList(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("find all articles: %w", err)
	}
	return out, nil
}

// Search runs a free-text and optional-category search over the catalog.
func (r *ArticleRepository) Search(ctx context.Context, texte string, categorie *valueobjects.CategorieArticle, limit, offset int) ([]*entities.Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM articles WHERE deleted_at IS NULL`, articleColumns)
	var args []any
	argNum := 1
	if texte != "" {
		query += fmt.Sprintf(" AND (code ILIKE $%d OR designation ILIKE $%d)", argNum, argNum)
		args = append(args, "%"+texte+"%")
		argNum++
	}
	if categorie != nil {
		query += fmt.Sprintf(" AND categorie = $%d", argNum)
		args = append(args, *categorie)
		argNum++
	}
	query += fmt.Sprintf(" ORDER BY code LIMIT $%d OFFSET $%d", argNum, argNum+1)
	args = append(args, limit, offset)
	out, err := r.queryList(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search articles: %w", err)
	}
	return out, nil
}

// Count returns the total number of non-deleted articles.
func (r *ArticleRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM articles WHERE deleted_at IS NULL`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return n, nil
}

// Delete soft-deletes an article.
func (r *ArticleRepository) Delete(ctx context.Context, id int64) error {
	const query = `UPDATE articles SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete article %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domainerrors.ArticleNotFound(id)
	}
	return nil
}
