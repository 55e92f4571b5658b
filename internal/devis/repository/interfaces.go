// Package repository declares the persistence ports of the devis module:
// one interface per aggregate root. Every finder is implicitly
// soft-delete-aware — deleted rows are never returned. Implementations
// live under internal/devis/postgres.
package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pinggolf/btp-planning-core/internal/devis/entities"
	"github.com/pinggolf/btp-planning-core/internal/devis/valueobjects"
)

// DevisFilter is the search filter set accepted by Devis.Search.
type DevisFilter struct {
	ClientNom    string
	Statuts      []valueobjects.StatutDevis
	DateDebut    *time.Time
	DateFin      *time.Time
	MontantMin   *decimal.Decimal
	MontantMax   *decimal.Decimal
	CommercialID *int64
	ConducteurID *int64
	Texte        string
	Limit        int
	Offset       int
}

// DevisRepository persists the Devis aggregate root.
type DevisRepository interface {
	Save(ctx context.Context, d *entities.Devis) error
	FindByID(ctx context.Context, id int64) (*entities.Devis, error)
	FindByNumero(ctx context.Context, numero string) (*entities.Devis, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entities.Devis, error)
	FindAllInRange(ctx context.Context, debut, fin time.Time) ([]*entities.Devis, error)
	FindVersions(ctx context.Context, devisID int64) ([]*entities.Devis, error)
	GetNextVersionNumber(ctx context.Context, devisRacineID int64) (int, error)
	Search(ctx context.Context, filter DevisFilter) ([]*entities.Devis, error)
	Count(ctx context.Context) (int, error)
	CountByStatut(ctx context.Context, statut valueobjects.StatutDevis) (int, error)
	SommeMontantByStatut(ctx context.Context, statut valueobjects.StatutDevis) (decimal.Decimal, error)
	FindExpires(ctx context.Context, asOf time.Time) ([]*entities.Devis, error)
	Delete(ctx context.Context, id, deletedBy int64) error
}

// LotRepository persists Lot entities.
type LotRepository interface {
	Save(ctx context.Context, l *entities.Lot) error
	FindByID(ctx context.Context, id int64) (*entities.Lot, error)
	FindByDevisID(ctx context.Context, devisID int64) ([]*entities.Lot, error)
	Count(ctx context.Context, devisID int64) (int, error)
	Delete(ctx context.Context, id, deletedBy int64) error
}

// LigneRepository persists Ligne entities.
type LigneRepository interface {
	Save(ctx context.Context, l *entities.Ligne) error
	FindByID(ctx context.Context, id int64) (*entities.Ligne, error)
	FindByLotID(ctx context.Context, lotID int64) ([]*entities.Ligne, error)
	FindByDevisID(ctx context.Context, devisID int64) ([]*entities.Ligne, error)
	Count(ctx context.Context, lotID int64) (int, error)
	Delete(ctx context.Context, id, deletedBy int64) error
}

// DebourseDetailRepository persists DebourseDetail entities.
type DebourseDetailRepository interface {
	Save(ctx context.Context, d *entities.DebourseDetail) error
	FindByID(ctx context.Context, id int64) (*entities.DebourseDetail, error)
	FindByLigneID(ctx context.Context, ligneID int64) ([]*entities.DebourseDetail, error)
	Count(ctx context.Context, ligneID int64) (int, error)
	Delete(ctx context.Context, id int64) error
}

// ArticleRepository persists catalog Article entities.
type ArticleRepository interface {
	Save(ctx context.Context, a *entities.Article) error
	FindByID(ctx context.Context, id int64) (*entities.Article, error)
	FindByCode(ctx context.Context, code string) (*entities.Article, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entities.Article, error)
	Search(ctx context.Context, texte string, categorie *valueobjects.CategorieArticle, limit, offset int) ([]*entities.Article, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id int64) error
}

// JournalRepository is the append-only audit log for a devis.
type JournalRepository interface {
	Append(ctx context.Context, e *entities.JournalEntry) error
	FindByDevisID(ctx context.Context, devisID int64, limit, offset int) ([]*entities.JournalEntry, error)
	Count(ctx context.Context, devisID int64) (int, error)
}

// AttestationTVARepository persists AttestationTVA entities.
type AttestationTVARepository interface {
	Save(ctx context.Context, a *entities.AttestationTVA) error
	FindByID(ctx context.Context, id int64) (*entities.AttestationTVA, error)
	FindByDevisID(ctx context.Context, devisID int64) (*entities.AttestationTVA, error)
	Delete(ctx context.Context, id int64) error
}

// SignatureRepository persists SignatureDevis entities.
type SignatureRepository interface {
	Save(ctx context.Context, s *entities.SignatureDevis) error
	FindByID(ctx context.Context, id int64) (*entities.SignatureDevis, error)
	FindByDevisID(ctx context.Context, devisID int64) ([]*entities.SignatureDevis, error)
	FindActiveByDevisID(ctx context.Context, devisID int64) (*entities.SignatureDevis, error)
}

// RelanceRepository persists Relance entities.
type RelanceRepository interface {
	Save(ctx context.Context, r *entities.Relance) error
	FindByID(ctx context.Context, id int64) (*entities.Relance, error)
	FindByDevisID(ctx context.Context, devisID int64) ([]*entities.Relance, error)
	FindDues(ctx context.Context, asOf time.Time) ([]*entities.Relance, error)
	Count(ctx context.Context, devisID int64) (int, error)
}

// FraisChantierRepository persists FraisChantier entities.
type FraisChantierRepository interface {
	Save(ctx context.Context, f *entities.FraisChantier) error
	FindByID(ctx context.Context, id int64) (*entities.FraisChantier, error)
	FindByDevisID(ctx context.Context, devisID int64) ([]*entities.FraisChantier, error)
	Delete(ctx context.Context, id int64) error
}

// ComparatifRepository persists Comparatif and its line records. Creation
// is idempotent per (source, target): a new generation supersedes any
// prior one for the same pair.
type ComparatifRepository interface {
	Save(ctx context.Context, c *entities.Comparatif, lignes []*entities.ComparatifLigne) error
	FindBySourceEtCible(ctx context.Context, sourceID, cibleID int64) (*entities.Comparatif, []*entities.ComparatifLigne, error)
	FindByID(ctx context.Context, id int64) (*entities.Comparatif, []*entities.ComparatifLigne, error)
}
