package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/pinggolf/btp-planning-core/internal/devis/entities"
	"github.com/pinggolf/btp-planning-core/internal/devis/repository"
	"github.com/pinggolf/btp-planning-core/internal/devis/valueobjects"
)

// FraisChantierUseCase manages site-overhead charges attached to a devis.
type FraisChantierUseCase struct {
	frais repository.FraisChantierRepository
}

// NewFraisChantierUseCase wires the use case's collaborators.
func NewFraisChantierUseCase(frais repository.FraisChantierRepository) *FraisChantierUseCase {
	return &FraisChantierUseCase{frais: frais}
}

// Creer validates and persists a new site-overhead charge.
func (uc *FraisChantierUseCase) Creer(ctx context.Context, devisID int64, typ valueobjects.TypeFraisChantier, libelle string, montantHT decimal.Decimal, mode valueobjects.ModeRepartition, tauxTVA decimal.Decimal) (*entities.FraisChantier, error) {
	f, err := entities.NewFraisChantier(devisID, typ, libelle, montantHT, mode, tauxTVA)
	if err != nil {
		return nil, err
	}
	if err := uc.frais.Save(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// Lister returns all non-deleted charges for a devis.
func (uc *FraisChantierUseCase) Lister(ctx context.Context, devisID int64) ([]*entities.FraisChantier, error) {
	return uc.frais.FindByDevisID(ctx, devisID)
}

// Supprimer soft-deletes a site-overhead charge.
func (uc *FraisChantierUseCase) Supprimer(ctx context.Context, id int64) error {
	return uc.frais.Delete(ctx, id)
}
