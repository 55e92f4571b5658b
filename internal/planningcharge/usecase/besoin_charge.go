package usecase

import (
	"context"

	devisvo "github.com/pinggolf/btp-planning-core/internal/devis/valueobjects"
	"github.com/pinggolf/btp-planning-core/internal/planningcharge/cache"
	"github.com/pinggolf/btp-planning-core/internal/planningcharge/entities"
	"github.com/pinggolf/btp-planning-core/internal/planningcharge/repository"
	"github.com/pinggolf/btp-planning-core/internal/planningcharge/valueobjects"
)

// CreateBesoinUseCase records a new workload requirement and invalidates
// the planning-charge cache, since any write can affect any cached grid.
type CreateBesoinUseCase struct {
	besoins       repository.BesoinChargeRepository
	planningCache *cache.PlanningCache
}

// NewCreateBesoinUseCase wires the use case's collaborators.
func NewCreateBesoinUseCase(besoins repository.BesoinChargeRepository, planningCache *cache.PlanningCache) *CreateBesoinUseCase {
	return &CreateBesoinUseCase{besoins: besoins, planningCache: planningCache}
}

// Executer validates, persists, and returns the new BesoinCharge.
func (uc *CreateBesoinUseCase) Executer(ctx context.Context, chantierID int64, semaine valueobjects.Semaine, metier devisvo.TypeMetier, besoinHeures float64, createdBy int64) (*entities.BesoinCharge, error) {
	besoin, err := entities.NewBesoinCharge(chantierID, semaine, metier, besoinHeures, createdBy)
	if err != nil {
		return nil, err
	}
	if err := uc.besoins.Save(ctx, besoin); err != nil {
		return nil, err
	}
	uc.planningCache.Invalidate()
	return besoin, nil
}

// GetBesoinsByChantierUseCase lists the workload requirements recorded
// for a single chantier.
type GetBesoinsByChantierUseCase struct {
	besoins repository.BesoinChargeRepository
}

// NewGetBesoinsByChantierUseCase wires the use case's collaborators.
func NewGetBesoinsByChantierUseCase(besoins repository.BesoinChargeRepository) *GetBesoinsByChantierUseCase {
	return &GetBesoinsByChantierUseCase{besoins: besoins}
}

// Executer returns the chantier's requirements.
func (uc *GetBesoinsByChantierUseCase) Executer(ctx context.Context, chantierID int64) ([]*entities.BesoinCharge, error) {
	return uc.besoins.FindByChantierID(ctx, chantierID)
}
