package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/pinggolf/btp-planning-core/internal/devis/repository"
	"github.com/pinggolf/btp-planning-core/internal/devis/valueobjects"
)

// DashboardSnapshot is the aggregate view a commercial/conducteur sees on
// opening the devis module: pipeline counts and amounts by status.
type DashboardSnapshot struct {
	CountParStatut  map[valueobjects.StatutDevis]int
	MontantParStatut map[valueobjects.StatutDevis]decimal.Decimal
	TotalActifs     int
}

// tableauDeBordStatuts are the statuses surfaced on the dashboard.
var tableauDeBordStatuts = []valueobjects.StatutDevis{
	valueobjects.Brouillon, valueobjects.EnValidation, valueobjects.Envoye,
	valueobjects.Vu, valueobjects.EnNegociation, valueobjects.Accepte,
	valueobjects.Refuse, valueobjects.Perdu, valueobjects.Expire,
}

// DashboardUseCase assembles the repository's per-status counts and sums
// into a single read-only snapshot.
type DashboardUseCase struct {
	devis repository.DevisRepository
}

// NewDashboardUseCase wires the use case's collaborators.
func NewDashboardUseCase(devis repository.DevisRepository) *DashboardUseCase {
	return &DashboardUseCase{devis: devis}
}

// Executer computes the dashboard snapshot.
func (uc *DashboardUseCase) Executer(ctx context.Context) (DashboardSnapshot, error) {
	snapshot := DashboardSnapshot{
		CountParStatut:   make(map[valueobjects.StatutDevis]int),
		MontantParStatut: make(map[valueobjects.StatutDevis]decimal.Decimal),
	}
	for _, statut := range tableauDeBordStatuts {
		count, err := uc.devis.CountByStatut(ctx, statut)
		if err != nil {
			return DashboardSnapshot{}, err
		}
		montant, err := uc.devis.SommeMontantByStatut(ctx, statut)
		if err != nil {
			return DashboardSnapshot{}, err
		}
		snapshot.CountParStatut[statut] = count
		snapshot.MontantParStatut[statut] = montant
		if statut.EstActif() {
			snapshot.TotalActifs += count
		}
	}
	return snapshot, nil
}
