package usecase

import (
	"context"

	"github.com/pinggolf/btp-planning-core/internal/devis/entities"
	"github.com/pinggolf/btp-planning-core/internal/devis/repository"
)

// SearchUseCase exposes the repository's closed filter set (client name,
// statuses, date range, amount range, commercial, site manager, free
// text) as a single read-only operation.
type SearchUseCase struct {
	devis repository.DevisRepository
}

// NewSearchUseCase wires the use case's collaborators.
func NewSearchUseCase(devis repository.DevisRepository) *SearchUseCase {
	return &SearchUseCase{devis: devis}
}

// Executer runs the search with the given filter.
func (uc *SearchUseCase) Executer(ctx context.Context, filter repository.DevisFilter) ([]*entities.Devis, error) {
	return uc.devis.Search(ctx, filter)
}
