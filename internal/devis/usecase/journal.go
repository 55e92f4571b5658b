package usecase

import (
	"context"

	"github.com/pinggolf/btp-planning-core/internal/devis/entities"
	"github.com/pinggolf/btp-planning-core/internal/devis/repository"
)

// JournalUseCase reads a devis's append-only audit trail.
type JournalUseCase struct {
	journal repository.JournalRepository
}

// NewJournalUseCase wires the use case's collaborators.
func NewJournalUseCase(journal repository.JournalRepository) *JournalUseCase {
	return &JournalUseCase{journal: journal}
}

// Lister returns a page of journal entries for a devis, ordered by
// creation time as the repository guarantees.
func (uc *JournalUseCase) Lister(ctx context.Context, devisID int64, limit, offset int) ([]*entities.JournalEntry, error) {
	return uc.journal.FindByDevisID(ctx, devisID, limit, offset)
}
