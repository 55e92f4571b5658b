package usecase

import (
	"context"

	"github.com/pinggolf/btp-planning-core/internal/devis/entities"
	"github.com/pinggolf/btp-planning-core/internal/devis/errors"
	"github.com/pinggolf/btp-planning-core/internal/devis/repository"
	"github.com/pinggolf/btp-planning-core/internal/devis/valueobjects"
)

// AttestationTVAUseCase issues the CERFA VAT-rate attestation required
// whenever a reduced rate applies.
type AttestationTVAUseCase struct {
	devis         repository.DevisRepository
	attestations  repository.AttestationTVARepository
	journal       repository.JournalRepository
}

// NewAttestationTVAUseCase wires the use case's collaborators.
func NewAttestationTVAUseCase(devis repository.DevisRepository, attestations repository.AttestationTVARepository, journal repository.JournalRepository) *AttestationTVAUseCase {
	return &AttestationTVAUseCase{devis: devis, attestations: attestations, journal: journal}
}

// Emettre issues the attestation. The quote's default VAT must be 5.5 or
// 10, and no prior attestation may exist.
func (uc *AttestationTVAUseCase) Emettre(ctx context.Context, devisID int64, clientNom string) (*entities.AttestationTVA, error) {
	d, err := uc.devis.FindByID(ctx, devisID)
	if err != nil {
		return nil, err
	}
	taux, err := valueobjects.NewTauxTVA(d.TauxTVADefaut)
	if err != nil {
		return nil, err
	}
	if !taux.NecessiteAttestation() {
		return nil, errors.TVANonEligible("le taux de TVA par defaut du devis ne necessite pas d'attestation")
	}

	if existante, _ := uc.attestations.FindByDevisID(ctx, devisID); existante != nil {
		return nil, errors.AttestationDejaExistante(devisID)
	}

	attestation, err := entities.NewAttestationTVA(devisID, taux.TypeCerfa(), d.TauxTVADefaut, clientNom)
	if err != nil {
		return nil, err
	}
	if err := uc.attestations.Save(ctx, attestation); err != nil {
		return nil, err
	}
	_ = uc.journal.Append(ctx, entities.NewJournalEntry(devisID, "attestation_tva_emise", nil, nil))
	return attestation, nil
}
