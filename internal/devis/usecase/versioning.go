package usecase

import (
	"context"
	"fmt"

	"github.com/pinggolf/btp-planning-core/internal/devis/entities"
	"github.com/pinggolf/btp-planning-core/internal/devis/errors"
	"github.com/pinggolf/btp-planning-core/internal/devis/repository"
	"github.com/pinggolf/btp-planning-core/internal/devis/valueobjects"
)

// VersioningUseCase implements revision and variant creation: a deep
// copy of the quote, its lots, lines, and discharge details.
type VersioningUseCase struct {
	devis     repository.DevisRepository
	lots      repository.LotRepository
	lignes    repository.LigneRepository
	debourses repository.DebourseDetailRepository
	journal   repository.JournalRepository
}

// NewVersioningUseCase wires the use case's collaborators.
func NewVersioningUseCase(devis repository.DevisRepository, lots repository.LotRepository, lignes repository.LigneRepository, debourses repository.DebourseDetailRepository, journal repository.JournalRepository) *VersioningUseCase {
	return &VersioningUseCase{devis: devis, lots: lots, lignes: lignes, debourses: debourses, journal: journal}
}

// CreerRevision freezes the source version and creates the next
// numbered revision of its family.
func (uc *VersioningUseCase) CreerRevision(ctx context.Context, devisSourceID int64, auteurID int64) (*entities.Devis, error) {
	source, err := uc.devis.FindByID(ctx, devisSourceID)
	if err != nil {
		return nil, err
	}

	racineID := devisSourceID
	if source.DevisParentID != nil {
		racineID = *source.DevisParentID
	}
	prochaineVersion, err := uc.devis.GetNextVersionNumber(ctx, racineID)
	if err != nil {
		return nil, err
	}

	copie := copierDevis(source)
	copie.Numero = fmt.Sprintf("%s-R%d", baseNumero(source.Numero), prochaineVersion)
	copie.TypeVersion = valueobjects.VersionRevision
	copie.VersionNumero = prochaineVersion
	copie.DevisParentID = &racineID
	copie.Statut = valueobjects.StatutInitial()
	copie.Figee = false

	if err := source.Geler(); err != nil {
		return nil, err
	}
	if err := uc.devis.Save(ctx, source); err != nil {
		return nil, err
	}
	if err := uc.sauverDevisEtDupliquerArborescence(ctx, source, copie); err != nil {
		return nil, err
	}

	_ = uc.journal.Append(ctx, entities.NewJournalEntry(devisSourceID, "creation_revision", &auteurID, nil))
	return copie, nil
}

// CreerVariante creates a labeled variant of the source without freezing it.
func (uc *VersioningUseCase) CreerVariante(ctx context.Context, devisSourceID int64, label valueobjects.LabelVariante, auteurID int64) (*entities.Devis, error) {
	if !label.EstValide() {
		return nil, errors.Validation("VersioningValidationError", "label de variante invalide, attendu ECO, STD, PREM ou ALT")
	}
	source, err := uc.devis.FindByID(ctx, devisSourceID)
	if err != nil {
		return nil, err
	}

	copie := copierDevis(source)
	copie.Numero = fmt.Sprintf("%s-%s", baseNumero(source.Numero), label)
	copie.TypeVersion = valueobjects.VersionVariante
	copie.VersionNumero = source.VersionNumero
	copie.DevisParentID = &devisSourceID
	copie.Statut = valueobjects.StatutInitial()
	copie.Figee = false

	if err := uc.sauverDevisEtDupliquerArborescence(ctx, source, copie); err != nil {
		return nil, err
	}

	_ = uc.journal.Append(ctx, entities.NewJournalEntry(devisSourceID, "creation_variante", &auteurID, nil))
	return copie, nil
}

func (uc *VersioningUseCase) sauverDevisEtDupliquerArborescence(ctx context.Context, source, copie *entities.Devis) error {
	if err := uc.devis.Save(ctx, copie); err != nil {
		return err
	}

	lots, err := uc.lots.FindByDevisID(ctx, source.ID)
	if err != nil {
		return err
	}
	for _, lot := range lots {
		lignes, err := uc.lignes.FindByLotID(ctx, lot.ID)
		if err != nil {
			return err
		}
		nouveauLot := *lot
		nouveauLot.ID = 0
		nouveauLot.DevisID = copie.ID
		nouveauLot.DeletedAt = nil
		nouveauLot.DeletedBy = nil
		if err := uc.lots.Save(ctx, &nouveauLot); err != nil {
			return err
		}

		for _, ligne := range lignes {
			debourses, err := uc.debourses.FindByLigneID(ctx, ligne.ID)
			if err != nil {
				return err
			}
			nouvelleLigne := *ligne
			nouvelleLigne.ID = 0
			nouvelleLigne.LotID = nouveauLot.ID
			nouvelleLigne.Verrouille = false
			nouvelleLigne.DeletedAt = nil
			nouvelleLigne.DeletedBy = nil
			if err := uc.lignes.Save(ctx, &nouvelleLigne); err != nil {
				return err
			}

			for _, deb := range debourses {
				nouveauDeb := *deb
				nouveauDeb.ID = 0
				nouveauDeb.LigneID = nouvelleLigne.ID
				if err := uc.debourses.Save(ctx, &nouveauDeb); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// copierDevis shallow-copies the fields that carry over to a new version,
// resetting identity, conversion, and soft-delete state.
func copierDevis(source *entities.Devis) *entities.Devis {
	copie := *source
	copie.ID = 0
	copie.Convertie = false
	copie.ChantierID = nil
	copie.DeletedAt = nil
	copie.DeletedBy = nil
	return &copie
}

// baseNumero strips any existing -R<n> or -<LABEL> suffix so revisions and
// variants are always derived from the original numero.
func baseNumero(numero string) string {
	for _, sep := range []string{"-R", "-ECO", "-STD", "-PREM", "-ALT"} {
		if idx := lastIndexSuffix(numero, sep); idx >= 0 {
			return numero[:idx]
		}
	}
	return numero
}

func lastIndexSuffix(s, sep string) int {
	for i := len(s) - len(sep); i >= 0; i-- {
		if s[i:i+len(sep)] == sep {
			// Only treat as a version suffix if it's the tail match for -R<digits>.
			if sep == "-R" {
				rest := s[i+len(sep):]
				allDigits := len(rest) > 0
				for _, r := range rest {
					if r < '0' || r > '9' {
						allDigits = false
						break
					}
				}
				if !allDigits {
					continue
				}
			} else if i+len(sep) != len(s) {
				continue
			}
			return i
		}
	}
	return -1
}
