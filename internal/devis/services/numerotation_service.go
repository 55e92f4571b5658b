package services

import (
	"fmt"

	"github.com/pinggolf/btp-planning-core/internal/devis/errors"
)

// NumerotationService generates deterministic hierarchical codes for a
// devis's lot/line tree, derived from display order alone.
type NumerotationService struct{}

// NewNumerotationService builds a NumerotationService.
func NewNumerotationService() *NumerotationService { return &NumerotationService{} }

// GenererCodeLot builds a lot's hierarchical code from its 0-based sibling
// position and its parent's code (empty for a root lot).
//
//	GenererCodeLot(0, "")   == "1"
//	GenererCodeLot(2, "1")  == "1.3"
//	GenererCodeLot(0, "2.1") == "2.1.1"
func (NumerotationService) GenererCodeLot(ordre int, parentCode string) string {
	numero := fmt.Sprintf("%d", ordre+1)
	if parentCode != "" {
		return parentCode + "." + numero
	}
	return numero
}

// GenererCodeLigne builds a line's hierarchical code. Lines are numbered
// on two digits within their lot.
//
//	GenererCodeLigne(0, "1")   == "1.01"
//	GenererCodeLigne(4, "2.1") == "2.1.05"
func (NumerotationService) GenererCodeLigne(ordre int, lotCode string) string {
	return fmt.Sprintf("%s.%02d", lotCode, ordre+1)
}

// RenumeroterLots batch-regenerates codes after a reorder (e.g. drag and
// drop), one parent code and order per lot, matched by index.
func (n NumerotationService) RenumeroterLots(lotCodesParents []string, ordres []int) ([]string, error) {
	if len(lotCodesParents) != len(ordres) {
		return nil, errors.Validation("NumerotationValidationError", "les listes de codes parents et d'ordres doivent avoir la meme longueur")
	}
	codes := make([]string, len(ordres))
	for i, ordre := range ordres {
		codes[i] = n.GenererCodeLot(ordre, lotCodesParents[i])
	}
	return codes, nil
}

// RenumeroterLignes generates codes for every line of a lot in order.
func (n NumerotationService) RenumeroterLignes(lotCode string, count int) []string {
	codes := make([]string, count)
	for i := 0; i < count; i++ {
		codes[i] = n.GenererCodeLigne(i, lotCode)
	}
	return codes
}

// GenererNumeroDevis builds a new quote's reference from its creation
// year and a running sequence, e.g. GenererNumeroDevis(2026, 123) ==
// "DEV-2026-123".
func (NumerotationService) GenererNumeroDevis(annee, sequence int) string {
	return fmt.Sprintf("DEV-%d-%03d", annee, sequence)
}
