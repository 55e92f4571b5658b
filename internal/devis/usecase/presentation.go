package usecase

import (
	"github.com/pinggolf/btp-planning-core/internal/devis/errors"
	"github.com/pinggolf/btp-planning-core/internal/devis/valueobjects"
)

// PresentationUseCase resolves the presentation options applied to a
// devis's PDF and client-facing views, including the predefined template
// shortcuts.
type PresentationUseCase struct{}

// NewPresentationUseCase builds a PresentationUseCase.
func NewPresentationUseCase() *PresentationUseCase { return &PresentationUseCase{} }

// DepuisTemplate resolves a predefined template name into its options.
func (PresentationUseCase) DepuisTemplate(nom string) (valueobjects.OptionsPresentation, error) {
	opts, err := valueobjects.OptionsPresentationDepuisTemplate(nom)
	if err != nil {
		return valueobjects.OptionsPresentation{}, errors.OptionsPresentationInvalide(err.Error())
	}
	return opts, nil
}

// Personnaliser builds a custom options bag, still forcing
// afficher_debourses to false.
func (PresentationUseCase) Personnaliser(opts valueobjects.OptionsPresentation) valueobjects.OptionsPresentation {
	return valueobjects.NewOptionsPresentation(opts)
}
