package valueobjects

import "testing"

func TestWorkflowScenario(t *testing.T) {
	s := Brouillon
	if !s.PeutTransitionnerVers(EnValidation) {
		t.Fatal("brouillon should allow en_validation")
	}
	s = EnValidation
	if !s.PeutTransitionnerVers(Brouillon) {
		t.Fatal("en_validation should allow returning to brouillon")
	}
	s = Brouillon
	if !s.PeutTransitionnerVers(EnValidation) {
		t.Fatal("expected re-submission to be allowed")
	}
	s = EnValidation
	if !s.PeutTransitionnerVers(Envoye) {
		t.Fatal("en_validation should allow envoye")
	}
	s = Envoye
	if !s.PeutTransitionnerVers(Accepte) {
		t.Fatal("envoye should allow accepte")
	}
	s = Accepte
	if s.PeutTransitionnerVers(Accepte) {
		t.Fatal("accepte is terminal, no self-transition allowed")
	}
	if !s.EstFinal() {
		t.Fatal("accepte must be final")
	}
}

func TestTauxTVAPolicy(t *testing.T) {
	if got := TauxTVADefautPourChantier("renovation_energetique", true, true); got.String() != "5.5" {
		t.Fatalf("expected 5.5, got %s", got)
	}
	if got := TauxTVADefautPourChantier("renovation", true, true); got.String() != "10" {
		t.Fatalf("expected 10, got %s", got)
	}
	if got := TauxTVADefautPourChantier("renovation", false, true); got.String() != "20" {
		t.Fatalf("expected 20 when building is not older than 2 years, got %s", got)
	}
}
