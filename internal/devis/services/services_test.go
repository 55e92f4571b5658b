package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/pinggolf/btp-planning-core/internal/devis/entities"
	"github.com/pinggolf/btp-planning-core/internal/devis/valueobjects"
)

func TestResoudreMargePrecedence(t *testing.T) {
	devis, err := entities.NewDevis("D-0001", "Client Test", 1)
	if err != nil {
		t.Fatalf("NewDevis: %v", err)
	}
	devis.TauxMargeGlobal = decimal.NewFromInt(15)
	moe := decimal.NewFromInt(25)
	devis.TauxMargeMOE = &moe

	svc := NewMargeService()

	ligneMarge := decimal.NewFromInt(40)
	lotMarge := decimal.NewFromInt(30)

	// ligne wins over everything.
	res := svc.ResoudreMarge(&ligneMarge, &lotMarge, devis, nil)
	if res.Niveau != NiveauLigne || !res.Taux.Equal(ligneMarge) {
		t.Fatalf("expected ligne level 40, got %+v", res)
	}

	// lot wins when ligne is absent.
	res = svc.ResoudreMarge(nil, &lotMarge, devis, nil)
	if res.Niveau != NiveauLot || !res.Taux.Equal(lotMarge) {
		t.Fatalf("expected lot level 30, got %+v", res)
	}

	// type_debourse wins when ligne and lot are both absent.
	deb, err := entities.NewDebourseDetail(1, valueobjects.MOE, "main d'oeuvre", decimal.NewFromInt(10), decimal.NewFromInt(50))
	if err != nil {
		t.Fatalf("NewDebourseDetail: %v", err)
	}
	res = svc.ResoudreMarge(nil, nil, devis, []*entities.DebourseDetail{deb})
	if res.Niveau != NiveauTypeDebourse || !res.Taux.Equal(moe) {
		t.Fatalf("expected type_debourse level 25, got %+v", res)
	}

	// global is the fallback.
	res = svc.ResoudreMarge(nil, nil, devis, nil)
	if res.Niveau != NiveauGlobal || !res.Taux.Equal(devis.TauxMargeGlobal) {
		t.Fatalf("expected global level 15, got %+v", res)
	}
}

func TestTypePrincipalDebourseMontantLePlusEleve(t *testing.T) {
	debMateriaux, _ := entities.NewDebourseDetail(1, valueobjects.Materiaux, "bois", decimal.NewFromInt(100), decimal.NewFromInt(10))
	debMOE, _ := entities.NewDebourseDetail(1, valueobjects.MOE, "pose", decimal.NewFromInt(5), decimal.NewFromInt(40))

	typ, ok := typePrincipalDebourse([]*entities.DebourseDetail{debMateriaux, debMOE})
	if !ok {
		t.Fatal("expected a principal type")
	}
	// materiaux: 100*10=1000, moe: 5*40=200 -> materiaux wins
	if typ != valueobjects.Materiaux {
		t.Fatalf("expected materiaux as principal type, got %s", typ)
	}
}

func TestCalculerPrixRevientEtVente(t *testing.T) {
	svc := NewMargeService()
	debourseSec := decimal.NewFromInt(1000)
	prixRevient := svc.CalculerPrixRevient(debourseSec, decimal.NewFromInt(12))
	if !prixRevient.Equal(decimal.NewFromInt(1120)) {
		t.Fatalf("expected prix de revient 1120, got %s", prixRevient)
	}
	prixVente := svc.CalculerPrixVenteHT(prixRevient, decimal.NewFromInt(15))
	if !prixVente.Equal(decimal.NewFromFloat(1288)) {
		t.Fatalf("expected prix de vente 1288, got %s", prixVente)
	}
}

func TestNumerotationService(t *testing.T) {
	svc := NewNumerotationService()
	if got := svc.GenererCodeLot(0, ""); got != "1" {
		t.Fatalf("expected 1, got %s", got)
	}
	if got := svc.GenererCodeLot(2, "1"); got != "1.3" {
		t.Fatalf("expected 1.3, got %s", got)
	}
	if got := svc.GenererCodeLot(0, "2.1"); got != "2.1.1" {
		t.Fatalf("expected 2.1.1, got %s", got)
	}
	if got := svc.GenererCodeLigne(0, "1"); got != "1.01" {
		t.Fatalf("expected 1.01, got %s", got)
	}
	if got := svc.GenererCodeLigne(4, "2.1"); got != "2.1.05" {
		t.Fatalf("expected 2.1.05, got %s", got)
	}

	codes := svc.RenumeroterLignes("1.2", 3)
	want := []string{"1.2.01", "1.2.02", "1.2.03"}
	for i, c := range codes {
		if c != want[i] {
			t.Fatalf("expected %v, got %v", want, codes)
		}
	}
}

func TestWorkflowGuardsSeuilDirection(t *testing.T) {
	guards := NewWorkflowGuards()
	montantEleve := decimal.NewFromInt(60_000)
	montantFaible := decimal.NewFromInt(1_000)

	if err := guards.VerifierTransition("conducteur", "valider", &montantEleve); err == nil {
		t.Fatal("expected conducteur to be refused for >= 50k EUR validation")
	}
	if err := guards.VerifierTransition("admin", "valider", &montantEleve); err != nil {
		t.Fatalf("expected admin to validate >= 50k EUR, got %v", err)
	}
	if err := guards.VerifierTransition("conducteur", "valider", &montantFaible); err != nil {
		t.Fatalf("expected conducteur to validate < 50k EUR, got %v", err)
	}
	if err := guards.VerifierTransition("compagnon", "accepter", nil); err == nil {
		t.Fatal("expected compagnon to be refused for accepter")
	}
	if err := guards.VerifierTransition("admin", "inconnue", nil); err == nil {
		t.Fatal("expected unknown transition to be refused")
	}
}

func TestDebourseServiceDecomposerEtDebourseSec(t *testing.T) {
	deb1, _ := entities.NewDebourseDetail(1, valueobjects.MOE, "pose", decimal.NewFromInt(8), decimal.NewFromInt(35))
	deb2, _ := entities.NewDebourseDetail(1, valueobjects.Materiaux, "carrelage", decimal.NewFromInt(20), decimal.NewFromInt(15))

	svc := NewDebourseService()
	decomp := svc.Decomposer(1, []*entities.DebourseDetail{deb1, deb2})
	if !decomp.TotalMOE.Equal(decimal.NewFromInt(280)) {
		t.Fatalf("expected total MOE 280, got %s", decomp.TotalMOE)
	}
	if !decomp.TotalMateriaux.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("expected total materiaux 300, got %s", decomp.TotalMateriaux)
	}
	if !decomp.DebourseSec().Equal(decimal.NewFromInt(580)) {
		t.Fatalf("expected debourse sec 580, got %s", decomp.DebourseSec())
	}

	sec := svc.CalculerDebourseSec([]*entities.DebourseDetail{deb1, deb2})
	if !sec.Equal(decimal.NewFromInt(580)) {
		t.Fatalf("expected debourse sec 580, got %s", sec)
	}
}
