package valueobjects

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRetenueGarantieRoundTrip(t *testing.T) {
	r, err := NewRetenueGarantie(decimal.NewFromInt(5))
	if err != nil {
		t.Fatal(err)
	}
	ttc := decimal.NewFromInt(12000)
	montant := r.CalculerMontant(ttc)
	net := r.MontantNetAPayer(ttc)

	if !montant.Equal(decimal.NewFromInt(600)) {
		t.Fatalf("expected 600.00 retained, got %s", montant)
	}
	if !net.Equal(decimal.NewFromInt(11400)) {
		t.Fatalf("expected 11400.00 net, got %s", net)
	}
	if !montant.Add(net).Equal(ttc) {
		t.Fatalf("montant + net must equal ttc, got %s + %s != %s", montant, net, ttc)
	}
}

func TestRetenueGarantieInvalide(t *testing.T) {
	if _, err := NewRetenueGarantie(decimal.NewFromInt(7)); err == nil {
		t.Fatal("expected error for unauthorized rate 7%")
	}
}

func TestTauxTVAInvalide(t *testing.T) {
	if _, err := NewTauxTVA(decimal.NewFromInt(15)); err == nil {
		t.Fatal("expected error for unauthorized VAT rate 15%")
	}
}
