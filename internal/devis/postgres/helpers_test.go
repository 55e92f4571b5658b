package postgres

import "testing"

func TestPrefixColumnsQualifiesEachColumn(t *testing.T) {
	got := prefixColumns("d", "id, numero, client_nom")
	want := "d.id, d.numero, d.client_nom"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestPrefixColumnsSingleColumn(t *testing.T) {
	got := prefixColumns("l", "id")
	want := "l.id"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
