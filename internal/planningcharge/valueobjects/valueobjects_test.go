package valueobjects

import "testing"

func TestSemaineParseEtString(t *testing.T) {
	s, err := ParseSemaine("S05-2026")
	if err != nil {
		t.Fatalf("ParseSemaine: %v", err)
	}
	if s.Annee() != 2026 || s.Numero() != 5 {
		t.Fatalf("expected 2026/5, got %d/%d", s.Annee(), s.Numero())
	}
	if s.String() != "S05-2026" {
		t.Fatalf("expected S05-2026, got %s", s.String())
	}
}

func TestSemaineNext(t *testing.T) {
	s, _ := NewSemaine(2026, 52)
	next := s.Next()
	if next.Annee() != 2027 && next.Annee() != 2026 {
		t.Fatalf("unexpected year rollover: %+v", next)
	}
	if !s.Before(next) {
		t.Fatalf("expected %v before %v", s, next)
	}
}

func TestSequenceSemaines(t *testing.T) {
	start, _ := NewSemaine(2026, 1)
	end, _ := NewSemaine(2026, 4)
	seq, err := SequenceSemaines(start, end)
	if err != nil {
		t.Fatalf("SequenceSemaines: %v", err)
	}
	if len(seq) != 4 {
		t.Fatalf("expected 4 weeks (1,2,3,4), got %d: %v", len(seq), seq)
	}
	if seq[0].Numero() != 1 || seq[len(seq)-1].Numero() != 4 {
		t.Fatalf("unexpected sequence bounds: %v", seq)
	}
}

func TestSequenceSemainesIncludesStartWeek(t *testing.T) {
	start, _ := NewSemaine(2026, 7)
	end, _ := NewSemaine(2026, 7)
	seq, err := SequenceSemaines(start, end)
	if err != nil {
		t.Fatalf("SequenceSemaines: %v", err)
	}
	if len(seq) != 1 || !seq[0].Equal(start) {
		t.Fatalf("expected the single-week range to be [start], got %v", seq)
	}
}

func TestSequenceSemainesInvalidRange(t *testing.T) {
	start, _ := NewSemaine(2026, 10)
	end, _ := NewSemaine(2026, 1)
	if _, err := SequenceSemaines(start, end); err == nil {
		t.Fatal("expected error when end precedes start")
	}
}

func TestTauxOccupationBuckets(t *testing.T) {
	cases := []struct {
		planifie, capacite float64
		bucket             BucketOccupation
		alerte             bool
	}{
		{0, 0, BucketSousCharge, false},
		{21, 35, BucketSousCharge, false},
		{28, 35, BucketNormal, false},
		{33, 35, BucketOptimal, false},
		{40, 35, BucketSurcharge, true},
	}
	for _, c := range cases {
		tx := NewTauxOccupation(c.planifie, c.capacite)
		if tx.Bucket() != c.bucket {
			t.Fatalf("planifie=%v capacite=%v: expected bucket %s, got %s", c.planifie, c.capacite, c.bucket, tx.Bucket())
		}
		if tx.Alerte() != c.alerte {
			t.Fatalf("planifie=%v capacite=%v: expected alerte=%v, got %v", c.planifie, c.capacite, c.alerte, tx.Alerte())
		}
	}
}

func TestUniteChargeConversion(t *testing.T) {
	if got := UniteJoursHomme.Convertir(35); got != 5 {
		t.Fatalf("expected 5 jours-homme for 35h, got %v", got)
	}
	if got := UniteHeures.Convertir(35); got != 35 {
		t.Fatalf("expected 35h unchanged, got %v", got)
	}
}
