package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/pinggolf/btp-planning-core/internal/devis/valueobjects"
	pcvo "github.com/pinggolf/btp-planning-core/internal/planningcharge/valueobjects"
	"github.com/pinggolf/btp-planning-core/internal/planningcharge/providers"
)

// ChantierProvider reads the cross-module chantier projection needed by the
// aggregator. The chantier table itself belongs to the site-execution
// module; this repository only ever reads the columns the aggregator needs.
type ChantierProvider struct {
	db *sql.DB
}

// NewChantierProvider wires a ChantierProvider over an opened pool.
func NewChantierProvider(db *sql.DB) *ChantierProvider {
	return &ChantierProvider{db: db}
}

// ListerActifs lists active chantiers, optionally narrowed by a free-text
// substring match on code or name.
func (p *ChantierProvider) ListerActifs(ctx context.Context, recherche string) ([]providers.Chantier, error) {
	query := `SELECT id, code, nom, couleur, heures_estimees FROM chantiers WHERE statut = 'actif'`
	var args []any
	if recherche != "" {
		query += " AND (code ILIKE $1 OR nom ILIKE $1)"
		args = append(args, "%"+recherche+"%")
	}
	query += " ORDER BY nom"

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list chantiers actifs: %w", err)
	}
	defer rows.Close()

	var out []providers.Chantier
	for rows.Next() {
		var c providers.Chantier
		if err := rows.Scan(&c.ID, &c.Code, &c.Nom, &c.Couleur, &c.HeuresEstimees); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// AffectationProvider reads the cross-module planned-assignment and
// capacity projections the aggregator needs. The underlying tables belong
// to the scheduling module.
type AffectationProvider struct {
	db *sql.DB
}

// NewAffectationProvider wires an AffectationProvider over an opened pool.
func NewAffectationProvider(db *sql.DB) *AffectationProvider {
	return &AffectationProvider{db: db}
}

func semainesToStrings(semaines []pcvo.Semaine) []string {
	out := make([]string, len(semaines))
	for i, s := range semaines {
		out[i] = s.String()
	}
	return out
}

// HeuresPlanifiees sums planned assignment hours per week for a chantier.
func (p *AffectationProvider) HeuresPlanifiees(ctx context.Context, chantierID int64, semaines []pcvo.Semaine) (map[pcvo.Semaine]float64, error) {
	const query = `
		SELECT semaine, COALESCE(SUM(heures_planifiees), 0)
		FROM affectations
		WHERE chantier_id = $1 AND semaine = ANY($2)
		GROUP BY semaine`
	rows, err := p.db.QueryContext(ctx, query, chantierID, pq.Array(semainesToStrings(semaines)))
	if err != nil {
		return nil, fmt.Errorf("sum heures planifiees for chantier %d: %w", chantierID, err)
	}
	defer rows.Close()
	return scanParSemaineFloat(rows)
}

// CapacitePar sums the total assignable capacity (in hours) across all
// users, per week.
func (p *AffectationProvider) CapacitePar(ctx context.Context, semaines []pcvo.Semaine) (map[pcvo.Semaine]float64, error) {
	const query = `
		SELECT semaine, COALESCE(SUM(capacite_heures), 0)
		FROM capacites_semaine
		WHERE semaine = ANY($1)
		GROUP BY semaine`
	rows, err := p.db.QueryContext(ctx, query, pq.Array(semainesToStrings(semaines)))
	if err != nil {
		return nil, fmt.Errorf("sum capacite par semaine: %w", err)
	}
	defer rows.Close()
	return scanParSemaineFloat(rows)
}

// UtilisateursNonAffectes counts users with no assignment in a given week.
func (p *AffectationProvider) UtilisateursNonAffectes(ctx context.Context, semaines []pcvo.Semaine) (map[pcvo.Semaine]int, error) {
	const query = `
		SELECT semaine, COUNT(*)
		FROM utilisateurs_non_affectes
		WHERE semaine = ANY($1)
		GROUP BY semaine`
	rows, err := p.db.QueryContext(ctx, query, pq.Array(semainesToStrings(semaines)))
	if err != nil {
		return nil, fmt.Errorf("count utilisateurs non affectes: %w", err)
	}
	defer rows.Close()
	return scanParSemaineInt(rows)
}

// UtilisateurProvider reads per-craft capacity and unassigned-user counts
// from the same cross-module tables as AffectationProvider, grouped by
// craft instead of summed across all of them.
type UtilisateurProvider struct {
	db *sql.DB
}

// NewUtilisateurProvider wires a UtilisateurProvider over an opened pool.
func NewUtilisateurProvider(db *sql.DB) *UtilisateurProvider {
	return &UtilisateurProvider{db: db}
}

// CapaciteParMetier sums capacity hours per week for a single craft.
func (p *UtilisateurProvider) CapaciteParMetier(ctx context.Context, metier valueobjects.TypeMetier, semaines []pcvo.Semaine) (map[pcvo.Semaine]float64, error) {
	const query = `
		SELECT semaine, COALESCE(SUM(capacite_heures), 0)
		FROM capacites_semaine
		WHERE metier = $1 AND semaine = ANY($2)
		GROUP BY semaine`
	rows, err := p.db.QueryContext(ctx, query, metier, pq.Array(semainesToStrings(semaines)))
	if err != nil {
		return nil, fmt.Errorf("sum capacite par metier %s: %w", metier, err)
	}
	defer rows.Close()
	return scanParSemaineFloat(rows)
}

// ComptageNonAffectes counts unassigned users per week, across all crafts.
func (p *UtilisateurProvider) ComptageNonAffectes(ctx context.Context, semaines []pcvo.Semaine) (map[pcvo.Semaine]int, error) {
	const query = `
		SELECT semaine, COUNT(*)
		FROM utilisateurs_non_affectes
		WHERE semaine = ANY($1)
		GROUP BY semaine`
	rows, err := p.db.QueryContext(ctx, query, pq.Array(semainesToStrings(semaines)))
	if err != nil {
		return nil, fmt.Errorf("count utilisateurs non affectes: %w", err)
	}
	defer rows.Close()
	return scanParSemaineInt(rows)
}

func scanParSemaineFloat(rows *sql.Rows) (map[pcvo.Semaine]float64, error) {
	out := make(map[pcvo.Semaine]float64)
	for rows.Next() {
		var key string
		var val float64
		if err := rows.Scan(&key, &val); err != nil {
			return nil, err
		}
		s, err := pcvo.ParseSemaine(key)
		if err != nil {
			return nil, fmt.Errorf("decode semaine %q: %w", key, err)
		}
		out[s] = val
	}
	return out, rows.Err()
}

func scanParSemaineInt(rows *sql.Rows) (map[pcvo.Semaine]int, error) {
	out := make(map[pcvo.Semaine]int)
	for rows.Next() {
		var key string
		var val int
		if err := rows.Scan(&key, &val); err != nil {
			return nil, err
		}
		s, err := pcvo.ParseSemaine(key)
		if err != nil {
			return nil, fmt.Errorf("decode semaine %q: %w", key, err)
		}
		out[s] = val
	}
	return out, rows.Err()
}
