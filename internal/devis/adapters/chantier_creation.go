// Package adapters holds the minimal concrete implementations of the
// devis module's outbound ports that spec.md explicitly marks as
// external collaborators out of scope for the core: chantier creation,
// notification transport and DPGF decoding. The core only depends on
// the ports package; these adapters exist so the service composes into
// a runnable binary.
package adapters

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pinggolf/btp-planning-core/internal/devis/ports"
)

// ChantierCreationAdapter inserts the minimal row the planning-charge
// module's ChantierProvider already reads (see
// internal/planningcharge/postgres/providers.go) so a converted devis
// shows up across modules. The budget/work-site module itself is out of
// scope, so budget and lot-transfer data are accepted but not persisted
// here — a real work-site service would own that write.
type ChantierCreationAdapter struct {
	db *sql.DB
}

// NewChantierCreationAdapter wires a ChantierCreationAdapter over an opened pool.
func NewChantierCreationAdapter(db *sql.DB) *ChantierCreationAdapter {
	return &ChantierCreationAdapter{db: db}
}

// CreerChantier inserts a new active chantier row and reports the
// transfer as complete for every lot handed in.
func (a *ChantierCreationAdapter) CreerChantier(ctx context.Context, chantier ports.ChantierCreationData, budget ports.BudgetCreationData, lots []ports.LotBudgetaireCreationData) (ports.ChantierCreationResult, error) {
	code := fmt.Sprintf("CHT-%d", budget.DevisID)

	var chantierID int64
	err := a.db.QueryRowContext(ctx,
		`INSERT INTO chantiers (code, nom, statut, heures_estimees) VALUES ($1, $2, 'actif', 0) RETURNING id`,
		code, chantier.Nom,
	).Scan(&chantierID)
	if err != nil {
		return ports.ChantierCreationResult{}, fmt.Errorf("creer chantier: %w", err)
	}

	return ports.ChantierCreationResult{
		ChantierID:       chantierID,
		CodeChantier:     code,
		BudgetID:         0,
		NbLotsTransferes: len(lots),
	}, nil
}
