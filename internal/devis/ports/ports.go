// Package ports declares the outbound collaborator interfaces the devis
// use cases depend on: PDF rendering, chantier creation, event
// publication, reminder transport, and DPGF decoding. Each is a thin
// seam so adapters stay swappable, following the teacher's queue.Manager
// and audit_service collaborator-interface style.
package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DevisDetailDTO is the full tree handed to the PDF generator: quote,
// VAT breakdown, retention, net-to-pay, lots, and lines.
type DevisDetailDTO struct {
	DevisID            int64
	Numero             string
	ClientNom          string
	Objet              string
	MontantHT          decimal.Decimal
	MontantTVA         decimal.Decimal
	MontantTTC         decimal.Decimal
	RetenueGarantiePct decimal.Decimal
	MontantRetenue     decimal.Decimal
	NetAPayer          decimal.Decimal
	MentionTVAReduite  string
	Options            map[string]bool
	Lots               []LotDetailDTO
}

// LotDetailDTO is one lot within DevisDetailDTO.
type LotDetailDTO struct {
	CodeLot      string
	Titre        string
	MontantHT    decimal.Decimal
	Lignes       []LigneDetailDTO
}

// LigneDetailDTO is one line within LotDetailDTO. Never carries
// debourse-level fields — the generator must not display them.
type LigneDetailDTO struct {
	CodeLigne      string
	Designation    string
	Unite          string
	Quantite       decimal.Decimal
	PrixUnitaireHT decimal.Decimal
	TauxTVA        decimal.Decimal
	MontantHT      decimal.Decimal
}

// PDFGenerator renders a quote to an A4 PDF document.
type PDFGenerator interface {
	Generate(ctx context.Context, dto DevisDetailDTO) ([]byte, error)
}

// LotBudgetaireCreationData is one budget line transferred to the work
// site on conversion.
type LotBudgetaireCreationData struct {
	CodeLot      string
	Libelle      string
	Unite        string
	QuantitePrevue decimal.Decimal
	PrixUnitaireHT decimal.Decimal
	Ordre        int
	PrixVenteHT  decimal.Decimal
}

// ChantierCreationData describes the work site to create on conversion.
type ChantierCreationData struct {
	Nom            string
	Adresse        string
	Description    string
	ConducteurIDs  []int64
}

// BudgetCreationData describes the work site's initial budget.
type BudgetCreationData struct {
	MontantInitialHT      decimal.Decimal
	RetenueGarantiePct    decimal.Decimal
	SeuilAlertePct        decimal.Decimal
	SeuilValidationAchat  decimal.Decimal
	DevisID               int64
}

// ChantierCreationResult is the outcome of a successful conversion.
type ChantierCreationResult struct {
	ChantierID       int64
	CodeChantier     string
	BudgetID         int64
	NbLotsTransferes int
}

// ChantierCreationPort converts an accepted devis into a work site with
// an initial budget and its budget lines.
type ChantierCreationPort interface {
	CreerChantier(ctx context.Context, chantier ChantierCreationData, budget BudgetCreationData, lots []LotBudgetaireCreationData) (ChantierCreationResult, error)
}

// LotConvertiDTO is one lot row carried by DevisConvertEvent.
type LotConvertiDTO struct {
	CodeLot           string
	Libelle           string
	MontantDebourseHT decimal.Decimal
	MontantVenteHT    decimal.Decimal
}

// DevisConvertEvent is published after a devis is converted to a work
// site, once the enclosing transaction has committed.
type DevisConvertEvent struct {
	DevisID            int64
	Numero             string
	ClientNom          string
	ClientEmail        string
	ClientTelephone    string
	Objet              string
	MontantHT          decimal.Decimal
	MontantTTC         decimal.Decimal
	RetenueGarantiePct decimal.Decimal
	Lots               []LotConvertiDTO
	CommercialID       *int64
	ConducteurID       *int64
	DateConversion     time.Time
}

// EventPublisher publishes domain events. Invoked only after commit.
type EventPublisher interface {
	Publish(ctx context.Context, event DevisConvertEvent) error
}

// NotificationTransport sends a reminder notification. Asynchronous and
// best-effort: success means "sent", nothing more is guaranteed.
type NotificationTransport interface {
	EnvoyerRelance(ctx context.Context, devisID int64, destinataire, sujet, corps string) error
}

// DPGFDecoder turns raw bytes plus a column mapping into a sequence of
// raw string rows, tolerating common encodings and CSV delimiters.
type DPGFDecoder interface {
	Decode(ctx context.Context, payload []byte, mapping map[string]string) ([]map[string]string, error)
}
