// Package queue wires NATS as the transport for domain events published
// after a devis workflow commits.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/pinggolf/btp-planning-core/internal/devis/ports"
)

// Manager handles the NATS connection lifecycle.
type Manager struct {
	conn *nats.Conn
	url  string
}

// NewManager connects to NATS with reconnect handling.
func NewManager(natsURL string) (*Manager, error) {
	options := []nats.Option{
		nats.Name("BTP Planning Core"),
		nats.MaxReconnects(10),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				log.Printf("NATS disconnected: %v", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Printf("NATS reconnected to %s", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			log.Println("NATS connection closed")
		}),
	}

	conn, err := nats.Connect(natsURL, options...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	log.Printf("Connected to NATS at %s", natsURL)

	return &Manager{conn: conn, url: natsURL}, nil
}

// Close closes the NATS connection.
func (m *Manager) Close() {
	if m.conn != nil {
		m.conn.Close()
	}
}

// Conn returns the underlying NATS connection.
func (m *Manager) Conn() *nats.Conn {
	return m.conn
}

// Publish publishes a raw message to a subject.
func (m *Manager) Publish(subject string, data []byte) error {
	return m.conn.Publish(subject, data)
}

// Subscribe subscribes to a subject with a handler.
func (m *Manager) Subscribe(subject string, handler nats.MsgHandler) (*nats.Subscription, error) {
	return m.conn.Subscribe(subject, handler)
}

// QueueSubscribe creates a load-balanced queue subscriber.
func (m *Manager) QueueSubscribe(subject, queue string, handler nats.MsgHandler) (*nats.Subscription, error) {
	return m.conn.QueueSubscribe(subject, queue, handler)
}

// Subject patterns used across the devis and planning-charge modules.
const (
	SubjectDevisConverted    = "devis.converted"
	SubjectRelanceDue        = "relance.due"
	SubjectRelanceBatchStart = "relance.batch.start"

	QueueGroupRelanceWorkers = "relance-workers"
)

// DevisEventPublisher publishes DevisConvertEvent messages to NATS,
// implementing ports.EventPublisher.
type DevisEventPublisher struct {
	mgr *Manager
}

// NewDevisEventPublisher wires a DevisEventPublisher over a connected Manager.
func NewDevisEventPublisher(mgr *Manager) *DevisEventPublisher {
	return &DevisEventPublisher{mgr: mgr}
}

type lotConvertiWire struct {
	CodeLot           string `json:"code_lot"`
	Libelle           string `json:"libelle"`
	MontantDebourseHT string `json:"montant_debourse_ht"`
	MontantVenteHT    string `json:"montant_vente_ht"`
}

type devisConvertEventWire struct {
	DevisID            int64             `json:"devis_id"`
	Numero             string            `json:"numero"`
	ClientNom          string            `json:"client_nom"`
	ClientEmail        string            `json:"client_email"`
	ClientTelephone    string            `json:"client_telephone"`
	Objet              string            `json:"objet"`
	MontantHT          string            `json:"montant_ht"`
	MontantTTC         string            `json:"montant_ttc"`
	RetenueGarantiePct string            `json:"retenue_garantie_pct"`
	Lots               []lotConvertiWire `json:"lots"`
	CommercialID       *int64            `json:"commercial_id,omitempty"`
	ConducteurID       *int64            `json:"conducteur_id,omitempty"`
	DateConversion     time.Time         `json:"date_conversion"`
}

// Publish marshals the event to JSON and publishes it under
// SubjectDevisConverted, scoped per quote ("devis.converted.<numero>") so
// subscribers can filter on a single devis with a NATS subject wildcard.
// Invoked only after the enclosing transaction has committed; a publish
// failure here never rolls back the conversion.
func (p *DevisEventPublisher) Publish(ctx context.Context, event ports.DevisConvertEvent) error {
	lots := make([]lotConvertiWire, len(event.Lots))
	for i, l := range event.Lots {
		lots[i] = lotConvertiWire{
			CodeLot:           l.CodeLot,
			Libelle:           l.Libelle,
			MontantDebourseHT: l.MontantDebourseHT.String(),
			MontantVenteHT:    l.MontantVenteHT.String(),
		}
	}
	wire := devisConvertEventWire{
		DevisID:            event.DevisID,
		Numero:             event.Numero,
		ClientNom:          event.ClientNom,
		ClientEmail:        event.ClientEmail,
		ClientTelephone:    event.ClientTelephone,
		Objet:              event.Objet,
		MontantHT:          event.MontantHT.String(),
		MontantTTC:         event.MontantTTC.String(),
		RetenueGarantiePct: event.RetenueGarantiePct.String(),
		Lots:               lots,
		CommercialID:       event.CommercialID,
		ConducteurID:       event.ConducteurID,
		DateConversion:     event.DateConversion,
	}

	data, err := json.Marshal(wire)
	if err != nil {
		return fmt.Errorf("marshal devis convert event: %w", err)
	}
	subject := fmt.Sprintf("%s.%s", SubjectDevisConverted, event.Numero)
	if err := p.mgr.Publish(subject, data); err != nil {
		return fmt.Errorf("publish devis convert event: %w", err)
	}
	return nil
}

// RelanceBatchTrigger publishes a lightweight trigger message telling
// relance workers to scan for due reminders, instead of carrying payload.
type RelanceBatchTrigger struct {
	mgr *Manager
}

// NewRelanceBatchTrigger wires a RelanceBatchTrigger over a connected Manager.
func NewRelanceBatchTrigger(mgr *Manager) *RelanceBatchTrigger {
	return &RelanceBatchTrigger{mgr: mgr}
}

// Trigger publishes an empty payload to SubjectRelanceBatchStart.
func (t *RelanceBatchTrigger) Trigger() error {
	return t.mgr.Publish(SubjectRelanceBatchStart, []byte(`{}`))
}
