package adapters

import (
	"context"
	"log"
)

// LogNotificationTransport logs the reminder instead of sending it. The
// real transport (email/push) is an external collaborator out of scope
// for this core; this stand-in matches the teacher's log.Printf
// convention so relance scheduling is exercisable end to end.
type LogNotificationTransport struct{}

// NewLogNotificationTransport builds a LogNotificationTransport.
func NewLogNotificationTransport() *LogNotificationTransport {
	return &LogNotificationTransport{}
}

// EnvoyerRelance logs the reminder that would have been sent.
func (LogNotificationTransport) EnvoyerRelance(ctx context.Context, devisID int64, destinataire, sujet, corps string) error {
	log.Printf("relance devis=%d destinataire=%s sujet=%q", devisID, destinataire, sujet)
	return nil
}
