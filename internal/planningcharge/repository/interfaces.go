package repository

import (
	"context"

	"github.com/pinggolf/btp-planning-core/internal/planningcharge/entities"
	"github.com/pinggolf/btp-planning-core/internal/planningcharge/valueobjects"
)

// BesoinChargeRepository persists BesoinCharge entities.
type BesoinChargeRepository interface {
	Save(ctx context.Context, b *entities.BesoinCharge) error
	FindByID(ctx context.Context, id int64) (*entities.BesoinCharge, error)
	FindByChantierID(ctx context.Context, chantierID int64) ([]*entities.BesoinCharge, error)
	FindInRange(ctx context.Context, debut, fin valueobjects.Semaine) ([]*entities.BesoinCharge, error)
	FindByCodeUnique(ctx context.Context, code string) (*entities.BesoinCharge, error)
	Delete(ctx context.Context, id int64) error
}
