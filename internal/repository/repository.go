package repository

import (
	"context"
	"database/sql"
	"time"

	dw "controlling_dishwasher"
)

type Authorization interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*dw.User, error)
}

// StateRepo persists the single appliance_state row. Load returns a zero
// ApplianceState (ID == 0) when nothing has been saved yet.
type StateRepo interface {
	Save(ctx context.Context, s dw.ApplianceState) error
	Load(ctx context.Context) (dw.ApplianceState, error)
}

// EventRepo is the append-only hardware journal.
type EventRepo interface {
	Append(ctx context.Context, e dw.HardwareEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]dw.HardwareEvent, error)
}

type Repository struct {
	StateRepo StateRepo
	EventRepo EventRepo
	Auth      Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		StateRepo: NewStateSQLite(db),
		EventRepo: NewEventSQLite(db),
		Auth:      NewUserRepository(db),
	}
}
