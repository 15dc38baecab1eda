package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	dw "controlling_dishwasher"
)

type StateSQLite struct {
	db *sql.DB
}

func NewStateSQLite(db *sql.DB) *StateSQLite {
	return &StateSQLite{db: db}
}

const (
	applianceStateRowID = 1

	upsertStateSQL = `
		INSERT INTO appliance_state (id, door_open, door_locked, filter_capacity, water_level,
			pump_fault, drain_fault, engine_fault, active_program, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			door_open=excluded.door_open,
			door_locked=excluded.door_locked,
			filter_capacity=excluded.filter_capacity,
			water_level=excluded.water_level,
			pump_fault=excluded.pump_fault,
			drain_fault=excluded.drain_fault,
			engine_fault=excluded.engine_fault,
			active_program=excluded.active_program,
			updated_at=excluded.updated_at
	`

	selectStateSQL = `
		SELECT id, door_open, door_locked, filter_capacity, water_level,
			pump_fault, drain_fault, engine_fault, active_program, updated_at
		FROM appliance_state WHERE id=?
	`
)

// nullableString stores empty strings as NULL.
func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// Save upserts the appliance_state row (id always 1). A zero UpdatedAt is
// replaced by the current time; times are stored in UTC.
func (r *StateSQLite) Save(ctx context.Context, state dw.ApplianceState) error {
	ts := state.UpdatedAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	} else {
		ts = ts.UTC()
	}

	_, err := r.db.ExecContext(ctx, upsertStateSQL,
		applianceStateRowID,
		state.DoorOpen,
		state.DoorLocked,
		state.FilterCapacity,
		nullableString(state.WaterLevel),
		state.PumpFault,
		state.DrainFault,
		state.EngineFault,
		nullableString(state.ActiveProgram),
		ts,
	)
	return err
}

// Load fetches the appliance_state row.
func (r *StateSQLite) Load(ctx context.Context) (dw.ApplianceState, error) {
	row := r.db.QueryRowContext(ctx, selectStateSQL, applianceStateRowID)

	var (
		s             dw.ApplianceState
		waterLevel    sql.NullString
		activeProgram sql.NullString
	)
	if err := row.Scan(
		&s.ID,
		&s.DoorOpen,
		&s.DoorLocked,
		&s.FilterCapacity,
		&waterLevel,
		&s.PumpFault,
		&s.DrainFault,
		&s.EngineFault,
		&activeProgram,
		&s.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return dw.ApplianceState{}, nil
		}
		return dw.ApplianceState{}, err
	}

	s.WaterLevel = waterLevel.String
	s.ActiveProgram = activeProgram.String
	s.UpdatedAt = s.UpdatedAt.UTC()
	return s, nil
}
