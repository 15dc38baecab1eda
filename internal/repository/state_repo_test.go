package repository_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"reflect"
	"regexp"
	"testing"
	"time"

	dw "controlling_dishwasher"
	"controlling_dishwasher/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
)

var stateColumns = []string{
	"id", "door_open", "door_locked", "filter_capacity", "water_level",
	"pump_fault", "drain_fault", "engine_fault", "active_program", "updated_at",
}

const selectStatePrefix = "SELECT id, door_open, door_locked, filter_capacity"

func TestStateSQLite_Save_SetsUTCNow_WhenTimeZero(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer db.Close()

	repo := repository.NewStateSQLite(db)

	state := dw.ApplianceState{
		DoorOpen:       false,
		DoorLocked:     true,
		FilterCapacity: 72.5,
		WaterLevel:     "HALF",
		ActiveProgram:  "ECO",
	}

	isUTCRecent := sqlmockArgumentFunc(func(v driver.Value) bool {
		tm, ok := v.(time.Time)
		if !ok || tm.Location() != time.UTC {
			return false
		}
		now := time.Now().UTC()
		return !tm.Before(now.Add(-5*time.Second)) && !tm.After(now.Add(5*time.Second))
	})

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO appliance_state")).
		WithArgs(
			1,
			false,
			true,
			72.5,
			"HALF",
			false,
			false,
			false,
			"ECO",
			isUTCRecent,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Save(context.Background(), state); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStateSQLite_Save_EmptyStringsBecomeNULL_AndTimeConvertedToUTC(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer db.Close()

	repo := repository.NewStateSQLite(db)

	locTokyo := time.FixedZone("JST", 9*60*60)
	original := time.Date(2025, 3, 5, 12, 34, 56, 0, locTokyo)
	expectedUTC := original.UTC()

	state := dw.ApplianceState{
		DoorOpen:       true,
		FilterCapacity: 100,
		PumpFault:      true,
		EngineFault:    true,
		UpdatedAt:      original,
	}

	isExactUTC := sqlmockArgumentFunc(func(v driver.Value) bool {
		tm, ok := v.(time.Time)
		return ok && tm.Equal(expectedUTC) && tm.Location() == time.UTC
	})

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO appliance_state")).
		WithArgs(1, true, false, 100.0, nil, true, false, true, nil, isExactUTC).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Save(context.Background(), state); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStateSQLite_Save_ExecErrorIsPropagated(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer db.Close()

	repo := repository.NewStateSQLite(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO appliance_state")).
		WillReturnError(errors.New("db down"))

	if err := repo.Save(context.Background(), dw.ApplianceState{FilterCapacity: 1}); err == nil {
		t.Fatalf("Save() expected error, got nil")
	}
}

func TestStateSQLite_Load_NoRowsReturnsZeroValueAndNilError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer db.Close()

	repo := repository.NewStateSQLite(db)

	mock.ExpectQuery(regexp.QuoteMeta(selectStatePrefix)).
		WithArgs(1).
		WillReturnError(sql.ErrNoRows)

	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	var zero dw.ApplianceState
	if !reflect.DeepEqual(got, zero) {
		t.Fatalf("Load() expected zero state, got: %+v", got)
	}
}

func TestStateSQLite_Load_HappyPath_NullsAndUTC(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer db.Close()

	repo := repository.NewStateSQLite(db)

	nonUTC := time.Date(2024, 2, 1, 8, 30, 0, 0, time.FixedZone("EST", -5*60*60))
	rows := sqlmock.NewRows(stateColumns).
		AddRow(1, false, true, 64.0, "FULL", false, true, false, nil, nonUTC)

	mock.ExpectQuery(regexp.QuoteMeta(selectStatePrefix)).
		WithArgs(1).
		WillReturnRows(rows)

	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if got.ID != 1 || got.DoorOpen || !got.DoorLocked || got.FilterCapacity != 64.0 ||
		got.WaterLevel != "FULL" || !got.DrainFault || got.PumpFault || got.EngineFault {
		t.Fatalf("Load() unexpected fields: %+v", got)
	}
	if got.ActiveProgram != "" {
		t.Fatalf("expected NULL active_program to load as empty, got %q", got.ActiveProgram)
	}
	if got.UpdatedAt.Location() != time.UTC || !got.UpdatedAt.Equal(nonUTC) {
		t.Fatalf("Load() UpdatedAt not normalized: %v", got.UpdatedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStateSQLite_Load_QueryErrorIsPropagated(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer db.Close()

	repo := repository.NewStateSQLite(db)

	mock.ExpectQuery(regexp.QuoteMeta(selectStatePrefix)).
		WithArgs(1).
		WillReturnError(errors.New("disk I/O error"))

	if _, err := repo.Load(context.Background()); err == nil {
		t.Fatalf("Load() expected error, got nil")
	}
}

// Helpers

type sqlmockArgumentFunc func(v driver.Value) bool

func (f sqlmockArgumentFunc) Match(v driver.Value) bool {
	return f(v)
}
