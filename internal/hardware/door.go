package hardware

import (
	"context"
	"errors"

	dw "controlling_dishwasher"
	"controlling_dishwasher/internal/washer"
)

var ErrDoorLocked = errors.New("door is locked")

// Door simulates the chamber door and its lock.
type Door struct {
	board *Board
}

var _ washer.Door = (*Door)(nil)

func NewDoor(board *Board) *Door { return &Door{board: board} }

// Closed reports an unreadable state as open so no run can start on it.
func (d *Door) Closed(ctx context.Context) bool {
	st, err := d.board.Snapshot(ctx)
	if err != nil {
		d.board.log.Errorw("door_state_unreadable", "err", err)
		return false
	}
	return !st.DoorOpen
}

func (d *Door) Lock(ctx context.Context) { d.setLocked(ctx, true) }
func (d *Door) Unlock(ctx context.Context) { d.setLocked(ctx, false) }

func (d *Door) setLocked(ctx context.Context, locked bool) {
	if _, err := d.board.Update(ctx, func(st *dw.ApplianceState) error {
		st.DoorLocked = locked
		return nil
	}); err != nil {
		d.board.log.Errorw("door_lock_failed", "locked", locked, "err", err)
		return
	}
	desc := "door unlocked"
	if locked {
		desc = "door locked"
	}
	d.board.Record(ctx, EventDoor, desc, nil)
}

// Open opens the door unless it is locked.
func (d *Door) Open(ctx context.Context) (dw.ApplianceState, error) {
	st, err := d.board.Update(ctx, func(st *dw.ApplianceState) error {
		if st.DoorLocked {
			return ErrDoorLocked
		}
		st.DoorOpen = true
		return nil
	})
	if err != nil {
		return st, err
	}
	d.board.Record(ctx, EventDoor, "door opened", nil)
	return st, nil
}

func (d *Door) Close(ctx context.Context) (dw.ApplianceState, error) {
	st, err := d.board.Update(ctx, func(st *dw.ApplianceState) error {
		st.DoorOpen = false
		return nil
	})
	if err != nil {
		return st, err
	}
	d.board.Record(ctx, EventDoor, "door closed", nil)
	return st, nil
}
