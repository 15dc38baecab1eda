package hardware

import (
	"context"
	"errors"
	"fmt"

	dw "controlling_dishwasher"
	"controlling_dishwasher/internal/washer"
)

var ErrInvalidCapacity = errors.New("filter capacity must be within [0, 100]")

// DirtFilter simulates the filter sensor.
type DirtFilter struct {
	board *Board
}

var _ washer.DirtFilter = (*DirtFilter)(nil)

func NewDirtFilter(board *Board) *DirtFilter { return &DirtFilter{board: board} }

// Capacity reports 0 when the sensor cannot be read.
func (f *DirtFilter) Capacity(ctx context.Context) float64 {
	st, err := f.board.Snapshot(ctx)
	if err != nil {
		f.board.log.Errorw("filter_state_unreadable", "err", err)
		return 0
	}
	return st.FilterCapacity
}

// SetCapacity stores a new sensor reading, e.g. after cleaning the filter.
func (f *DirtFilter) SetCapacity(ctx context.Context, capacity float64) (dw.ApplianceState, error) {
	if capacity < 0 || capacity > FullFilterCapacity {
		return dw.ApplianceState{}, fmt.Errorf("%w: %.1f", ErrInvalidCapacity, capacity)
	}
	st, err := f.board.Update(ctx, func(st *dw.ApplianceState) error {
		st.FilterCapacity = capacity
		return nil
	})
	if err != nil {
		return st, err
	}
	f.board.Record(ctx, EventFilter, "filter capacity set", map[string]any{"capacity": capacity})
	return st, nil
}
