package hardware

import (
	"context"
	"fmt"

	dw "controlling_dishwasher"
	"controlling_dishwasher/internal/washer"
)

// WaterPump simulates the fill/drain pump. Injected faults make it fail with
// washer.ErrPumpFault, and it will not pour into an unlocked chamber.
type WaterPump struct {
	board *Board
}

var _ washer.WaterPump = (*WaterPump)(nil)

func NewWaterPump(board *Board) *WaterPump { return &WaterPump{board: board} }

func (p *WaterPump) Pour(ctx context.Context, level dw.FillLevel) error {
	_, err := p.board.Update(ctx, func(st *dw.ApplianceState) error {
		if st.PumpFault {
			return washer.ErrPumpFault
		}
		if !st.DoorLocked {
			return fmt.Errorf("%w: door not locked", washer.ErrPumpFault)
		}
		st.WaterLevel = level.String()
		return nil
	})
	if err != nil {
		p.board.Record(ctx, EventFault, "pour failed", map[string]any{"level": level.String(), "err": err.Error()})
		return fmt.Errorf("pour %s: %w", level, err)
	}
	p.board.Record(ctx, EventPump, "water poured", map[string]any{"level": level.String()})
	return nil
}

func (p *WaterPump) Drain(ctx context.Context) error {
	_, err := p.board.Update(ctx, func(st *dw.ApplianceState) error {
		if st.DrainFault {
			return washer.ErrPumpFault
		}
		st.WaterLevel = ""
		st.ActiveProgram = ""
		return nil
	})
	if err != nil {
		p.board.Record(ctx, EventFault, "drain failed", map[string]any{"err": err.Error()})
		return fmt.Errorf("drain: %w", err)
	}
	p.board.Record(ctx, EventPump, "water drained", nil)
	return nil
}
