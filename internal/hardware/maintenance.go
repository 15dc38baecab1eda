package hardware

import (
	"context"

	dw "controlling_dishwasher"
)

// Faults selects which simulated failures are armed.
type Faults struct {
	Pump   bool `json:"pump"`   // Pour fails
	Drain  bool `json:"drain"`  // Drain fails
	Engine bool `json:"engine"` // RunProgram fails
}

// InjectFaults arms or disarms simulated failures.
func (b *Board) InjectFaults(ctx context.Context, f Faults) (dw.ApplianceState, error) {
	st, err := b.Update(ctx, func(st *dw.ApplianceState) error {
		st.PumpFault = f.Pump
		st.DrainFault = f.Drain
		st.EngineFault = f.Engine
		return nil
	})
	if err != nil {
		return st, err
	}
	b.Record(ctx, EventMaintenance, "faults configured", map[string]any{
		"pump":   f.Pump,
		"drain":  f.Drain,
		"engine": f.Engine,
	})
	return st, nil
}

// Reset is the service technician's path out of a faulted run: it clears
// faults, drains the chamber and releases the door lock.
func (b *Board) Reset(ctx context.Context) (dw.ApplianceState, error) {
	st, err := b.Update(ctx, func(st *dw.ApplianceState) error {
		st.PumpFault = false
		st.DrainFault = false
		st.EngineFault = false
		st.WaterLevel = ""
		st.ActiveProgram = ""
		st.DoorLocked = false
		return nil
	})
	if err != nil {
		return st, err
	}
	b.Record(ctx, EventMaintenance, "appliance reset", nil)
	b.log.Infow("appliance_reset")
	return st, nil
}

// Components bundles the simulated collaborators sharing one Board.
type Components struct {
	Board  *Board
	Door   *Door
	Filter *DirtFilter
	Pump   *WaterPump
	Engine *Engine
}

func NewComponents(board *Board) *Components {
	return &Components{
		Board:  board,
		Door:   NewDoor(board),
		Filter: NewDirtFilter(board),
		Pump:   NewWaterPump(board),
		Engine: NewEngine(board),
	}
}
