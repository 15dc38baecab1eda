package hardware

import (
	"context"
	"fmt"

	dw "controlling_dishwasher"
	"controlling_dishwasher/internal/washer"
)

// Engine simulates the wash motor. It runs a program instantly; real cycle
// timing is not modelled. The program stays recorded as active until the
// pump drains the chamber.
type Engine struct {
	board *Board
}

var _ washer.Engine = (*Engine)(nil)

func NewEngine(board *Board) *Engine { return &Engine{board: board} }

// RunProgram expects params [ordinal, minutes] naming a known program.
func (e *Engine) RunProgram(ctx context.Context, params []int) error {
	program, err := programFromParams(params)
	if err != nil {
		e.board.Record(ctx, EventFault, "program rejected", map[string]any{"params": params, "err": err.Error()})
		return err
	}

	_, err = e.board.Update(ctx, func(st *dw.ApplianceState) error {
		if st.EngineFault {
			return washer.ErrEngineFault
		}
		st.ActiveProgram = program.String()
		return nil
	})
	if err != nil {
		e.board.Record(ctx, EventFault, "program failed", map[string]any{"program": program.String(), "err": err.Error()})
		return fmt.Errorf("run %s: %w", program, err)
	}
	e.board.Record(ctx, EventEngine, "program finished", map[string]any{
		"program": program.String(),
		"params":  params,
	})
	return nil
}

func programFromParams(params []int) (dw.WashingProgram, error) {
	if len(params) != 2 {
		return 0, fmt.Errorf("%w: want 2 params [ordinal, minutes], got %d", washer.ErrEngineFault, len(params))
	}
	program := dw.WashingProgram(params[0])
	if !program.Valid() {
		return 0, fmt.Errorf("%w: unknown program ordinal %d", washer.ErrEngineFault, params[0])
	}
	if program.TimeInMinutes() != params[1] {
		return 0, fmt.Errorf("%w: %s runs %d minutes, got %d", washer.ErrEngineFault, program, program.TimeInMinutes(), params[1])
	}
	return program, nil
}
