package washer

import (
	"errors"

	dw "controlling_dishwasher"
)

// Fault taxonomy. Door and filter faults are detected from collaborator state;
// pump and engine faults are returned by the collaborators themselves.
var (
	ErrDoorOpen       = errors.New("door is open")
	ErrFilterCapacity = errors.New("dirt filter capacity below threshold")
	ErrPumpFault      = errors.New("water pump fault")
	ErrEngineFault    = errors.New("engine fault")
)

// StatusOf maps a fault to the run status it produces. nil maps to SUCCESS.
// Unclassified errors map to ERROR_PROGRAM.
func StatusOf(err error) dw.Status {
	switch {
	case err == nil:
		return dw.StatusSuccess
	case errors.Is(err, ErrDoorOpen):
		return dw.StatusDoorOpen
	case errors.Is(err, ErrFilterCapacity):
		return dw.StatusErrorFilter
	case errors.Is(err, ErrPumpFault):
		return dw.StatusErrorPump
	default:
		return dw.StatusErrorProgram
	}
}

// FaultOf is the inverse of StatusOf; SUCCESS and unknown statuses map to nil.
func FaultOf(s dw.Status) error {
	switch s {
	case dw.StatusDoorOpen:
		return ErrDoorOpen
	case dw.StatusErrorFilter:
		return ErrFilterCapacity
	case dw.StatusErrorPump:
		return ErrPumpFault
	case dw.StatusErrorProgram:
		return ErrEngineFault
	default:
		return nil
	}
}
