package washer

import (
	"context"

	dw "controlling_dishwasher"
)

// Door reports whether the wash chamber is closed and holds the lock.
type Door interface {
	Closed(ctx context.Context) bool
	Lock(ctx context.Context)
	Unlock(ctx context.Context)
}

// DirtFilter reports the filter's cleanliness reading.
type DirtFilter interface {
	Capacity(ctx context.Context) float64
}

// WaterPump fills and drains the chamber. Both operations may fail with ErrPumpFault.
type WaterPump interface {
	Pour(ctx context.Context, level dw.FillLevel) error
	Drain(ctx context.Context) error
}

// Engine executes a wash program. params is exactly [ordinal, minutes].
type Engine interface {
	RunProgram(ctx context.Context, params []int) error
}
