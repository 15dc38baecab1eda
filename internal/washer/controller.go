package washer

import (
	"context"

	dw "controlling_dishwasher"
	"controlling_dishwasher/internal/logger"
)

// DefaultFilterThreshold is the minimum filter capacity for a run: 60 passes, 40 fails.
const DefaultFilterThreshold = 50.0

// Phase names the step a run is in; used for log fields.
type Phase string

const (
	PhaseCheckDoor   Phase = "CHECK_DOOR"
	PhaseCheckFilter Phase = "CHECK_FILTER"
	PhaseLocked      Phase = "LOCKED"
	PhasePouring     Phase = "POURING"
	PhaseRunning     Phase = "RUNNING"
	PhaseDraining    Phase = "DRAINING"
	PhaseDone        Phase = "DONE"
)

// Controller sequences the hardware collaborators through one wash run.
// It is not safe for concurrent use; callers serialize Start.
type Controller struct {
	pump      WaterPump
	engine    Engine
	filter    DirtFilter
	door      Door
	threshold float64
	log       *logger.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithFilterThreshold overrides DefaultFilterThreshold.
func WithFilterThreshold(threshold float64) Option {
	return func(c *Controller) { c.threshold = threshold }
}

// WithLogger sets the logger for run outcomes; nil disables logging.
func WithLogger(log *logger.Logger) Option {
	return func(c *Controller) { c.log = log }
}

func NewController(pump WaterPump, engine Engine, filter DirtFilter, door Door, opts ...Option) *Controller {
	c := &Controller{
		pump:      pump,
		engine:    engine,
		filter:    filter,
		door:      door,
		threshold: DefaultFilterThreshold,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FilterThreshold returns the capacity below which runs are refused.
func (c *Controller) FilterThreshold() float64 { return c.threshold }

// Start runs one wash cycle and always returns exactly one result.
// Hardware faults are translated to a status and never returned as errors.
// After a pump or engine fault the door stays locked.
func (c *Controller) Start(ctx context.Context, cfg dw.ProgramConfiguration) dw.RunResult {
	program := cfg.Program()

	if !c.door.Closed(ctx) {
		return c.fail(PhaseCheckDoor, dw.StatusDoorOpen, ErrDoorOpen, cfg)
	}

	if capacity := c.filter.Capacity(ctx); capacity < c.threshold {
		c.debugw("filter_capacity_low", "capacity", capacity, "threshold", c.threshold)
		return c.fail(PhaseCheckFilter, dw.StatusErrorFilter, ErrFilterCapacity, cfg)
	}

	c.door.Lock(ctx)
	c.debugw("door_locked", "phase", string(PhaseLocked), "program", program.String())

	if err := c.pump.Pour(ctx, cfg.FillLevel()); err != nil {
		return c.fail(PhasePouring, dw.StatusErrorPump, err, cfg)
	}

	if err := c.engine.RunProgram(ctx, []int{program.Ordinal(), program.TimeInMinutes()}); err != nil {
		return c.fail(PhaseRunning, dw.StatusErrorProgram, err, cfg)
	}

	if err := c.pump.Drain(ctx); err != nil {
		return c.fail(PhaseDraining, dw.StatusErrorPump, err, cfg)
	}

	c.door.Unlock(ctx)

	result := dw.SuccessResult(program)
	if c.log != nil {
		c.log.Infow("wash_cycle_finished",
			"phase", string(PhaseDone),
			"program", program.String(),
			"fill_level", cfg.FillLevel().String(),
			"tablets_used", cfg.TabletsUsed(),
			"run_minutes", result.RunMinutes(),
		)
	}
	return result
}

// fail builds the failure result for status; err is only logged.
func (c *Controller) fail(phase Phase, status dw.Status, err error, cfg dw.ProgramConfiguration) dw.RunResult {
	result := dw.FailureResult(status)
	if c.log != nil {
		c.log.Warnw("wash_cycle_aborted",
			"phase", string(phase),
			"status", string(result.Status()),
			"program", cfg.Program().String(),
			"fill_level", cfg.FillLevel().String(),
			"err", err,
		)
	}
	return result
}

func (c *Controller) debugw(msg string, kv ...interface{}) {
	if c.log != nil {
		c.log.Debugw(msg, kv...)
	}
}
