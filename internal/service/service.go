package service

import (
	"context"
	"time"

	dw "controlling_dishwasher"
	"controlling_dishwasher/internal/hardware"
	"controlling_dishwasher/internal/logger"
	"controlling_dishwasher/internal/repository"
	"controlling_dishwasher/internal/washer"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Dishwasher starts wash cycles.
type Dishwasher interface {
	Start(ctx context.Context, p StartParams) (dw.RunResult, error)
}

// Appliance exposes the simulated hardware: state, door, filter, faults and reset.
type Appliance interface {
	GetState(ctx context.Context) (dw.ApplianceState, error)
	OpenDoor(ctx context.Context) (dw.ApplianceState, error)
	CloseDoor(ctx context.Context) (dw.ApplianceState, error)
	SetFilterCapacity(ctx context.Context, capacity float64) (dw.ApplianceState, error)
	InjectFaults(ctx context.Context, p FaultParams) (dw.ApplianceState, error)
	Reset(ctx context.Context) (dw.ApplianceState, error)
}

// Programs lists the washing program catalogue.
type Programs interface {
	List() []ProgramInfo
	FillLevels() []string
}

// EventLog exposes the hardware journal with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]dw.HardwareEvent, error)
}

type Service struct {
	Dishwasher
	Appliance
	Programs
	EventLog
	Authorization
}

// Options carries the settings the services need from configuration.
type Options struct {
	SigningKey      string
	TokenTTL        time.Duration
	FilterThreshold float64
}

// NewService wires the repositories into the simulated hardware and the
// wash-cycle controller. All services share one Board and one cycle guard.
func NewService(repos *repository.Repository, opts Options, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	board := hardware.NewBoard(repos.StateRepo, repos.EventRepo, log.Named("hardware"))
	hw := hardware.NewComponents(board)
	controller := washer.NewController(hw.Pump, hw.Engine, hw.Filter, hw.Door,
		washer.WithFilterThreshold(opts.FilterThreshold),
		washer.WithLogger(log.Named("washer")),
	)
	guard := &cycleGuard{}

	return &Service{
		Dishwasher:    NewDishwasherService(controller, guard, log.Named("dishwasher")),
		Appliance:     NewApplianceService(hw, guard),
		Programs:      NewProgramsService(),
		EventLog:      NewEventLogService(repos.EventRepo),
		Authorization: NewAuthService(repos.Auth, opts.SigningKey, opts.TokenTTL),
	}
}
