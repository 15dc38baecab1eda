package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	dw "controlling_dishwasher"
	"controlling_dishwasher/internal/logger"
	"controlling_dishwasher/internal/washer"
)

// ErrCycleInProgress is returned when another cycle or maintenance action holds the appliance.
var ErrCycleInProgress = errors.New("a wash cycle is already in progress")

// cycleGuard serializes wash cycles and the maintenance actions that must not
// interleave with them. Contenders fail fast instead of queueing.
type cycleGuard struct {
	mu sync.Mutex
}

func (g *cycleGuard) acquire() error {
	if !g.mu.TryLock() {
		return ErrCycleInProgress
	}
	return nil
}

func (g *cycleGuard) release() { g.mu.Unlock() }

type DishwasherService struct {
	controller *washer.Controller
	guard      *cycleGuard
	log        *logger.Logger
}

func NewDishwasherService(controller *washer.Controller, guard *cycleGuard, log *logger.Logger) *DishwasherService {
	if guard == nil {
		guard = &cycleGuard{}
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &DishwasherService{controller: controller, guard: guard, log: log}
}

// Start validates p and runs one cycle. Hardware outcomes are reported in the
// RunResult; the error is reserved for bad input and ErrCycleInProgress.
func (s *DishwasherService) Start(ctx context.Context, p StartParams) (dw.RunResult, error) {
	cfg, err := toProgramConfiguration(p)
	if err != nil {
		return dw.RunResult{}, err
	}

	if err := s.guard.acquire(); err != nil {
		s.log.Warnw("start_rejected", "program", cfg.Program().String(), "err", err)
		return dw.RunResult{}, err
	}
	defer s.guard.release()

	s.log.Infow("start_requested",
		"program", cfg.Program().String(),
		"fill_level", cfg.FillLevel().String(),
		"tablets_used", cfg.TabletsUsed(),
	)
	return s.controller.Start(ctx, cfg), nil
}

func toProgramConfiguration(p StartParams) (dw.ProgramConfiguration, error) {
	program, err := dw.ParseWashingProgram(p.Program)
	if err != nil {
		return dw.ProgramConfiguration{}, err
	}
	level, err := dw.ParseFillLevel(p.FillLevel)
	if err != nil {
		return dw.ProgramConfiguration{}, err
	}
	cfg, err := dw.NewProgramConfiguration(program, level, p.TabletsUsed)
	if err != nil {
		return dw.ProgramConfiguration{}, fmt.Errorf("build program configuration: %w", err)
	}
	return cfg, nil
}
