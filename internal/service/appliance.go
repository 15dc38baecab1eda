package service

import (
	"context"

	dw "controlling_dishwasher"
	"controlling_dishwasher/internal/hardware"
)

type ApplianceService struct {
	hw    *hardware.Components
	guard *cycleGuard
}

func NewApplianceService(hw *hardware.Components, guard *cycleGuard) *ApplianceService {
	if guard == nil {
		guard = &cycleGuard{}
	}
	return &ApplianceService{hw: hw, guard: guard}
}

// GetState returns the persisted appliance state, or the factory baseline
// when nothing is stored yet.
func (s *ApplianceService) GetState(ctx context.Context) (dw.ApplianceState, error) {
	state, err := s.hw.Board.Snapshot(ctx)
	if err != nil {
		return dw.ApplianceState{}, err
	}
	state.UpdatedAt = normalizeToUTC(state.UpdatedAt)
	return state, nil
}

// exclusive runs fn while holding the cycle guard, so no wash cycle can
// observe the appliance between its checks and its lock.
func (s *ApplianceService) exclusive(fn func() (dw.ApplianceState, error)) (dw.ApplianceState, error) {
	if err := s.guard.acquire(); err != nil {
		return dw.ApplianceState{}, err
	}
	defer s.guard.release()
	return fn()
}

// OpenDoor fails with hardware.ErrDoorLocked while the lock is engaged and
// with ErrCycleInProgress while a cycle runs.
func (s *ApplianceService) OpenDoor(ctx context.Context) (dw.ApplianceState, error) {
	return s.exclusive(func() (dw.ApplianceState, error) { return s.hw.Door.Open(ctx) })
}

func (s *ApplianceService) CloseDoor(ctx context.Context) (dw.ApplianceState, error) {
	return s.exclusive(func() (dw.ApplianceState, error) { return s.hw.Door.Close(ctx) })
}

// SetFilterCapacity fails with hardware.ErrInvalidCapacity outside [0, 100].
func (s *ApplianceService) SetFilterCapacity(ctx context.Context, capacity float64) (dw.ApplianceState, error) {
	return s.exclusive(func() (dw.ApplianceState, error) { return s.hw.Filter.SetCapacity(ctx, capacity) })
}

func (s *ApplianceService) InjectFaults(ctx context.Context, p FaultParams) (dw.ApplianceState, error) {
	return s.exclusive(func() (dw.ApplianceState, error) {
		return s.hw.Board.InjectFaults(ctx, hardware.Faults{Pump: p.Pump, Drain: p.Drain, Engine: p.Engine})
	})
}

// Reset clears faults, drains and unlocks the door. It is refused while a
// cycle is running.
func (s *ApplianceService) Reset(ctx context.Context) (dw.ApplianceState, error) {
	return s.exclusive(func() (dw.ApplianceState, error) { return s.hw.Board.Reset(ctx) })
}
