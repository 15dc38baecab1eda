package service

import (
	"context"
	"sync"
	"time"

	dw "controlling_dishwasher"
	"controlling_dishwasher/internal/hardware"
	"controlling_dishwasher/internal/repository"
	"controlling_dishwasher/internal/washer"
)

// memStateRepo keeps the appliance row in memory.
type memStateRepo struct {
	mu    sync.Mutex
	state dw.ApplianceState
	err   error
}

func (m *memStateRepo) Load(ctx context.Context) (dw.ApplianceState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state, m.err
}

func (m *memStateRepo) Save(ctx context.Context, s dw.ApplianceState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.state = s
	return nil
}

// memEventRepo keeps the journal in memory and ignores filters.
type memEventRepo struct {
	mu     sync.Mutex
	events []dw.HardwareEvent
}

func (m *memEventRepo) Append(ctx context.Context, e dw.HardwareEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, e)
	return nil
}

func (m *memEventRepo) List(ctx context.Context, from, to time.Time, typ string) ([]dw.HardwareEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]dw.HardwareEvent(nil), m.events...), nil
}

type testRig struct {
	states *memStateRepo
	events *memEventRepo
	hw     *hardware.Components
	guard  *cycleGuard
}

func newTestRig() *testRig {
	states, events := &memStateRepo{}, &memEventRepo{}
	return &testRig{
		states: states,
		events: events,
		hw:     hardware.NewComponents(hardware.NewBoard(states, events, nil)),
		guard:  &cycleGuard{},
	}
}

func (r *testRig) dishwasher() *DishwasherService {
	c := washer.NewController(r.hw.Pump, r.hw.Engine, r.hw.Filter, r.hw.Door)
	return NewDishwasherService(c, r.guard, nil)
}

func (r *testRig) appliance() *ApplianceService {
	return NewApplianceService(r.hw, r.guard)
}

func (r *testRig) repos() *repository.Repository {
	return &repository.Repository{StateRepo: r.states, EventRepo: r.events, Auth: &mockAuthRepo{}}
}
