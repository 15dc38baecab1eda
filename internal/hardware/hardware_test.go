package hardware

import (
	"context"
	"errors"
	"testing"
	"time"

	dw "controlling_dishwasher"
	"controlling_dishwasher/internal/washer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- Test doubles ----

type memStateRepo struct {
	state     dw.ApplianceState
	loadErr   error
	saveErr   error
	failSaves int
	saves     int
}

func (m *memStateRepo) Load(ctx context.Context) (dw.ApplianceState, error) {
	return m.state, m.loadErr
}

func (m *memStateRepo) Save(ctx context.Context, s dw.ApplianceState) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if m.failSaves > 0 {
		m.failSaves--
		return errors.New("write failed")
	}
	m.saves++
	m.state = s
	return nil
}

type memEventRepo struct {
	events    []dw.HardwareEvent
	appendErr error
}

func (m *memEventRepo) Append(ctx context.Context, e dw.HardwareEvent) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.events = append(m.events, e)
	return nil
}

func (m *memEventRepo) List(ctx context.Context, from, to time.Time, typ string) ([]dw.HardwareEvent, error) {
	return m.events, nil
}

func (m *memEventRepo) types() []string {
	out := make([]string, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e.Type)
	}
	return out
}

func newTestComponents() (*Components, *memStateRepo, *memEventRepo) {
	states := &memStateRepo{}
	events := &memEventRepo{}
	return NewComponents(NewBoard(states, events, nil)), states, events
}

func config(t *testing.T, p dw.WashingProgram, l dw.FillLevel) dw.ProgramConfiguration {
	t.Helper()
	cfg, err := dw.NewProgramConfiguration(p, l, true)
	require.NoError(t, err)
	return cfg
}

func controllerFor(c *Components) *washer.Controller {
	return washer.NewController(c.Pump, c.Engine, c.Filter, c.Door)
}

// ---- Tests ----

func TestSnapshot_BaselineWhenNothingPersisted(t *testing.T) {
	c, states, _ := newTestComponents()

	st, err := c.Board.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, st.ID)
	assert.False(t, st.DoorOpen)
	assert.False(t, st.DoorLocked)
	assert.Equal(t, FullFilterCapacity, st.FilterCapacity)
	assert.Zero(t, states.saves, "snapshot must not persist")
}

func TestController_SuccessfulRunOnSimulatedHardware(t *testing.T) {
	c, states, events := newTestComponents()

	got := controllerFor(c).Start(context.Background(), config(t, dw.ProgramEco, dw.FillHalf))

	assert.Equal(t, dw.SuccessResult(dw.ProgramEco), got)
	assert.False(t, states.state.DoorLocked)
	assert.Empty(t, states.state.WaterLevel)
	assert.Empty(t, states.state.ActiveProgram)
	assert.Equal(t, []string{EventDoor, EventPump, EventEngine, EventPump, EventDoor}, events.types())
}

func TestController_OpenDoorOnSimulatedHardware(t *testing.T) {
	c, states, events := newTestComponents()
	_, err := c.Door.Open(context.Background())
	require.NoError(t, err)
	events.events = nil

	got := controllerFor(c).Start(context.Background(), config(t, dw.ProgramQuick, dw.FillFull))

	assert.Equal(t, dw.FailureResult(dw.StatusDoorOpen), got)
	assert.False(t, states.state.DoorLocked)
	assert.Empty(t, events.events)
}

func TestController_DirtyFilterOnSimulatedHardware(t *testing.T) {
	c, _, _ := newTestComponents()
	_, err := c.Filter.SetCapacity(context.Background(), 40)
	require.NoError(t, err)

	got := controllerFor(c).Start(context.Background(), config(t, dw.ProgramQuick, dw.FillFull))
	assert.Equal(t, dw.StatusErrorFilter, got.Status())
}

func TestController_PumpFaultLeavesDoorLockedUntilReset(t *testing.T) {
	c, states, _ := newTestComponents()
	ctx := context.Background()
	_, err := c.Board.InjectFaults(ctx, Faults{Pump: true})
	require.NoError(t, err)

	got := controllerFor(c).Start(ctx, config(t, dw.ProgramIntensive, dw.FillFull))

	assert.Equal(t, dw.FailureResult(dw.StatusErrorPump), got)
	assert.True(t, states.state.DoorLocked)
	_, err = c.Door.Open(ctx)
	assert.ErrorIs(t, err, ErrDoorLocked)

	st, err := c.Board.Reset(ctx)
	require.NoError(t, err)
	assert.False(t, st.DoorLocked)
	assert.False(t, st.PumpFault)

	_, err = c.Door.Open(ctx)
	assert.NoError(t, err)
}

func TestController_DrainAndEngineFaults(t *testing.T) {
	ctx := context.Background()

	c, states, _ := newTestComponents()
	_, err := c.Board.InjectFaults(ctx, Faults{Drain: true})
	require.NoError(t, err)
	got := controllerFor(c).Start(ctx, config(t, dw.ProgramRinse, dw.FillHalf))
	assert.Equal(t, dw.StatusErrorPump, got.Status())
	assert.Equal(t, "HALF", states.state.WaterLevel, "water stays in the chamber")
	assert.Equal(t, "RINSE", states.state.ActiveProgram)

	c, states, _ = newTestComponents()
	_, err = c.Board.InjectFaults(ctx, Faults{Engine: true})
	require.NoError(t, err)
	got = controllerFor(c).Start(ctx, config(t, dw.ProgramNight, dw.FillFull))
	assert.Equal(t, dw.StatusErrorProgram, got.Status())
	assert.Equal(t, "FULL", states.state.WaterLevel)
	assert.True(t, states.state.DoorLocked)
}

func TestWaterPump_FaultWrapsSentinel(t *testing.T) {
	c, _, events := newTestComponents()
	ctx := context.Background()
	c.Door.Lock(ctx)
	_, err := c.Board.InjectFaults(ctx, Faults{Pump: true, Drain: true})
	require.NoError(t, err)

	assert.ErrorIs(t, c.Pump.Pour(ctx, dw.FillHalf), washer.ErrPumpFault)
	assert.ErrorIs(t, c.Pump.Drain(ctx), washer.ErrPumpFault)
	assert.Equal(t, []string{EventDoor, EventMaintenance, EventFault, EventFault}, events.types())
}

func TestWaterPump_RefusesToPourWithDoorUnlocked(t *testing.T) {
	c, states, events := newTestComponents()
	ctx := context.Background()

	assert.ErrorIs(t, c.Pump.Pour(ctx, dw.FillFull), washer.ErrPumpFault)
	assert.Empty(t, states.state.WaterLevel)
	assert.Equal(t, []string{EventFault}, events.types())
}

func TestController_LockWriteFailureStopsBeforePouring(t *testing.T) {
	c, states, _ := newTestComponents()
	states.failSaves = 1

	got := controllerFor(c).Start(context.Background(), config(t, dw.ProgramEco, dw.FillHalf))

	assert.Equal(t, dw.StatusErrorPump, got.Status())
	assert.False(t, states.state.DoorLocked)
	assert.Empty(t, states.state.WaterLevel)
}

func TestEngine_RejectsMalformedParams(t *testing.T) {
	c, _, _ := newTestComponents()
	ctx := context.Background()

	cases := map[string][]int{
		"too_few":           {0},
		"too_many":          {0, 90, 1},
		"unknown_ordinal":   {17, 90},
		"duration_mismatch": {int(dw.ProgramEco), 91},
	}
	for name, params := range cases {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, c.Engine.RunProgram(ctx, params), washer.ErrEngineFault)
		})
	}
	assert.NoError(t, c.Engine.RunProgram(ctx, []int{int(dw.ProgramEco), 90}))
}

func TestDirtFilter_SetCapacityValidatesRange(t *testing.T) {
	c, _, _ := newTestComponents()
	ctx := context.Background()

	_, err := c.Filter.SetCapacity(ctx, 101)
	assert.ErrorIs(t, err, ErrInvalidCapacity)
	_, err = c.Filter.SetCapacity(ctx, -1)
	assert.ErrorIs(t, err, ErrInvalidCapacity)

	st, err := c.Filter.SetCapacity(ctx, 60)
	require.NoError(t, err)
	assert.Equal(t, 60.0, st.FilterCapacity)
	assert.Equal(t, 60.0, c.Filter.Capacity(ctx))
}

func TestUnreadableState_FailsSafe(t *testing.T) {
	c, states, _ := newTestComponents()
	states.loadErr = errors.New("disk gone")
	ctx := context.Background()

	assert.False(t, c.Door.Closed(ctx), "unreadable door counts as open")
	assert.Zero(t, c.Filter.Capacity(ctx))

	got := controllerFor(c).Start(ctx, config(t, dw.ProgramEco, dw.FillHalf))
	assert.Equal(t, dw.StatusDoorOpen, got.Status())
}

func TestRecord_JournalFailureDoesNotFailHardware(t *testing.T) {
	c, states, events := newTestComponents()
	events.appendErr = errors.New("journal full")
	ctx := context.Background()

	c.Door.Lock(ctx)
	assert.NoError(t, c.Pump.Pour(ctx, dw.FillFull))
	assert.Equal(t, "FULL", states.state.WaterLevel)
}
