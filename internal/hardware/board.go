package hardware

import (
	"context"
	"fmt"
	"sync"
	"time"

	dw "controlling_dishwasher"
	"controlling_dishwasher/internal/logger"
	"controlling_dishwasher/internal/repository"

	"github.com/google/uuid"
)

// Journal event types.
const (
	EventDoor        = "DOOR"
	EventFilter      = "FILTER"
	EventPump        = "PUMP"
	EventEngine      = "ENGINE"
	EventFault       = "FAULT"
	EventMaintenance = "MAINTENANCE"
)

// FullFilterCapacity is the reading of a freshly cleaned filter.
const FullFilterCapacity = 100.0

// Board is the simulated control board: the persisted appliance state plus the
// hardware journal. All simulated components share one Board.
type Board struct {
	mu        sync.Mutex
	stateRepo repository.StateRepo
	eventRepo repository.EventRepo
	log       *logger.Logger
	now       func() time.Time
}

func NewBoard(stateRepo repository.StateRepo, eventRepo repository.EventRepo, log *logger.Logger) *Board {
	if log == nil {
		log = logger.NewNop()
	}
	return &Board{
		stateRepo: stateRepo,
		eventRepo: eventRepo,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// BaselineState is the appliance as delivered: door closed and unlocked,
// clean filter, no water, no faults.
func BaselineState(now time.Time) dw.ApplianceState {
	return dw.ApplianceState{
		ID:             1,
		FilterCapacity: FullFilterCapacity,
		UpdatedAt:      now,
	}
}

// Snapshot returns the persisted state, or the baseline when nothing is stored.
func (b *Board) Snapshot(ctx context.Context) (dw.ApplianceState, error) {
	st, err := b.stateRepo.Load(ctx)
	if err != nil {
		return dw.ApplianceState{}, fmt.Errorf("load appliance state: %w", err)
	}
	if st.ID == 0 {
		return BaselineState(b.now()), nil
	}
	return st, nil
}

// Update applies fn to the current state and saves the result. When fn
// returns an error nothing is saved.
func (b *Board) Update(ctx context.Context, fn func(st *dw.ApplianceState) error) (dw.ApplianceState, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	st, err := b.Snapshot(ctx)
	if err != nil {
		return dw.ApplianceState{}, err
	}
	if err := fn(&st); err != nil {
		return st, err
	}
	st.ID = 1
	st.UpdatedAt = b.now()
	if err := b.stateRepo.Save(ctx, st); err != nil {
		return dw.ApplianceState{}, fmt.Errorf("save appliance state: %w", err)
	}
	return st, nil
}

// Record appends a journal entry. Journal failures are logged, not returned.
func (b *Board) Record(ctx context.Context, typ, description string, meta map[string]any) {
	ev := dw.HardwareEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  b.now(),
		Type:        typ,
		Description: description,
	}
	if len(meta) > 0 {
		ev.Metadata = meta
	}
	if err := b.eventRepo.Append(ctx, ev); err != nil {
		b.log.Errorw("hardware_journal_append_failed", "type", typ, "err", err)
	}
}
