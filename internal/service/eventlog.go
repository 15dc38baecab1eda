package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	dw "controlling_dishwasher"
	"controlling_dishwasher/internal/hardware"
	"controlling_dishwasher/internal/repository"
)

var (
	// ErrInvalidTimeRange is returned when From is after To.
	ErrInvalidTimeRange = errors.New("invalid time range: from must be <= to")
	// ErrUnknownEventType is returned for a type filter that names no journal category.
	ErrUnknownEventType = errors.New("unknown event type")
)

// journalTypes are the categories the hardware layer writes to the journal.
var journalTypes = map[string]struct{}{
	hardware.EventDoor:        {},
	hardware.EventFilter:      {},
	hardware.EventPump:        {},
	hardware.EventEngine:      {},
	hardware.EventFault:       {},
	hardware.EventMaintenance: {},
}

// JournalTypes lists the accepted type filters.
func JournalTypes() []string {
	return []string{
		hardware.EventDoor, hardware.EventFilter, hardware.EventPump,
		hardware.EventEngine, hardware.EventFault, hardware.EventMaintenance,
	}
}

type EventLogService struct {
	eventRepo repository.EventRepo
}

func NewEventLogService(eventRepo repository.EventRepo) *EventLogService {
	return &EventLogService{eventRepo: eventRepo}
}

func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// journalQuery is a validated LogFilter: bounds in UTC and a known category
// or "" for all of them.
type journalQuery struct {
	from, to time.Time
	category string
}

func newJournalQuery(f LogFilter) (journalQuery, error) {
	q := journalQuery{
		from:     normalizeToUTC(f.From),
		to:       normalizeToUTC(f.To),
		category: strings.ToUpper(strings.TrimSpace(f.Type)),
	}
	if !q.from.IsZero() && !q.to.IsZero() && q.from.After(q.to) {
		return journalQuery{}, ErrInvalidTimeRange
	}
	if q.category != "" {
		if _, ok := journalTypes[q.category]; !ok {
			return journalQuery{}, fmt.Errorf("%w %q", ErrUnknownEventType, f.Type)
		}
	}
	return q, nil
}

// List returns journal entries matching f, oldest first.
func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]dw.HardwareEvent, error) {
	q, err := newJournalQuery(f)
	if err != nil {
		return nil, err
	}
	return s.eventRepo.List(ctx, q.from, q.to, q.category)
}
