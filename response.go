package controlling_dishwasher

import (
	"encoding/json"
	"time"
)

// Status is the terminal outcome of one wash attempt.
type Status string

const (
	StatusSuccess      Status = "SUCCESS"
	StatusDoorOpen     Status = "DOOR_OPEN"
	StatusErrorFilter  Status = "ERROR_FILTER"
	StatusErrorPump    Status = "ERROR_PUMP"
	StatusErrorProgram Status = "ERROR_PROGRAM"
)

// RunResult is the single outcome value of one wash attempt.
// RunMinutes is the program duration on success and 0 otherwise.
type RunResult struct {
	status     Status
	runMinutes int
}

// SuccessResult reports a completed run of p.
func SuccessResult(p WashingProgram) RunResult {
	return RunResult{status: StatusSuccess, runMinutes: p.TimeInMinutes()}
}

// FailureResult reports a run that stopped with s.
func FailureResult(s Status) RunResult {
	return RunResult{status: s}
}

func (r RunResult) Status() Status { return r.status }
func (r RunResult) RunMinutes() int { return r.runMinutes }
func (r RunResult) Succeeded() bool { return r.status == StatusSuccess }

type runResultJSON struct {
	Status     Status `json:"status"`
	RunMinutes int    `json:"run_minutes"`
}

func (r RunResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(runResultJSON{Status: r.status, RunMinutes: r.runMinutes})
}

func (r *RunResult) UnmarshalJSON(b []byte) error {
	var v runResultJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*r = RunResult{status: v.Status, runMinutes: v.RunMinutes}
	return nil
}

// ApplianceState is the current snapshot of the simulated dishwasher hardware.
type ApplianceState struct {
	ID             int       `json:"id"`
	DoorOpen       bool      `json:"door_open"`
	DoorLocked     bool      `json:"door_locked"`
	FilterCapacity float64   `json:"filter_capacity"`       // 0..100
	WaterLevel     string    `json:"water_level,omitempty"` // HALF | FULL, empty when drained
	PumpFault      bool      `json:"pump_fault"`
	DrainFault     bool      `json:"drain_fault"`
	EngineFault    bool      `json:"engine_fault"`
	ActiveProgram  string    `json:"active_program,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// HardwareEvent is a single hardware journal entry.
type HardwareEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // DOOR | FILTER | PUMP | ENGINE | FAULT | MAINTENANCE
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}

type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // don’t expose hash
}
