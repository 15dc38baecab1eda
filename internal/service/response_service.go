package service

import "time"

// StartParams names the program and fill level of a run; both are parsed
// case-insensitively.
type StartParams struct {
	Program     string // ECO | INTENSIVE | NIGHT | RINSE | QUICK
	FillLevel   string // HALF | FULL
	TabletsUsed bool
}

// FaultParams arms simulated hardware failures.
type FaultParams struct {
	Pump   bool
	Drain  bool
	Engine bool
}

// ProgramInfo describes one entry of the program catalogue.
type ProgramInfo struct {
	Name    string `json:"name"`
	Ordinal int    `json:"ordinal"`
	Minutes int    `json:"minutes"`
}

// LogFilter supports journal filtering by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "DOOR", "FILTER", "PUMP", "ENGINE", "FAULT", "MAINTENANCE"
}
