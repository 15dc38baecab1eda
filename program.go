package controlling_dishwasher

import (
	"errors"
	"fmt"
	"strings"
)

// WashingProgram identifies a wash cycle. Its numeric value is the ordinal
// handed to the engine.
type WashingProgram int

const (
	ProgramEco WashingProgram = iota
	ProgramIntensive
	ProgramNight
	ProgramRinse
	ProgramQuick
)

var programTable = []struct {
	name    string
	minutes int
}{
	ProgramEco:       {"ECO", 90},
	ProgramIntensive: {"INTENSIVE", 120},
	ProgramNight:     {"NIGHT", 180},
	ProgramRinse:     {"RINSE", 15},
	ProgramQuick:     {"QUICK", 30},
}

var (
	ErrUnknownProgram   = errors.New("unknown washing program")
	ErrUnknownFillLevel = errors.New("unknown fill level")
)

// WashingPrograms returns all programs in ordinal order.
func WashingPrograms() []WashingProgram {
	out := make([]WashingProgram, len(programTable))
	for i := range programTable {
		out[i] = WashingProgram(i)
	}
	return out
}

func (p WashingProgram) Valid() bool {
	return p >= 0 && int(p) < len(programTable)
}

func (p WashingProgram) Ordinal() int { return int(p) }

// TimeInMinutes is the fixed duration of the program, 0 for an invalid value.
func (p WashingProgram) TimeInMinutes() int {
	if !p.Valid() {
		return 0
	}
	return programTable[p].minutes
}

func (p WashingProgram) String() string {
	if !p.Valid() {
		return fmt.Sprintf("WashingProgram(%d)", int(p))
	}
	return programTable[p].name
}

func (p WashingProgram) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownProgram, int(p))
	}
	return []byte(p.String()), nil
}

func (p *WashingProgram) UnmarshalText(b []byte) error {
	v, err := ParseWashingProgram(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// ParseWashingProgram resolves a program by name, ignoring case and surrounding spaces.
func ParseWashingProgram(s string) (WashingProgram, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for i, entry := range programTable {
		if entry.name == name {
			return WashingProgram(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownProgram, s)
}

// FillLevel is the water quantity the pump pours.
type FillLevel int

const (
	FillHalf FillLevel = iota
	FillFull
)

var fillLevelNames = []string{
	FillHalf: "HALF",
	FillFull: "FULL",
}

// FillLevels returns all fill levels in declaration order.
func FillLevels() []FillLevel {
	return []FillLevel{FillHalf, FillFull}
}

func (l FillLevel) Valid() bool {
	return l >= 0 && int(l) < len(fillLevelNames)
}

func (l FillLevel) String() string {
	if !l.Valid() {
		return fmt.Sprintf("FillLevel(%d)", int(l))
	}
	return fillLevelNames[l]
}

func (l FillLevel) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFillLevel, int(l))
	}
	return []byte(l.String()), nil
}

func (l *FillLevel) UnmarshalText(b []byte) error {
	v, err := ParseFillLevel(string(b))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// ParseFillLevel resolves a fill level by name, ignoring case and surrounding spaces.
func ParseFillLevel(s string) (FillLevel, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for i, n := range fillLevelNames {
		if n == name {
			return FillLevel(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFillLevel, s)
}

// ProgramConfiguration is the immutable input of a single wash run.
type ProgramConfiguration struct {
	program     WashingProgram
	fillLevel   FillLevel
	tabletsUsed bool
}

// NewProgramConfiguration validates program and fill level.
// tabletsUsed is carried along unchanged; nothing in the run sequence reads it.
func NewProgramConfiguration(program WashingProgram, fillLevel FillLevel, tabletsUsed bool) (ProgramConfiguration, error) {
	if !program.Valid() {
		return ProgramConfiguration{}, fmt.Errorf("%w: %d", ErrUnknownProgram, int(program))
	}
	if !fillLevel.Valid() {
		return ProgramConfiguration{}, fmt.Errorf("%w: %d", ErrUnknownFillLevel, int(fillLevel))
	}
	return ProgramConfiguration{
		program:     program,
		fillLevel:   fillLevel,
		tabletsUsed: tabletsUsed,
	}, nil
}

func (c ProgramConfiguration) Program() WashingProgram { return c.program }
func (c ProgramConfiguration) FillLevel() FillLevel { return c.fillLevel }
func (c ProgramConfiguration) TabletsUsed() bool { return c.tabletsUsed }
