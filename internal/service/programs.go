package service

import dw "controlling_dishwasher"

type ProgramsService struct{}

func NewProgramsService() *ProgramsService { return &ProgramsService{} }

// List returns every washing program in ordinal order.
func (s *ProgramsService) List() []ProgramInfo {
	programs := dw.WashingPrograms()
	out := make([]ProgramInfo, 0, len(programs))
	for _, p := range programs {
		out = append(out, ProgramInfo{Name: p.String(), Ordinal: p.Ordinal(), Minutes: p.TimeInMinutes()})
	}
	return out
}

// FillLevels returns the fill level names in declaration order.
func (s *ProgramsService) FillLevels() []string {
	levels := dw.FillLevels()
	out := make([]string, 0, len(levels))
	for _, l := range levels {
		out = append(out, l.String())
	}
	return out
}
