package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	dw "controlling_dishwasher"
	"controlling_dishwasher/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(ctx context.Context, username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(ctx context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockDishwasher struct {
	result     dw.RunResult
	err        error
	lastParams service.StartParams
	calls      int
}

func (m *mockDishwasher) Start(ctx context.Context, p service.StartParams) (dw.RunResult, error) {
	m.calls++
	m.lastParams = p
	return m.result, m.err
}

type mockAppliance struct {
	mu       sync.Mutex
	state    dw.ApplianceState
	err      error // GetState
	errAfter int   // GetState fails with err only after this many successful calls
	getCalls int
	mutErr   error // every mutating call
	calls    []string
	capacity float64
	faults   service.FaultParams
}

func (m *mockAppliance) GetState(ctx context.Context) (dw.ApplianceState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	if m.err != nil && m.getCalls > m.errAfter {
		return dw.ApplianceState{}, m.err
	}
	return m.state, nil
}

func (m *mockAppliance) mutate(name string) (dw.ApplianceState, error) {
	m.calls = append(m.calls, name)
	if m.mutErr != nil {
		return dw.ApplianceState{}, m.mutErr
	}
	return m.state, nil
}

func (m *mockAppliance) OpenDoor(ctx context.Context) (dw.ApplianceState, error) {
	return m.mutate("open")
}
func (m *mockAppliance) CloseDoor(ctx context.Context) (dw.ApplianceState, error) {
	return m.mutate("close")
}
func (m *mockAppliance) SetFilterCapacity(ctx context.Context, capacity float64) (dw.ApplianceState, error) {
	m.capacity = capacity
	return m.mutate("filter")
}
func (m *mockAppliance) InjectFaults(ctx context.Context, p service.FaultParams) (dw.ApplianceState, error) {
	m.faults = p
	return m.mutate("faults")
}
func (m *mockAppliance) Reset(ctx context.Context) (dw.ApplianceState, error) {
	return m.mutate("reset")
}

type mockEventLog struct {
	resp     []dw.HardwareEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]dw.HardwareEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
