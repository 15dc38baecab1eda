package handlers

import (
	"errors"
	"net/http"

	dw "controlling_dishwasher"
	"controlling_dishwasher/internal/hardware"
	"controlling_dishwasher/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	statusOK = "ok"

	errStartCycle      = "failed to start wash cycle"
	errGetState        = "failed to load state"
	errUpdateState     = "failed to update appliance"
	errInvalidBodyPref = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// applianceErrorCode maps appliance errors to HTTP status codes.
func applianceErrorCode(err error) (int, bool) {
	switch {
	case errors.Is(err, dw.ErrUnknownProgram), errors.Is(err, dw.ErrUnknownFillLevel),
		errors.Is(err, hardware.ErrInvalidCapacity):
		return http.StatusBadRequest, true
	case errors.Is(err, service.ErrCycleInProgress), errors.Is(err, hardware.ErrDoorLocked):
		return http.StatusConflict, true
	}
	return http.StatusInternalServerError, false
}

// respondApplianceError writes client errors verbatim and hides internal ones.
func (h *Handler) respondApplianceError(c *gin.Context, userMsg, logKey string, err error) {
	code, known := applianceErrorCode(err)
	if known {
		if h.log != nil {
			h.log.Infow(logKey, "err", err)
		}
		c.JSON(code, gin.H{"error": err.Error()})
		return
	}
	h.logAndJSONError(c, code, userMsg, logKey, err)
}

// StartRequest is the payload of POST /api/v1/dishwasher/start.
type StartRequest struct {
	// Program name. Allowed: ECO, INTENSIVE, NIGHT, RINSE, QUICK
	Program string `json:"program" binding:"required" example:"ECO"`
	// Fill level. Allowed: HALF, FULL
	FillLevel   string `json:"fill_level" binding:"required" example:"HALF"`
	TabletsUsed bool   `json:"tablets_used" example:"true"`
}

// FilterRequest is the payload of PUT /api/v1/dishwasher/filter.
type FilterRequest struct {
	// Filter sensor reading, 0..100
	Capacity *float64 `json:"capacity" binding:"required" example:"60"`
}

// FaultsRequest arms simulated hardware failures.
type FaultsRequest struct {
	Pump   bool `json:"pump"`
	Drain  bool `json:"drain"`
	Engine bool `json:"engine"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Start wash cycle
// @Description  Runs one cycle synchronously. Hardware problems are reported in result.status, not as HTTP errors.
// @Tags         dishwasher
// @Accept       json
// @Produce      json
// @Param        body  body   StartRequest  true  "Program configuration"
// @Success      200   {object}  map[string]interface{}  "result, state"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/dishwasher/start [post]
// @Security     BearerAuth
func (h *Handler) startCycle(c *gin.Context) {
	var req StartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	ctx := c.Request.Context()
	res, err := h.services.Dishwasher.Start(ctx, service.StartParams{
		Program:     req.Program,
		FillLevel:   req.FillLevel,
		TabletsUsed: req.TabletsUsed,
	})
	if err != nil {
		h.respondApplianceError(c, errStartCycle, "dishwasher_start_failed", err)
		return
	}
	if h.log != nil {
		h.log.Infow("dishwasher_cycle_completed",
			"operator_id", operatorID(c),
			"program", req.Program,
			"status", string(res.Status()),
		)
	}

	resp := gin.H{"result": res}
	if st, err := h.services.Appliance.GetState(ctx); err == nil {
		resp["state"] = st
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary      Get appliance state
// @Tags         dishwasher
// @Produce      json
// @Success      200  {object}  controlling_dishwasher.ApplianceState
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/dishwasher/state [get]
// @Security     BearerAuth
func (h *Handler) getState(c *gin.Context) {
	st, err := h.services.Appliance.GetState(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetState, "dishwasher_get_state_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Open door
// @Description  Refused with 409 while the door is locked.
// @Tags         dishwasher
// @Produce      json
// @Success      200  {object}  controlling_dishwasher.ApplianceState
// @Failure      401  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/dishwasher/door/open [post]
// @Security     BearerAuth
func (h *Handler) openDoor(c *gin.Context) {
	st, err := h.services.Appliance.OpenDoor(c.Request.Context())
	if err != nil {
		h.respondApplianceError(c, errUpdateState, "dishwasher_open_door_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Close door
// @Tags         dishwasher
// @Produce      json
// @Success      200  {object}  controlling_dishwasher.ApplianceState
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/dishwasher/door/close [post]
// @Security     BearerAuth
func (h *Handler) closeDoor(c *gin.Context) {
	st, err := h.services.Appliance.CloseDoor(c.Request.Context())
	if err != nil {
		h.respondApplianceError(c, errUpdateState, "dishwasher_close_door_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Set filter capacity
// @Tags         dishwasher
// @Accept       json
// @Produce      json
// @Param        body  body   FilterRequest  true  "Filter reading"
// @Success      200   {object}  controlling_dishwasher.ApplianceState
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/dishwasher/filter [put]
// @Security     BearerAuth
func (h *Handler) setFilter(c *gin.Context) {
	var req FilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	st, err := h.services.Appliance.SetFilterCapacity(c.Request.Context(), *req.Capacity)
	if err != nil {
		h.respondApplianceError(c, errUpdateState, "dishwasher_set_filter_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Inject hardware faults
// @Description  Arms or disarms simulated pump, drain and engine failures.
// @Tags         maintenance
// @Accept       json
// @Produce      json
// @Param        body  body   FaultsRequest  true  "Faults to arm"
// @Success      200   {object}  controlling_dishwasher.ApplianceState
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/dishwasher/faults [post]
// @Security     BearerAuth
func (h *Handler) injectFaults(c *gin.Context) {
	var req FaultsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	st, err := h.services.Appliance.InjectFaults(c.Request.Context(), service.FaultParams{
		Pump:   req.Pump,
		Drain:  req.Drain,
		Engine: req.Engine,
	})
	if err != nil {
		h.respondApplianceError(c, errUpdateState, "dishwasher_inject_faults_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Reset appliance
// @Description  Clears faults, drains the chamber and releases the door lock.
// @Tags         maintenance
// @Produce      json
// @Success      200  {object}  controlling_dishwasher.ApplianceState
// @Failure      401  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/dishwasher/reset [post]
// @Security     BearerAuth
func (h *Handler) reset(c *gin.Context) {
	st, err := h.services.Appliance.Reset(c.Request.Context())
	if err != nil {
		h.respondApplianceError(c, errUpdateState, "dishwasher_reset_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      List washing programs
// @Tags         programs
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "programs, fill_levels"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/programs [get]
// @Security     BearerAuth
func (h *Handler) listPrograms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"programs":    h.services.Programs.List(),
		"fill_levels": h.services.Programs.FillLevels(),
	})
}
