package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/guttosm/scoop-service/internal/domain/dto"
	"github.com/guttosm/scoop-service/internal/i18n"
)

// StartSessions handles POST /api/simulator/sessions requests.
//
// @Summary      Start simulated sessions
// @Description  Runs count scripted shopping sessions back to back with delay_ms between them. The body is optional.
// @Tags         Simulator
// @Accept       json
// @Produce      json
// @Param        request body dto.StartSessionsRequest false "Batch size and delay"
// @Success      202 {object} dto.SuccessResponse{data=dto.SimulatorStartResponse}
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      409 {object} dto.ErrorResponse "A session is already running"
// @Router       /api/simulator/sessions [post]
func (h *Handler) StartSessions(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var req dto.StartSessionsRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	count := req.SessionCount()
	log := zerolog.Ctx(c.Request.Context()).With().Int("count", count).Logger()
	started := h.sim.StartMultipleSessions(count, req.Delay(), func() {
		log.Info().Msg("Simulated sessions finished")
	})
	if !started {
		builder.Error(http.StatusConflict, i18n.ErrKeySimulatorRunning, nil)
		return
	}

	message := i18n.GetTranslator().Translate(i18n.SuccessKeySimulatorStarted, i18n.GetLocale(c))
	builder.SuccessAccepted(dto.SimulatorStartResponse{Started: true, Count: count, Message: message})
}

// StopSimulator handles DELETE /api/simulator requests.
//
// @Summary      Stop the simulator
// @Description  Abandons the running session and any queued ones. Stopping an idle simulator is a no-op.
// @Tags         Simulator
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=simulator.Stats}
// @Router       /api/simulator [delete]
func (h *Handler) StopSimulator(c *gin.Context) {
	h.sim.Stop()
	NewResponseBuilder(c).SuccessOK(h.sim.Stats())
}

// GetSimulator handles GET /api/simulator requests.
//
// @Summary      Simulator status
// @Tags         Simulator
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=simulator.Stats}
// @Router       /api/simulator [get]
func (h *Handler) GetSimulator(c *gin.Context) {
	NewResponseBuilder(c).SuccessOK(h.sim.Stats())
}
