package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/scoop-service/internal/domain/dto"
	"github.com/guttosm/scoop-service/internal/domain/model"
	"github.com/guttosm/scoop-service/internal/i18n"
)

const (
	defaultEventsLimit = 50
	maxEventsLimit     = 500
)

// ListEvents handles GET /api/events requests.
//
// @Summary      Query the journal
// @Description  Returns journaled requests, checkout attempts and simulator sessions, newest first.
// @Tags         Journal
// @Produce      json
// @Param        kind query string false "Event kind, e.g. checkout.succeeded"
// @Param        order_id query string false "Order id"
// @Param        request_id query string false "Request id"
// @Param        limit query int false "Page size (max 500)" default(50)
// @Param        skip query int false "Events to skip"
// @Success      200 {object} dto.SuccessResponse{data=dto.EventsResponse}
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid paging"
// @Failure      503 {object} dto.ErrorResponse "Journal unavailable"
// @Router       /api/events [get]
func (h *Handler) ListEvents(c *gin.Context) {
	builder := NewResponseBuilder(c)

	limit, err := queryInt(c, "limit", defaultEventsLimit)
	if err != nil || limit <= 0 || limit > maxEventsLimit {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		return
	}
	skip, err := queryInt(c, "skip", 0)
	if err != nil || skip < 0 {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		return
	}

	opts := model.EventQueryOptions{
		Kind:      c.Query("kind"),
		OrderID:   c.Query("order_id"),
		RequestID: c.Query("request_id"),
		Limit:     limit,
		Skip:      skip,
	}

	ctx := c.Request.Context()
	events, err := h.journal.Query(ctx, opts)
	if err != nil {
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyInternalError, err)
		return
	}
	total, err := h.journal.Count(ctx, opts)
	if err != nil {
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyInternalError, err)
		return
	}

	builder.SuccessOK(dto.EventsResponse{Events: events, Total: total})
}

func queryInt(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
