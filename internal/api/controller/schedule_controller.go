package controller

import (
	"fmt"
	"net/http"

	"github.com/bassista/go_touchline/internal/touchline"
	"github.com/gin-gonic/gin"
)

type scheduleURI struct {
	Schedule int `uri:"schedule" binding:"min=0"`
}

type schedulesQuery struct {
	Refresh bool   `form:"refresh"`
	Name    string `form:"name"`
	Index   *int   `form:"index"`
}

// ScheduleController exposes the global schedules of a module.
type ScheduleController struct {
	account AccountService
}

func NewScheduleController(account AccountService) *ScheduleController {
	return &ScheduleController{account: account}
}

// AllSchedules handles GET /api/modules/:module/schedules. The name and index
// filters each return at most one schedule; name wins when both are given.
func (sc *ScheduleController) AllSchedules(c *gin.Context) {
	var q schedulesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "schedule-controller", err)
		return
	}
	m, ok := resolveModule(c, sc.account, "schedule-controller")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	opts := readOptions(q.Refresh)

	var (
		single *touchline.Schedule
		found  bool
		err    error
	)
	switch {
	case q.Name != "":
		single, found, err = m.ScheduleByName(ctx, q.Name, opts...)
	case q.Index != nil:
		single, found, err = m.ScheduleByIndex(ctx, *q.Index, opts...)
	default:
		all, err := m.Schedules(ctx, opts...)
		if err != nil {
			respondError(c, "schedule-controller", err)
			return
		}
		out := make([]ScheduleResponse, 0, len(all))
		for _, s := range all {
			out = append(out, newScheduleResponse(s))
		}
		c.JSON(http.StatusOK, out)
		return
	}

	if err != nil {
		respondError(c, "schedule-controller", err)
		return
	}
	out := []ScheduleResponse{}
	if found {
		out = append(out, newScheduleResponse(single))
	}
	c.JSON(http.StatusOK, out)
}

// GetSchedule handles GET /api/modules/:module/schedules/:schedule, looked up by identifier.
func (sc *ScheduleController) GetSchedule(c *gin.Context) {
	var uri scheduleURI
	if err := c.ShouldBindUri(&uri); err != nil {
		badRequest(c, "schedule-controller", err)
		return
	}
	var q refreshQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "schedule-controller", err)
		return
	}
	m, ok := resolveModule(c, sc.account, "schedule-controller")
	if !ok {
		return
	}

	s, found, err := m.Schedule(c.Request.Context(), uri.Schedule, readOptions(q.Refresh)...)
	if err != nil {
		respondError(c, "schedule-controller", err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("schedule %d not found", uri.Schedule)})
		return
	}
	c.JSON(http.StatusOK, newScheduleResponse(s))
}
