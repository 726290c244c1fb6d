package route

import (
	"github.com/bassista/go_touchline/internal/api/controller"
	"github.com/bassista/go_touchline/internal/api/middleware"
	"github.com/bassista/go_touchline/internal/app"
	"github.com/gin-gonic/gin"
)

func NewScheduleRouter(appCtx *app.App, group *gin.RouterGroup) {
	sc := controller.NewScheduleController(appCtx.Account)
	timeoutMiddleware := middleware.RequestTimeout(appCtx.Config.Server.RequestTimeout)

	group.GET(":module/schedules", timeoutMiddleware, sc.AllSchedules)
	group.GET(":module/schedules/:schedule", timeoutMiddleware, sc.GetSchedule)
}
