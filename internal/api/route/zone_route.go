package route

import (
	"github.com/bassista/go_touchline/internal/api/controller"
	"github.com/bassista/go_touchline/internal/api/middleware"
	"github.com/bassista/go_touchline/internal/app"
	"github.com/gin-gonic/gin"
)

func NewZoneRouter(appCtx *app.App, group *gin.RouterGroup) {
	zc := controller.NewZoneController(appCtx.Account)
	timeoutMiddleware := middleware.RequestTimeout(appCtx.Config.Server.RequestTimeout)

	group.GET(":module/zones", timeoutMiddleware, zc.AllZones)
	group.GET(":module/zones/:zone", timeoutMiddleware, zc.GetZone)
	group.POST(":module/zones/:zone/temperature", timeoutMiddleware, zc.SetTemperature)
	group.POST(":module/zones/:zone/schedule", timeoutMiddleware, zc.SetSchedule)
}
