package route

import (
	"github.com/bassista/go_touchline/internal/api/controller"
	"github.com/bassista/go_touchline/internal/api/middleware"
	"github.com/bassista/go_touchline/internal/app"
	"github.com/gin-gonic/gin"
)

func NewModuleRouter(appCtx *app.App, group *gin.RouterGroup) {
	mc := controller.NewModuleController(appCtx.Account)
	timeoutMiddleware := middleware.RequestTimeout(appCtx.Config.Server.RequestTimeout)

	group.GET("", timeoutMiddleware, mc.AllModules)
	group.POST(":module/cache/invalidate", timeoutMiddleware, mc.InvalidateCache)
}
