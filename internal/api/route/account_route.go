package route

import (
	"github.com/bassista/go_touchline/internal/api/controller"
	"github.com/bassista/go_touchline/internal/api/middleware"
	"github.com/bassista/go_touchline/internal/app"
	"github.com/gin-gonic/gin"
)

func NewAccountRouter(appCtx *app.App, group *gin.RouterGroup) {
	ac := controller.NewAccountController(appCtx.Account)
	timeoutMiddleware := middleware.RequestTimeout(appCtx.Config.Server.RequestTimeout)

	group.GET("account", timeoutMiddleware, ac.GetAccount)
}
