package controller

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bassista/go_touchline/internal/logger"
	"github.com/bassista/go_touchline/internal/touchline"
	"github.com/gin-gonic/gin"
)

// AccountService is what the controllers need from the account.
type AccountService interface {
	Modules(ctx context.Context, refresh bool) ([]*touchline.Module, error)
	Module(ctx context.Context, id string, refresh bool) (*touchline.Module, bool, error)
}

type refreshQuery struct {
	Refresh bool `form:"refresh"`
}

// ModuleController handles module listing and cache control.
type ModuleController struct {
	account AccountService
}

func NewModuleController(account AccountService) *ModuleController {
	return &ModuleController{account: account}
}

// AllModules handles GET /api/modules.
func (mc *ModuleController) AllModules(c *gin.Context) {
	var q refreshQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "module-controller", err)
		return
	}

	mods, err := mc.account.Modules(c.Request.Context(), q.Refresh)
	if err != nil {
		respondError(c, "module-controller", err)
		return
	}

	out := make([]ModuleResponse, 0, len(mods))
	for _, m := range mods {
		out = append(out, newModuleResponse(m))
	}
	c.JSON(http.StatusOK, out)
}

// InvalidateCache handles POST /api/modules/:module/cache/invalidate.
func (mc *ModuleController) InvalidateCache(c *gin.Context) {
	m, ok := resolveModule(c, mc.account, "module-controller")
	if !ok {
		return
	}
	m.InvalidateCache()
	logger.WithComponent("module-controller").Infof("cache of module %s invalidated", m.ID())
	c.JSON(http.StatusOK, gin.H{"id": m.ID(), "message": "cache invalidated"})
}

// resolveModule looks up the :module path parameter. It writes the response and
// returns false when the module cannot be resolved.
func resolveModule(c *gin.Context, account AccountService, component string) (*touchline.Module, bool) {
	id := c.Param("module")
	m, found, err := account.Module(c.Request.Context(), id, false)
	if err != nil {
		respondError(c, component, err)
		return nil, false
	}
	if !found {
		respondError(c, component, fmt.Errorf("module %s: %w", id, touchline.ErrModuleNotFound))
		return nil, false
	}
	return m, true
}
