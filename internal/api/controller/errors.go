package controller

import (
	"context"
	"errors"
	"net/http"

	"github.com/bassista/go_touchline/internal/logger"
	"github.com/bassista/go_touchline/internal/touchline"
	"github.com/containerd/errdefs"
	"github.com/gin-gonic/gin"
)

// respondError maps a core error to a status. The error is also attached to the gin
// context so the error reporter sees it.
func respondError(c *gin.Context, component string, err error) {
	_ = c.Error(err)
	log := logger.WithComponent(component)

	switch {
	case c.Request.Context().Err() != nil:
		// the request itself expired; the timeout middleware answers once the handler returns
		log.Warnf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	case errors.Is(err, context.DeadlineExceeded):
		// an upstream client timeout with the request still live
		log.Errorf("upstream timed out: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream unavailable"})
	case errors.Is(err, touchline.ErrZoneNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "zone not found"})
	case errors.Is(err, touchline.ErrModuleNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "module not found"})
	case touchline.IsPreconditionError(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case touchline.IsAuthError(err):
		log.Errorf("upstream rejected credentials: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream authentication failed"})
	case touchline.IsSchemaError(err):
		log.Errorf("unexpected upstream payload: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "unexpected upstream response"})
	case touchline.IsTransportError(err):
		log.Errorf("upstream unavailable: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream unavailable"})
	case errdefs.IsNotImplemented(err):
		c.JSON(http.StatusNotImplemented, gin.H{"error": "not supported by the upstream client"})
	case touchline.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found upstream"})
	default:
		log.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func badRequest(c *gin.Context, component string, err error) {
	logger.WithComponent(component).Debugf("%s %s: bad request: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
