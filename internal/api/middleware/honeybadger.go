package middleware

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	honeybadger "github.com/honeybadger-io/honeybadger-go"
	"github.com/sirupsen/logrus"
)

// notifyFunc matches honeybadger.Notify.
type notifyFunc func(err interface{}, extra ...interface{}) (string, error)

// HoneybadgerMiddleware reports panics and error responses to Honeybadger when
// HONEYBADGER_API_KEY is set. Panics are re-raised for gin.Recovery.
func HoneybadgerMiddleware(logger *logrus.Logger) gin.HandlerFunc {
	apiKey := os.Getenv("HONEYBADGER_API_KEY")
	if apiKey == "" {
		logger.Info("Honeybadger is not active. To enable error reporting, set the HONEYBADGER_API_KEY environment variable.")
		return func(c *gin.Context) {
			c.Next()
		}
	}

	honeybadger.Configure(honeybadger.Configuration{
		APIKey: apiKey,
		Env:    os.Getenv("TOUCHLINE_ENV"),
	})
	logger.Info("Honeybadger error reporting is enabled.")

	return reportErrors(logger, honeybadger.Notify)
}

func reportErrors(logger *logrus.Logger, notify notifyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				_, _ = notify(fmt.Sprintf("Panic: %s %s", c.Request.Method, c.Request.URL.Path),
					c.Request,
					honeybadger.Context{"stack": string(debug.Stack()), "request_id": GetRequestID(c)},
					honeybadger.Tags{"panic", "http"})
				logger.Error("Recovered from panic, notified Honeybadger: ", rec)
				panic(rec)
			}
		}()

		c.Next()

		status := c.Writer.Status()
		if status < 400 || status == 404 {
			return
		}

		hbCtx := honeybadger.Context{"request_id": GetRequestID(c)}
		if last := c.Errors.Last(); last != nil {
			hbCtx["error"] = last.Error()
		}
		if status >= 500 {
			_, _ = notify(fmt.Sprintf("Error: HTTP %d: %s %s", status, c.Request.Method, c.Request.URL.Path),
				c.Request, hbCtx, honeybadger.Tags{"5XX", "http"})
		} else {
			_, _ = notify(fmt.Sprintf("Warning: HTTP %d: %s %s", status, c.Request.Method, c.Request.URL.Path),
				hbCtx, honeybadger.Tags{"4XX", "http"})
		}
		logger.Warnf("Honeybadger reported HTTP %d for %s %s", status, c.Request.Method, c.Request.URL.Path)
	}
}
