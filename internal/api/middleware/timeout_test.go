package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRequestTimeout_Disabled(t *testing.T) {
	for _, d := range []time.Duration{0, -time.Second} {
		var hasDeadline bool
		r := gin.New()
		r.Use(RequestTimeout(d))
		r.GET("/test", func(c *gin.Context) {
			_, hasDeadline = c.Request.Context().Deadline()
			c.String(http.StatusOK, "ok")
		})

		w := serve(r, httptest.NewRequest(http.MethodGet, "/test", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.False(t, hasDeadline)
	}
}

func TestRequestTimeout_SetsDeadline(t *testing.T) {
	var hasDeadline bool
	r := gin.New()
	r.Use(RequestTimeout(5 * time.Second))
	r.GET("/test", func(c *gin.Context) {
		_, hasDeadline = c.Request.Context().Deadline()
		c.String(http.StatusOK, "ok")
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, hasDeadline)
}

func TestRequestTimeout_GatewayTimeoutWhenNothingWritten(t *testing.T) {
	r := gin.New()
	r.Use(RequestTimeout(30 * time.Millisecond))
	r.GET("/test", func(c *gin.Context) {
		select {
		case <-time.After(time.Second):
			c.String(http.StatusOK, "late")
		case <-c.Request.Context().Done():
		}
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.JSONEq(t, `{"error":"request timeout"}`, w.Body.String())
}

func TestRequestTimeout_WrittenResponseKept(t *testing.T) {
	r := gin.New()
	r.Use(RequestTimeout(30 * time.Millisecond))
	r.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
		time.Sleep(60 * time.Millisecond)
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}
