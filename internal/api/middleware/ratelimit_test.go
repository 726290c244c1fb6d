package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func requestFrom(ip string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = ip + ":40000"
	return req
}

func TestRateLimit_PerIP(t *testing.T) {
	r := newEngine(RateLimit(0.001, 2))

	assert.Equal(t, http.StatusOK, serve(r, requestFrom("10.0.0.1")).Code)
	assert.Equal(t, http.StatusOK, serve(r, requestFrom("10.0.0.1")).Code)
	w := serve(r, requestFrom("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"error":"too many requests"}`, w.Body.String())

	// other clients have their own bucket
	assert.Equal(t, http.StatusOK, serve(r, requestFrom("10.0.0.2")).Code)
}

func TestRateLimit_Disabled(t *testing.T) {
	r := newEngine(RateLimit(0, 0))
	for i := 0; i < 50; i++ {
		assert.Equal(t, http.StatusOK, serve(r, requestFrom("10.0.0.1")).Code)
	}
}

func TestIPRateLimiter_ReusesBucket(t *testing.T) {
	l := NewIPRateLimiter(1, 1)
	assert.Same(t, l.Limiter("1.2.3.4"), l.Limiter("1.2.3.4"))
	assert.NotSame(t, l.Limiter("1.2.3.4"), l.Limiter("5.6.7.8"))
}
