package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiterAllowsFullRate(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiter(3, time.Minute)
	h := rl.RateLimitMiddleware()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	do := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		assert.NoError(t, h(e.NewContext(req, rec)))
		return rec.Code
	}

	// Every token in the window is usable, including the first request's
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, do("10.0.0.1"))
	}
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1"))

	// Other visitors keep their own bucket
	assert.Equal(t, http.StatusOK, do("10.0.0.2"))
}
