package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"foodgram/internal/usecase"
)

func TestCheckHealth(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewHealthHandler(nil)

	if assert.NoError(t, h.CheckHealth(c)) {
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "running")
	}
}

func TestLogoutRequiresBearerToken(t *testing.T) {
	e := echo.New()
	h := NewAuthHandler(usecase.NewAuthUseCase(nil, nil, nil))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	assert.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Authorization", "Basic abc")
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)

	assert.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer sometoken")
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)

	assert.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestViewerID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	assert.Equal(t, "", viewerID(c))

	c.Set("uid", "user-1")
	assert.Equal(t, "user-1", viewerID(c))
}
