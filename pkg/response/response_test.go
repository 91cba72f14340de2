package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	apperrors "foodgram/pkg/errors"
)

func newTestContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSuccess(t *testing.T) {
	c, rec := newTestContext()

	assert.NoError(t, Success(c, map[string]string{"name": "pancakes"}))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body Response
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Nil(t, body.Error)
	assert.NotEmpty(t, body.Timestamp)
}

func TestErrorMapsAppError(t *testing.T) {
	c, rec := newTestContext()

	assert.NoError(t, Error(c, apperrors.NotFound("Recipe", nil)))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body Response
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "NOT_FOUND", body.Error.Code)
	assert.Equal(t, "Recipe not found", body.Error.Message)
}

func TestErrorHidesUnknownErrors(t *testing.T) {
	c, rec := newTestContext()

	assert.NoError(t, Error(c, fmt.Errorf("firestore exploded")))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body Response
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
	assert.NotContains(t, rec.Body.String(), "firestore exploded")
}

func TestPaginatedTotalPages(t *testing.T) {
	c, rec := newTestContext()

	assert.NoError(t, Paginated(c, []string{"a"}, 13, 1, 6))

	var body Response
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	data, err := json.Marshal(body.Data)
	assert.NoError(t, err)

	var page PaginatedResponse
	assert.NoError(t, json.Unmarshal(data, &page))
	assert.Equal(t, int64(13), page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 6, page.PageSize)
}
