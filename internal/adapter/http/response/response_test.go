package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEcho() (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return e, c, rec
}

func decodeFailure(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	return result
}

func TestHealth(t *testing.T) {
	_, c, rec := setupEcho()

	err := Health(c)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	var result HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "ok", result.Status)
}

func TestNewFailure_Shape(t *testing.T) {
	body, err := json.Marshal(NewFailure("boom"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"flights":[],"error":"boom"}`, string(body))
}

func TestInvalidRequestBody(t *testing.T) {
	_, c, rec := setupEcho()

	err := InvalidRequestBody(c)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	result := decodeFailure(t, rec)
	assert.Equal(t, false, result["success"])
	assert.Equal(t, []interface{}{}, result["flights"])
	assert.Equal(t, MsgInvalidRequestBody, result["error"])
}

func TestValidationError(t *testing.T) {
	_, c, rec := setupEcho()

	err := ValidationError(c, "Missing required fields: userID")
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing required fields: userID", decodeFailure(t, rec)["error"])
}

func TestUnauthorized(t *testing.T) {
	_, c, rec := setupEcho()

	err := Unauthorized(c, NewFailure("Login failed: Invalid credentials"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Login failed: Invalid credentials", decodeFailure(t, rec)["error"])
}

func TestScrapeFailed(t *testing.T) {
	_, c, rec := setupEcho()

	err := ScrapeFailed(c, NewFailure("Upstream portal error: request timed out"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Upstream portal error: request timed out", decodeFailure(t, rec)["error"])
}

func TestInternalServerError(t *testing.T) {
	_, c, rec := setupEcho()

	err := InternalServerError(c)
	require.NoError(t, err)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, MsgInternalError, decodeFailure(t, rec)["error"])
}

func TestSchedule(t *testing.T) {
	_, c, rec := setupEcho()
	body := map[string]interface{}{
		"success": true,
		"flights": []string{"a", "b"},
		"error":   nil,
	}

	err := Schedule(c, body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"flights":["a","b"],"error":null}`, rec.Body.String())
}
