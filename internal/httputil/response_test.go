package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondJSON(t *testing.T) {
	recorder := httptest.NewRecorder()

	RespondJSON(recorder, map[string]bool{"success": true}, http.StatusCreated)

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true}`, recorder.Body.String())
}

func TestRespondError(t *testing.T) {
	recorder := httptest.NewRecorder()

	RespondError(recorder, "something went wrong", http.StatusBadRequest)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Equal(t, "something went wrong", resp.Error)
	assert.Empty(t, resp.Code)
}

func TestRespondErrorWithCode(t *testing.T) {
	recorder := httptest.NewRecorder()

	RespondErrorWithCode(recorder, "card not found", CodeNotFound, http.StatusNotFound)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.JSONEq(t, `{"error":"card not found","code":"NOT_FOUND"}`, recorder.Body.String())
}

func TestRespondJSONOmitsEmptyCode(t *testing.T) {
	recorder := httptest.NewRecorder()

	RespondError(recorder, "oops", http.StatusInternalServerError)

	assert.NotContains(t, recorder.Body.String(), `"code"`)
}
