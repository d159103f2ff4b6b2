package card

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"careercard/internal/auth"
	"careercard/internal/logging"
	"careercard/internal/user"
)

func authenticatedRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	ctx := context.WithValue(req.Context(), auth.UserContextKey, &user.User{ID: uuid.New()})
	return req.WithContext(ctx)
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func newTestHandler() *Handler {
	return NewHandler(nil, logging.NewLogger(true))
}

func TestCreateRequiresAuth(t *testing.T) {
	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/cards", strings.NewReader(`{"cardData":{}}`))

	newTestHandler().Create(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestCreateRejectsMalformedBody(t *testing.T) {
	recorder := httptest.NewRecorder()
	req := authenticatedRequest(http.MethodPost, "/api/cards", `{not json`)

	newTestHandler().Create(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "invalid request body")
}

func TestCreateRejectsSchemaViolation(t *testing.T) {
	recorder := httptest.NewRecorder()
	body := `{"cardData":{"theme":"neon"}}`
	req := authenticatedRequest(http.MethodPost, "/api/cards", body)

	newTestHandler().Create(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "theme")
}

func TestUpdateRejectsInvalidID(t *testing.T) {
	recorder := httptest.NewRecorder()
	req := authenticatedRequest(http.MethodPut, "/api/cards/nope", `{"cardData":{}}`)
	req = withURLParam(req, "id", "nope")

	newTestHandler().Update(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "invalid card id")
}

func TestGetRejectsInvalidID(t *testing.T) {
	recorder := httptest.NewRecorder()
	req := authenticatedRequest(http.MethodGet, "/api/cards/123", "")
	req = withURLParam(req, "id", "123")

	newTestHandler().Get(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestListRequiresAuth(t *testing.T) {
	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/cards", nil)

	newTestHandler().List(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
