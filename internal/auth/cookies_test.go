package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetSessionCookie(t *testing.T) {
	recorder := httptest.NewRecorder()

	SetSessionCookie(recorder, "token-123", 30*24*time.Hour, false)

	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)

	cookie := cookies[0]
	assert.Equal(t, SessionCookieName, cookie.Name)
	assert.Equal(t, "token-123", cookie.Value)
	assert.Equal(t, "/", cookie.Path)
	assert.True(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure, "plain HTTP in development")
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, int((30 * 24 * time.Hour).Seconds()), cookie.MaxAge)
}

func TestSetSessionCookieSecureInProduction(t *testing.T) {
	recorder := httptest.NewRecorder()

	SetSessionCookie(recorder, "token-123", time.Hour, true)

	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].Secure)
}

func TestClearSessionCookie(t *testing.T) {
	recorder := httptest.NewRecorder()

	ClearSessionCookie(recorder, false)

	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestGetSessionTokenFromCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "token-123"})

	token, err := GetSessionTokenFromCookie(req)

	require.NoError(t, err)
	assert.Equal(t, "token-123", token)
}

func TestGetSessionTokenFromCookieMissing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, err := GetSessionTokenFromCookie(req)

	assert.Error(t, err)
}

func TestContextHelpersWithEmptyContext(t *testing.T) {
	_, ok := GetUserFromContext(context.Background())
	assert.False(t, ok)

	_, ok = GetSessionTokenFromContext(context.Background())
	assert.False(t, ok)
}
