package auth

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// Validation runs before any repository access, so these paths are
// testable with a zero service.

func TestSignupRejectsInvalidInput(t *testing.T) {
	service := &Service{}

	cases := map[string]struct {
		email     string
		password  string
		firstName string
		lastName  string
		expected  error
	}{
		"empty email":      {"", "password123", "Jane", "Doe", ErrInvalidEmailFormat},
		"not an email":     {"not-an-email", "password123", "Jane", "Doe", ErrInvalidEmailFormat},
		"empty password":   {"jane@example.com", "", "Jane", "Doe", ErrPasswordRequired},
		"short password":   {"jane@example.com", "short", "Jane", "Doe", ErrPasswordTooShort},
		"long password":    {"jane@example.com", strings.Repeat("x", 101), "Jane", "Doe", ErrPasswordTooLong},
		"no first name":    {"jane@example.com", "password123", "  ", "Doe", ErrFirstNameRequired},
		"no last name":     {"jane@example.com", "password123", "Jane", "", ErrLastNameRequired},
		"first name long":  {"jane@example.com", "password123", strings.Repeat("j", 101), "Doe", ErrNameTooLong},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := service.Signup(context.Background(), tc.email, tc.password, tc.firstName, tc.lastName)
			assert.ErrorIs(t, err, tc.expected)
		})
	}
}

func TestLoginRejectsEmptyCredentials(t *testing.T) {
	service := &Service{}

	_, _, err := service.Login(context.Background(), "", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = service.Login(context.Background(), "jane@example.com", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutWithoutTokenIsNoop(t *testing.T) {
	service := &Service{}

	assert.NoError(t, service.Logout(context.Background(), ""))
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcryptCost)
	require.NoError(t, err)

	cost, err := bcrypt.Cost(hash)
	require.NoError(t, err)
	assert.Equal(t, bcryptCost, cost)

	assert.NoError(t, bcrypt.CompareHashAndPassword(hash, []byte("password123")))
	assert.Error(t, bcrypt.CompareHashAndPassword(hash, []byte("password124")))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, validatePassword("password123"))
	assert.ErrorIs(t, validatePassword(""), ErrPasswordRequired)
	assert.ErrorIs(t, validatePassword("1234567"), ErrPasswordTooShort)
	assert.NoError(t, validatePassword("12345678"))
	assert.ErrorIs(t, validatePassword(strings.Repeat("x", 101)), ErrPasswordTooLong)
}
