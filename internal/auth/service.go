package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"careercard/internal/logging"
	"careercard/internal/user"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidEmailFormat = errors.New("invalid email address")
	ErrPasswordRequired   = errors.New("password is required")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong    = errors.New("password must be at most 100 characters")
	ErrFirstNameRequired  = errors.New("first name is required")
	ErrLastNameRequired   = errors.New("last name is required")
	ErrNameTooLong        = errors.New("name must be at most 100 characters")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

// bcryptCost matches the hash cost the original accounts were created with.
const bcryptCost = 10

// Session wraps a freshly issued session token and its expiry.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// Service handles authentication business logic
type Service struct {
	userRepo        *user.Repository
	sessionRepo     *SessionRepository
	logger          *logging.Logger
	sessionDuration time.Duration
}

func NewService(userRepo *user.Repository, sessionRepo *SessionRepository, logger *logging.Logger, sessionDuration time.Duration) *Service {
	return &Service{
		userRepo:        userRepo,
		sessionRepo:     sessionRepo,
		logger:          logger,
		sessionDuration: sessionDuration,
	}
}

// Signup creates a new user account and logs it straight in.
func (s *Service) Signup(ctx context.Context, email, password, firstName, lastName string) (*user.User, *Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || len(email) > 255 {
		return nil, nil, ErrInvalidEmailFormat
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, nil, ErrInvalidEmailFormat
	}
	if err := validatePassword(password); err != nil {
		return nil, nil, err
	}

	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" {
		return nil, nil, ErrFirstNameRequired
	}
	if lastName == "" {
		return nil, nil, ErrLastNameRequired
	}
	if len(firstName) > 100 || len(lastName) > 100 {
		return nil, nil, ErrNameTooLong
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser, err := s.userRepo.Create(ctx, email, string(passwordHash), firstName, lastName)
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return nil, nil, ErrEmailTaken
		}
		return nil, nil, fmt.Errorf("failed to create user: %w", err)
	}

	session, err := s.createSession(ctx, newUser.ID)
	if err != nil {
		return nil, nil, err
	}

	return newUser, session, nil
}

// Login authenticates a user and opens a new session. Existing sessions
// of the same user stay valid.
func (s *Service) Login(ctx context.Context, email, password string) (*user.User, *Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, nil, ErrInvalidCredentials
	}

	existingUser, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to get user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(existingUser.PasswordHash), []byte(password)) != nil {
		return nil, nil, ErrInvalidCredentials
	}

	session, err := s.createSession(ctx, existingUser.ID)
	if err != nil {
		return nil, nil, err
	}

	return existingUser, session, nil
}

// Logout deletes the session row for the presented token. An unknown
// token is not an error: the cookie gets cleared either way.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessionRepo.Delete(ctx, token); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil
		}
		return err
	}
	return nil
}

// UpdateProfile mutates the user's profile fields.
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, update user.ProfileUpdate) (*user.User, error) {
	update.FirstName = strings.TrimSpace(update.FirstName)
	update.LastName = strings.TrimSpace(update.LastName)
	if update.FirstName == "" {
		return nil, ErrFirstNameRequired
	}
	if update.LastName == "" {
		return nil, ErrLastNameRequired
	}
	if len(update.FirstName) > 100 || len(update.LastName) > 100 {
		return nil, ErrNameTooLong
	}

	return s.userRepo.UpdateProfile(ctx, userID, update)
}

// UpdatePassword re-verifies the current password before accepting a new
// one, then revokes every other session of the user.
func (s *Service) UpdatePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword, currentToken string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	existingUser, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(existingUser.PasswordHash), []byte(currentPassword)) != nil {
		return ErrWrongPassword
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, string(passwordHash)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.sessionRepo.DeleteOtherUserSessions(ctx, userID, currentToken); err != nil {
		s.logger.Warn("failed to revoke other sessions after password change", "error", err)
	}

	return nil
}

func (s *Service) createSession(ctx context.Context, userID uuid.UUID) (*Session, error) {
	token := uuid.NewString()
	expiresAt := time.Now().Add(s.sessionDuration)

	if err := s.sessionRepo.Create(ctx, userID, token, expiresAt); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &Session{Token: token, ExpiresAt: expiresAt}, nil
}

func validatePassword(password string) error {
	switch {
	case password == "":
		return ErrPasswordRequired
	case len(password) < 8:
		return ErrPasswordTooShort
	case len(password) > 100:
		return ErrPasswordTooLong
	}
	return nil
}
