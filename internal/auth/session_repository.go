package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"careercard/internal/database"
	"careercard/internal/user"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionRepository persists opaque session tokens.
//
// A row whose expires_at is in the past is never returned: expiry is a
// logical deletion, physical cleanup happens separately.
type SessionRepository struct {
	db *bun.DB
}

func NewSessionRepository(db *bun.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create stores a new session row for the user.
func (r *SessionRepository) Create(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error {
	session := &database.Session{
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
	}

	_, err := r.db.NewInsert().
		Model(session).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

// GetUserForToken resolves a token to its user via a live session.
// Expired or unknown tokens yield ErrSessionNotFound.
func (r *SessionRepository) GetUserForToken(ctx context.Context, token string) (*user.User, error) {
	dbUser := new(database.User)
	err := r.db.NewSelect().
		Model(dbUser).
		Join(`JOIN sessions AS s ON s.user_id = "user".id`).
		Where("s.token = ?", token).
		Where("s.expires_at > NOW()").
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to resolve session: %w", err)
	}

	return &user.User{
		ID:           dbUser.ID,
		Email:        dbUser.Email,
		PasswordHash: dbUser.PasswordHash,
		FirstName:    dbUser.FirstName,
		LastName:     dbUser.LastName,
		JobTitle:     dbUser.JobTitle,
		Location:     dbUser.Location,
		Bio:          dbUser.Bio,
		CreatedAt:    dbUser.CreatedAt,
		UpdatedAt:    dbUser.UpdatedAt,
	}, nil
}

// Delete removes the session row matching the token.
func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	result, err := r.db.NewDelete().
		Model((*database.Session)(nil)).
		Where("token = ?", token).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// DeleteOtherUserSessions removes every session of the user except the
// one holding keepToken. Used after a password change.
func (r *SessionRepository) DeleteOtherUserSessions(ctx context.Context, userID uuid.UUID, keepToken string) error {
	_, err := r.db.NewDelete().
		Model((*database.Session)(nil)).
		Where("user_id = ?", userID).
		Where("token != ?", keepToken).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete user sessions: %w", err)
	}

	return nil
}

// CleanupExpired removes expired session rows.
// Should be run periodically (e.g., via cron job).
func (r *SessionRepository) CleanupExpired(ctx context.Context) error {
	_, err := r.db.NewDelete().
		Model((*database.Session)(nil)).
		Where("expires_at < NOW()").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to cleanup expired sessions: %w", err)
	}

	return nil
}
