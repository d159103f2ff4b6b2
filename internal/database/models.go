package database

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the users table row.
type User struct {
	bun.BaseModel `bun:"table:users"`

	ID           uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Email        string    `bun:"email,notnull,unique"`
	PasswordHash string    `bun:"password_hash,notnull"`
	FirstName    string    `bun:"first_name,notnull"`
	LastName     string    `bun:"last_name,notnull"`
	JobTitle     *string   `bun:"job_title"`
	Location     *string   `bun:"location"`
	Bio          *string   `bun:"bio"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:now()"`
	UpdatedAt    time.Time `bun:"updated_at,notnull,default:now()"`
}

// Session is the sessions table row. A row whose ExpiresAt is in the
// past is treated as absent regardless of physical deletion timing.
type Session struct {
	bun.BaseModel `bun:"table:sessions"`

	ID        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	UserID    uuid.UUID `bun:"user_id,notnull,type:uuid"`
	Token     string    `bun:"token,notnull,unique"`
	ExpiresAt time.Time `bun:"expires_at,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull,default:now()"`
}

// CareerCard is the career_cards table row. CardData holds the
// schema-validated payload as jsonb; EditToken is a legacy column kept
// for rows created before owner-based authorization.
type CareerCard struct {
	bun.BaseModel `bun:"table:career_cards"`

	ID        uuid.UUID       `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	OwnerID   uuid.UUID       `bun:"owner_id,notnull,type:uuid"`
	CardData  json.RawMessage `bun:"card_data,notnull,type:jsonb"`
	EditToken string          `bun:"edit_token,notnull"`
	CreatedAt time.Time       `bun:"created_at,notnull,default:now()"`
	UpdatedAt time.Time       `bun:"updated_at,notnull,default:now()"`
}
