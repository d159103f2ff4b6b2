package card

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"careercard/internal/database"
)

var ErrNotFound = errors.New("card not found")

// Card is a stored career card with its metadata.
type Card struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	CardData  json.RawMessage
	EditToken string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Repository handles career card persistence
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a card for the owner. The edit token is a legacy
// column: generated and stored, never consulted for authorization.
func (r *Repository) Create(ctx context.Context, ownerID uuid.UUID, cardData json.RawMessage) (*Card, error) {
	dbCard := &database.CareerCard{
		OwnerID:   ownerID,
		CardData:  cardData,
		EditToken: uuid.NewString(),
	}

	_, err := r.db.NewInsert().
		Model(dbCard).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}

	return mapDBCardToModel(dbCard), nil
}

// Update replaces the payload of a card the caller owns. A missing row
// and a row with a different owner are both ErrNotFound: the update
// path deliberately does not distinguish them.
func (r *Repository) Update(ctx context.Context, id, ownerID uuid.UUID, cardData json.RawMessage) error {
	result, err := r.db.NewUpdate().
		Model((*database.CareerCard)(nil)).
		Set("card_data = ?", cardData).
		Set("updated_at = NOW()").
		Where("id = ?", id).
		Where("owner_id = ?", ownerID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update card: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// GetByID fetches a card regardless of owner; the handler decides
// between 404 and 403.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Card, error) {
	dbCard := new(database.CareerCard)
	err := r.db.NewSelect().
		Model(dbCard).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get card: %w", err)
	}

	return mapDBCardToModel(dbCard), nil
}

// ListByOwner returns the caller's cards, most recently updated first.
func (r *Repository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Card, error) {
	var dbCards []*database.CareerCard
	err := r.db.NewSelect().
		Model(&dbCards).
		Where("owner_id = ?", ownerID).
		Order("updated_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	cards := make([]*Card, 0, len(dbCards))
	for _, dbCard := range dbCards {
		cards = append(cards, mapDBCardToModel(dbCard))
	}
	return cards, nil
}

func mapDBCardToModel(dbc *database.CareerCard) *Card {
	return &Card{
		ID:        dbc.ID,
		OwnerID:   dbc.OwnerID,
		CardData:  dbc.CardData,
		EditToken: dbc.EditToken,
		CreatedAt: dbc.CreatedAt,
		UpdatedAt: dbc.UpdatedAt,
	}
}
