package card

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"careercard/internal/auth"
	"careercard/internal/httputil"
	"careercard/internal/logging"
)

// Handler contains HTTP handlers for card endpoints
type Handler struct {
	repo   *Repository
	logger *logging.Logger
}

func NewHandler(repo *Repository, logger *logging.Logger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

// CardRequest is the create/update request body
type CardRequest struct {
	CardData CardData `json:"cardData"`
}

// CreateResponse is returned on card creation
type CreateResponse struct {
	ID        uuid.UUID `json:"id"`
	EditToken string    `json:"editToken"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CardResponse is a card with its metadata
type CardResponse struct {
	ID        uuid.UUID       `json:"id"`
	CardData  json.RawMessage `json:"cardData"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ListResponse wraps the caller's cards
type ListResponse struct {
	Cards []CardResponse `json:"cards"`
}

// Create stores a new card for the caller
// @Summary      Create a career card
// @Tags         cards
// @Accept       json
// @Produce      json
// @Param        request body CardRequest true "Card payload"
// @Success      201 {object} CreateResponse
// @Failure      400 {object} httputil.ErrorResponse "Schema violation"
// @Failure      401 {object} httputil.ErrorResponse "Not authenticated"
// @Router       /api/cards [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	currentUser, ok := auth.GetUserFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "authentication required", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	raw, ok := decodeCardPayload(w, r)
	if !ok {
		return
	}

	created, err := h.repo.Create(r.Context(), currentUser.ID, raw)
	if err != nil {
		logger.Error("failed to create card", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to create card", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("card created", "card_id", created.ID, "owner_id", currentUser.ID)

	httputil.RespondJSON(w, CreateResponse{
		ID:        created.ID,
		EditToken: created.EditToken,
		CreatedAt: created.CreatedAt,
		UpdatedAt: created.UpdatedAt,
	}, http.StatusCreated)
}

// Update replaces the payload of a card the caller owns
// @Summary      Update a career card
// @Description  Owner-only; a card owned by someone else reads as not found.
// @Tags         cards
// @Accept       json
// @Produce      json
// @Param        id path string true "Card id"
// @Param        request body CardRequest true "Card payload"
// @Success      200 {object} map[string]bool
// @Failure      400 {object} httputil.ErrorResponse "Schema violation or bad id"
// @Failure      404 {object} httputil.ErrorResponse "Not found or not owned"
// @Router       /api/cards/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	currentUser, ok := auth.GetUserFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "authentication required", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	cardID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondErrorWithCode(w, "invalid card id", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	raw, ok := decodeCardPayload(w, r)
	if !ok {
		return
	}

	if err := h.repo.Update(r.Context(), cardID, currentUser.ID, raw); err != nil {
		if errors.Is(err, ErrNotFound) {
			logger.Warn("card update rejected", "card_id", cardID)
			httputil.RespondErrorWithCode(w, "card not found", httputil.CodeNotFound, http.StatusNotFound)
			return
		}
		logger.Error("failed to update card", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to update card", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("card updated", "card_id", cardID)
	httputil.RespondJSON(w, map[string]bool{"success": true}, http.StatusOK)
}

// Get fetches one card by id
// @Summary      Fetch a career card
// @Tags         cards
// @Produce      json
// @Param        id path string true "Card id"
// @Success      200 {object} CardResponse
// @Failure      403 {object} httputil.ErrorResponse "Owned by another user"
// @Failure      404 {object} httputil.ErrorResponse "Not found"
// @Router       /api/cards/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	currentUser, ok := auth.GetUserFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "authentication required", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	cardID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondErrorWithCode(w, "invalid card id", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	found, err := h.repo.GetByID(r.Context(), cardID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondErrorWithCode(w, "card not found", httputil.CodeNotFound, http.StatusNotFound)
			return
		}
		logger.Error("failed to get card", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to get card", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	if found.OwnerID != currentUser.ID {
		logger.Warn("card access denied", "card_id", cardID)
		httputil.RespondErrorWithCode(w, "you do not have access to this card", httputil.CodeForbidden, http.StatusForbidden)
		return
	}

	httputil.RespondJSON(w, CardResponse{
		ID:        found.ID,
		CardData:  found.CardData,
		CreatedAt: found.CreatedAt,
		UpdatedAt: found.UpdatedAt,
	}, http.StatusOK)
}

// List returns the caller's cards, most recently updated first
// @Summary      List career cards
// @Tags         cards
// @Produce      json
// @Success      200 {object} ListResponse
// @Failure      401 {object} httputil.ErrorResponse "Not authenticated"
// @Router       /api/cards [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	currentUser, ok := auth.GetUserFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "authentication required", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	cards, err := h.repo.ListByOwner(r.Context(), currentUser.ID)
	if err != nil {
		logger.Error("failed to list cards", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to list cards", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	response := ListResponse{Cards: make([]CardResponse, 0, len(cards))}
	for _, c := range cards {
		response.Cards = append(response.Cards, CardResponse{
			ID:        c.ID,
			CardData:  c.CardData,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		})
	}

	httputil.RespondJSON(w, response, http.StatusOK)
}

// decodeCardPayload parses and validates the request body, responding
// with the first schema violation on failure.
func decodeCardPayload(w http.ResponseWriter, r *http.Request) (json.RawMessage, bool) {
	var req CardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return nil, false
	}

	if err := req.CardData.Validate(); err != nil {
		httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeValidationFailed, http.StatusBadRequest)
		return nil, false
	}

	raw, err := json.Marshal(req.CardData)
	if err != nil {
		httputil.RespondErrorWithCode(w, fmt.Sprintf("failed to encode card data: %v", err), httputil.CodeInternalError, http.StatusInternalServerError)
		return nil, false
	}

	return raw, true
}
