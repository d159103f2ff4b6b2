package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"careercard/internal/httputil"
	"careercard/internal/logging"
	"careercard/internal/ratelimit"
	"careercard/internal/user"
)

// Handler contains HTTP handlers for authentication endpoints
type Handler struct {
	service         *Service
	rateLimiter     *ratelimit.Limiter
	logger          *logging.Logger
	isProduction    bool
	sessionDuration time.Duration
}

func NewHandler(service *Service, rateLimiter *ratelimit.Limiter, logger *logging.Logger, isProduction bool, sessionDuration time.Duration) *Handler {
	return &Handler{
		service:         service,
		rateLimiter:     rateLimiter,
		logger:          logger,
		isProduction:    isProduction,
		sessionDuration: sessionDuration,
	}
}

// SignupRequest represents the signup request body
type SignupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest represents the profile update request body
type UpdateProfileRequest struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	JobTitle  *string `json:"jobTitle"`
	Location  *string `json:"location"`
	Bio       *string `json:"bio"`
}

// UpdatePasswordRequest represents the password change request body
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	JobTitle  *string   `json:"jobTitle"`
	Location  *string   `json:"location"`
	Bio       *string   `json:"bio"`
}

// UserEnvelope wraps a user for `{user}` responses
type UserEnvelope struct {
	User UserResponse `json:"user"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// Signup handles user registration
// @Summary      Create an account
// @Description  Register with email and password; the new user is logged in immediately via a session cookie.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body SignupRequest true "Signup fields"
// @Success      201 {object} UserEnvelope
// @Failure      400 {object} ErrorResponse "Validation error or duplicate email"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /api/auth/signup [post]
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	if h.limitByIP(w, r, "signup") {
		return
	}

	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid signup request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	newUser, session, err := h.service.Signup(r.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			logger.Warn("signup failed: email already registered")
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeEmailAlreadyExists, http.StatusBadRequest)
			return
		}
		if isValidationError(err) {
			logger.Warn("signup failed: validation error", "error", err.Error())
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeValidationFailed, http.StatusBadRequest)
			return
		}
		logger.Error("signup failed: internal error", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to create account", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("user signed up", "user_id", newUser.ID)

	SetSessionCookie(w, session.Token, h.sessionDuration, h.isProduction)
	httputil.RespondJSON(w, UserEnvelope{User: toUserResponse(newUser)}, http.StatusCreated)
}

// Login handles user login
// @Summary      Log in
// @Description  Authenticate with email and password and receive a session cookie.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200 {object} UserEnvelope
// @Failure      400 {object} ErrorResponse "Invalid email or password"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /api/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	if h.limitByIP(w, r, "login") {
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid login request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	existingUser, session, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			// Never reveal which of the two fields was wrong.
			logger.Warn("login failed: invalid credentials")
			httputil.RespondErrorWithCode(w, "Invalid email or password", httputil.CodeInvalidCredentials, http.StatusBadRequest)
			return
		}
		logger.Error("login failed: internal error", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to login", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("user logged in", "user_id", existingUser.ID)

	SetSessionCookie(w, session.Token, h.sessionDuration, h.isProduction)
	httputil.RespondJSON(w, UserEnvelope{User: toUserResponse(existingUser)}, http.StatusOK)
}

// Logout handles user logout
// @Summary      Log out
// @Description  Delete the presented session and clear the cookie.
// @Tags         auth
// @Produce      json
// @Success      200 {object} map[string]bool
// @Router       /api/auth/logout [post]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	token, _ := GetSessionTokenFromContext(r.Context())
	if err := h.service.Logout(r.Context(), token); err != nil {
		logger.Warn("failed to delete session", "error", err.Error())
		// The cookie is cleared regardless.
	}

	ClearSessionCookie(w, h.isProduction)

	logger.Info("user logged out")
	httputil.RespondJSON(w, map[string]bool{"success": true}, http.StatusOK)
}

// Me returns the authenticated user
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200 {object} UserEnvelope
// @Failure      401 {object} ErrorResponse "Not authenticated"
// @Router       /api/auth/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	currentUser, ok := GetUserFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "authentication required", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	httputil.RespondJSON(w, UserEnvelope{User: toUserResponse(currentUser)}, http.StatusOK)
}

// UpdateProfile mutates the caller's profile fields
// @Summary      Update profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body UpdateProfileRequest true "Profile fields"
// @Success      200 {object} UserEnvelope
// @Failure      400 {object} ErrorResponse "Validation error"
// @Failure      401 {object} ErrorResponse "Not authenticated"
// @Router       /api/auth/profile [put]
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	currentUser, ok := GetUserFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "authentication required", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid profile update request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	updated, err := h.service.UpdateProfile(r.Context(), currentUser.ID, user.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		JobTitle:  req.JobTitle,
		Location:  req.Location,
		Bio:       req.Bio,
	})
	if err != nil {
		if isValidationError(err) {
			logger.Warn("profile update failed: validation error", "error", err.Error())
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeValidationFailed, http.StatusBadRequest)
			return
		}
		logger.Error("profile update failed: internal error", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to update profile", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("profile updated", "user_id", currentUser.ID)
	httputil.RespondJSON(w, UserEnvelope{User: toUserResponse(updated)}, http.StatusOK)
}

// UpdatePassword changes the caller's password
// @Summary      Change password
// @Description  Re-verifies the current password before accepting the new one; other sessions are revoked.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body UpdatePasswordRequest true "Current and new password"
// @Success      200 {object} map[string]bool
// @Failure      400 {object} ErrorResponse "Current password wrong or new password invalid"
// @Failure      401 {object} ErrorResponse "Not authenticated"
// @Router       /api/auth/password [put]
func (h *Handler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	currentUser, ok := GetUserFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "authentication required", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	var req UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid password update request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	token, _ := GetSessionTokenFromContext(r.Context())
	err := h.service.UpdatePassword(r.Context(), currentUser.ID, req.CurrentPassword, req.NewPassword, token)
	if err != nil {
		if errors.Is(err, ErrWrongPassword) || isValidationError(err) {
			logger.Warn("password change rejected", "error", err.Error())
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeValidationFailed, http.StatusBadRequest)
			return
		}
		logger.Error("password change failed: internal error", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to update password", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("password changed", "user_id", currentUser.ID)
	httputil.RespondJSON(w, map[string]bool{"success": true}, http.StatusOK)
}

// limitByIP applies the fixed-window limiter; returns true when the
// request was rejected. Limiter failures never block the request.
func (h *Handler) limitByIP(w http.ResponseWriter, r *http.Request, purpose string) bool {
	logger := logging.GetLoggerFromContext(r.Context())
	ip := getClientIP(r)

	exceeded, err := h.rateLimiter.Check(r.Context(), ip, purpose)
	if err != nil {
		logger.Error("failed to check rate limit", "error", err.Error())
	} else if exceeded {
		logger.Warn("rate limit exceeded", "ip", ip, "purpose", purpose)
		httputil.RespondErrorWithCode(w, "too many requests, please try again later", httputil.CodeTooManyRequests, http.StatusTooManyRequests)
		return true
	}

	if err := h.rateLimiter.Record(r.Context(), ip, purpose); err != nil {
		logger.Error("failed to record request", "error", err.Error())
	}

	return false
}

func isValidationError(err error) bool {
	return errors.Is(err, ErrInvalidEmailFormat) ||
		errors.Is(err, ErrPasswordRequired) ||
		errors.Is(err, ErrPasswordTooShort) ||
		errors.Is(err, ErrPasswordTooLong) ||
		errors.Is(err, ErrFirstNameRequired) ||
		errors.Is(err, ErrLastNameRequired) ||
		errors.Is(err, ErrNameTooLong)
}

func toUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		JobTitle:  u.JobTitle,
		Location:  u.Location,
		Bio:       u.Bio,
	}
}

// getClientIP extracts the client IP address from the request
func getClientIP(r *http.Request) string {
	// X-Forwarded-For first (behind proxy/load balancer)
	xff := r.Header.Get("X-Forwarded-For")
	if xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	xri := r.Header.Get("X-Real-IP")
	if xri != "" {
		return strings.TrimSpace(xri)
	}

	// RemoteAddr format is "IP:port"
	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}
