package handlers

import (
	"encoding/json"
	"net/http"

	"college-crush-backend/internal/middleware"
	"college-crush-backend/internal/models"
	"college-crush-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// UserHandler handles account-related HTTP requests
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// CredentialsRequest is the body of signup and signin requests
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the account and its session token
type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// SignUp handles POST /api/v1/auth/signup
func (h *UserHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, token, err := h.userService.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("Failed to sign up")
		respondServiceError(w, err)
		return
	}

	log.Info().Str("user_id", user.ID).Msg("User signed up")
	respondJSON(w, http.StatusCreated, AuthResponse{User: user, Token: token})
}

// SignIn handles POST /api/v1/auth/signin
func (h *UserHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, token, err := h.userService.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	log.Info().Str("user_id", user.ID).Msg("User signed in")
	respondJSON(w, http.StatusOK, AuthResponse{User: user, Token: token})
}

// DeviceTokenRequest is the body of the device token registration request
type DeviceTokenRequest struct {
	DeviceToken *string `json:"device_token"`
}

// UpdateDeviceToken handles PUT /api/v1/users/device-token
func (h *UserHandler) UpdateDeviceToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req DeviceTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.userService.RegisterDeviceToken(ctx, userID, req.DeviceToken); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to update device token")
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
