package handlers

import (
	"encoding/json"
	"net/http"

	"college-crush-backend/internal/middleware"
	"college-crush-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// ProfileHandler handles profile-related HTTP requests
type ProfileHandler struct {
	profileService *services.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

// SaveProfile handles PUT /api/v1/profile
func (h *ProfileHandler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var input services.ProfileInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	profile, err := h.profileService.SaveProfile(ctx, userID, input)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to save profile")
		respondServiceError(w, err)
		return
	}

	log.Info().Str("user_id", userID).Msg("Profile saved")
	respondJSON(w, http.StatusOK, profile)
}

// GetOwnProfile handles GET /api/v1/profile
func (h *ProfileHandler) GetOwnProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	profile, err := h.profileService.GetProfile(ctx, userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

// GetProfile handles GET /api/v1/profiles/{user_id}
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	targetID := chi.URLParam(r, "user_id")

	if targetID == "" {
		respondError(w, "user_id is required", http.StatusBadRequest)
		return
	}

	profile, err := h.profileService.GetProfile(ctx, targetID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, profile)
}
