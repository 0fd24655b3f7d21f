package handlers

import (
	"encoding/json"
	"net/http"

	"college-crush-backend/internal/middleware"
	"college-crush-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// PhotoHandler handles profile photo upload HTTP requests
type PhotoHandler struct {
	photoService *services.PhotoService
}

// NewPhotoHandler creates a new photo handler
func NewPhotoHandler(photoService *services.PhotoService) *PhotoHandler {
	return &PhotoHandler{
		photoService: photoService,
	}
}

// UploadPhoto handles POST /api/v1/photos/upload
func (h *PhotoHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req services.UploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.ContentType == "" {
		req.ContentType = "image/jpeg"
	}

	response, err := h.photoService.GetPreSignedURL(ctx, userID, req.ContentType)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to generate pre-signed URL")
		respondServiceError(w, err)
		return
	}

	log.Info().Str("user_id", userID).Str("photo_url", response.PhotoURL).Msg("Pre-signed URL generated")
	respondJSON(w, http.StatusOK, response)
}
