package handlers

import (
	"encoding/json"
	"net/http"

	"college-crush-backend/internal/middleware"
	"college-crush-backend/internal/models"
	"college-crush-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// SwipeHandler handles swipe-related HTTP requests
type SwipeHandler struct {
	swipeService *services.SwipeService
}

// NewSwipeHandler creates a new swipe handler
func NewSwipeHandler(swipeService *services.SwipeService) *SwipeHandler {
	return &SwipeHandler{
		swipeService: swipeService,
	}
}

// SwipeRequest is the body of a swipe request
type SwipeRequest struct {
	TargetUserID string             `json:"target_user_id"`
	Action       models.SwipeAction `json:"action"`
}

// Swipe handles POST /api/v1/swipes
func (h *SwipeHandler) Swipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req SwipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.TargetUserID == "" {
		respondError(w, "target_user_id is required", http.StatusBadRequest)
		return
	}

	result, err := h.swipeService.Swipe(ctx, userID, req.TargetUserID, req.Action)
	if err != nil {
		log.Error().
			Err(err).
			Str("user_id", userID).
			Str("target_user_id", req.TargetUserID).
			Msg("Failed to record swipe")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}
