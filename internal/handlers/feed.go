package handlers

import (
	"errors"
	"net/http"

	"college-crush-backend/internal/middleware"
	"college-crush-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// FeedHandler handles discovery feed HTTP requests
type FeedHandler struct {
	feedService *services.FeedService
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(feedService *services.FeedService) *FeedHandler {
	return &FeedHandler{
		feedService: feedService,
	}
}

// Next handles GET /api/v1/feed/next
func (h *FeedHandler) Next(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	item, err := h.feedService.Next(ctx, userID)
	if err != nil {
		if errors.Is(err, services.ErrFeedExhausted) {
			respondJSON(w, http.StatusOK, map[string]interface{}{"exhausted": true})
			return
		}
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to advance feed")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"exhausted":        false,
		"profile":          item.Profile,
		"match_percentage": item.MatchPercentage,
	})
}

// Reset handles POST /api/v1/feed/reset
func (h *FeedHandler) Reset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	if err := h.feedService.Reset(ctx, userID); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to reset feed")
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
