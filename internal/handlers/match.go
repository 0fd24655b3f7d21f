package handlers

import (
	"net/http"

	"college-crush-backend/internal/middleware"
	"college-crush-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// MatchHandler handles match-related HTTP requests
type MatchHandler struct {
	matchService *services.MatchService
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(matchService *services.MatchService) *MatchHandler {
	return &MatchHandler{
		matchService: matchService,
	}
}

// ListMatches handles GET /api/v1/matches
func (h *MatchHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	matches, err := h.matchService.ListForUser(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list matches")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"matches": matches})
}

// DeleteMatch handles DELETE /api/v1/matches/{match_id}
func (h *MatchHandler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	matchID := chi.URLParam(r, "match_id")

	if matchID == "" {
		respondError(w, "match_id is required", http.StatusBadRequest)
		return
	}

	if err := h.matchService.Delete(ctx, matchID, userID); err != nil {
		log.Error().
			Err(err).
			Str("user_id", userID).
			Str("match_id", matchID).
			Msg("Failed to delete match")
		respondServiceError(w, err)
		return
	}

	log.Info().Str("user_id", userID).Str("match_id", matchID).Msg("Match deleted")
	w.WriteHeader(http.StatusNoContent)
}
