package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"college-crush-backend/internal/models"
	"college-crush-backend/internal/repository"
)

const (
	minAge       = 18
	minYear      = 1
	maxYear      = 6
	maxPhotos    = 3
	maxInterests = 5
	maxPrompts   = 3
)

// ProfileInput carries the fields a user may set on their profile
type ProfileInput struct {
	Name      string          `json:"name"`
	Age       int             `json:"age"`
	Bio       string          `json:"bio"`
	Course    string          `json:"course"`
	Year      int             `json:"year"`
	Gender    string          `json:"gender"`
	Photos    []string        `json:"photos"`
	Interests []string        `json:"interests"`
	Prompts   []models.Prompt `json:"prompts"`
}

// ProfileService handles dating profile business logic
type ProfileService struct {
	profiles ProfileStore
	users    UserStore
}

// NewProfileService creates a new profile service
func NewProfileService(profiles ProfileStore, users UserStore) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		users:    users,
	}
}

// SaveProfile creates the caller's profile or replaces its mutable fields.
// Validation rejects the input before any write. ID and creation time are
// immutable once the profile exists.
func (s *ProfileService) SaveProfile(ctx context.Context, userID string, input ProfileInput) (*models.Profile, error) {
	if err := validateProfileInput(&input); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	createdAt := time.Now()
	existing, err := s.profiles.GetByID(ctx, userID)
	if err == nil {
		createdAt = existing.CreatedAt
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing profile: %w", err)
	}

	profile := &models.Profile{
		ID:        userID,
		Email:     user.Email,
		Name:      strings.TrimSpace(input.Name),
		Age:       input.Age,
		Bio:       strings.TrimSpace(input.Bio),
		Course:    strings.TrimSpace(input.Course),
		Year:      input.Year,
		Gender:    input.Gender,
		Photos:    input.Photos,
		Interests: input.Interests,
		Prompts:   input.Prompts,
		CreatedAt: createdAt,
	}

	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	return profile, nil
}

// GetProfile retrieves a profile by user ID
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	return s.profiles.GetByID(ctx, userID)
}

func validateProfileInput(input *ProfileInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if input.Age < minAge {
		return fmt.Errorf("%w: you must be %d or older", ErrValidation, minAge)
	}
	if strings.TrimSpace(input.Bio) == "" {
		return fmt.Errorf("%w: bio is required", ErrValidation)
	}
	if strings.TrimSpace(input.Course) == "" {
		return fmt.Errorf("%w: course is required", ErrValidation)
	}
	if input.Year < minYear || input.Year > maxYear {
		return fmt.Errorf("%w: year must be between %d and %d", ErrValidation, minYear, maxYear)
	}
	if len(input.Photos) == 0 {
		return fmt.Errorf("%w: at least 1 photo is required", ErrValidation)
	}
	if len(input.Photos) > maxPhotos {
		return fmt.Errorf("%w: at most %d photos are allowed", ErrValidation, maxPhotos)
	}
	for _, photo := range input.Photos {
		if strings.TrimSpace(photo) == "" {
			return fmt.Errorf("%w: photo URL cannot be empty", ErrValidation)
		}
	}
	switch input.Gender {
	case "", models.GenderMale, models.GenderFemale, models.GenderOther:
	default:
		return fmt.Errorf("%w: unknown gender", ErrValidation)
	}
	if len(input.Interests) > maxInterests {
		return fmt.Errorf("%w: at most %d interests are allowed", ErrValidation, maxInterests)
	}
	if len(input.Prompts) > maxPrompts {
		return fmt.Errorf("%w: at most %d prompts are allowed", ErrValidation, maxPrompts)
	}
	for _, prompt := range input.Prompts {
		if strings.TrimSpace(prompt.Question) == "" || strings.TrimSpace(prompt.Answer) == "" {
			return fmt.Errorf("%w: prompts need both a question and an answer", ErrValidation)
		}
	}
	return nil
}
