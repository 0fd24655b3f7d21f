package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"college-crush-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProfileRepository handles database operations for dating profiles
type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Upsert creates a profile or replaces the mutable fields of an existing
// one. ID and created_at are immutable after the first write.
func (r *ProfileRepository) Upsert(ctx context.Context, profile *models.Profile) error {
	prompts, err := json.Marshal(profile.Prompts)
	if err != nil {
		return fmt.Errorf("failed to marshal prompts: %w", err)
	}

	query := `
		INSERT INTO profiles (id, email, name, age, bio, course, year, gender, photos, interests, prompts, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			age = EXCLUDED.age,
			bio = EXCLUDED.bio,
			course = EXCLUDED.course,
			year = EXCLUDED.year,
			gender = EXCLUDED.gender,
			photos = EXCLUDED.photos,
			interests = EXCLUDED.interests,
			prompts = EXCLUDED.prompts
	`
	_, err = r.db.Exec(ctx, query,
		profile.ID, profile.Email, profile.Name, profile.Age, profile.Bio,
		profile.Course, profile.Year, profile.Gender, profile.Photos,
		profile.Interests, prompts, profile.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

// GetByID retrieves a profile by user ID
func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	query := `
		SELECT id, email, name, age, bio, course, year, COALESCE(gender, ''), photos, interests, prompts, created_at
		FROM profiles
		WHERE id = $1
	`
	profile, err := scanProfile(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

// List retrieves all profiles ordered by creation time
func (r *ProfileRepository) List(ctx context.Context) ([]*models.Profile, error) {
	query := `
		SELECT id, email, name, age, bio, course, year, COALESCE(gender, ''), photos, interests, prompts, created_at
		FROM profiles
		ORDER BY created_at, id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*models.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, profile)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profiles: %w", err)
	}

	return profiles, nil
}

func scanProfile(row pgx.Row) (*models.Profile, error) {
	var profile models.Profile
	var prompts []byte
	err := row.Scan(
		&profile.ID, &profile.Email, &profile.Name, &profile.Age, &profile.Bio,
		&profile.Course, &profile.Year, &profile.Gender, &profile.Photos,
		&profile.Interests, &prompts, &profile.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(prompts) > 0 {
		if err := json.Unmarshal(prompts, &profile.Prompts); err != nil {
			return nil, fmt.Errorf("failed to unmarshal prompts: %w", err)
		}
	}
	return &profile, nil
}
