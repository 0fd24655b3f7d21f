package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"college-crush-backend/internal/models"
	"college-crush-backend/internal/repository"
)

func seedUser(t *testing.T, db *memDB, id, email string) {
	t.Helper()
	err := db.Create(context.Background(), &models.User{
		ID:        id,
		Email:     email,
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("seed user %s: %v", id, err)
	}
}

func validInput() ProfileInput {
	return ProfileInput{
		Name:   "Alice",
		Age:    21,
		Bio:    "Coffee and climbing.",
		Course: "Computer Science",
		Year:   3,
		Gender: models.GenderFemale,
		Photos: []string{"https://cdn.example.com/alice-1.jpg"},
		Interests: []string{
			"climbing", "coffee",
		},
		Prompts: []models.Prompt{
			{Question: "My ideal Sunday", Answer: "Bouldering then brunch"},
		},
	}
}

func TestSaveProfileValidation(t *testing.T) {
	db := newMemDB()
	seedUser(t, db, "alice", "alice@campus.edu")
	svc := NewProfileService(memProfileStore{db}, db)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*ProfileInput)
	}{
		{"missing name", func(in *ProfileInput) { in.Name = "  " }},
		{"underage", func(in *ProfileInput) { in.Age = 17 }},
		{"missing bio", func(in *ProfileInput) { in.Bio = "" }},
		{"missing course", func(in *ProfileInput) { in.Course = "" }},
		{"missing year", func(in *ProfileInput) { in.Year = 0 }},
		{"year too large", func(in *ProfileInput) { in.Year = 7 }},
		{"no photos", func(in *ProfileInput) { in.Photos = nil }},
		{"too many photos", func(in *ProfileInput) {
			in.Photos = []string{"a.jpg", "b.jpg", "c.jpg", "d.jpg"}
		}},
		{"blank photo url", func(in *ProfileInput) { in.Photos = []string{" "} }},
		{"unknown gender", func(in *ProfileInput) { in.Gender = "robot" }},
		{"too many interests", func(in *ProfileInput) {
			in.Interests = []string{"a", "b", "c", "d", "e", "f"}
		}},
		{"too many prompts", func(in *ProfileInput) {
			prompt := models.Prompt{Question: "q", Answer: "a"}
			in.Prompts = []models.Prompt{prompt, prompt, prompt, prompt}
		}},
		{"prompt missing answer", func(in *ProfileInput) {
			in.Prompts = []models.Prompt{{Question: "q", Answer: " "}}
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput()
			tc.mutate(&input)
			if _, err := svc.SaveProfile(ctx, "alice", input); !errors.Is(err, ErrValidation) {
				t.Fatalf("got %v, want ErrValidation", err)
			}
		})
	}
}

func TestSaveProfileEdgeAge(t *testing.T) {
	db := newMemDB()
	seedUser(t, db, "alice", "alice@campus.edu")
	svc := NewProfileService(memProfileStore{db}, db)

	input := validInput()
	input.Age = 18
	if _, err := svc.SaveProfile(context.Background(), "alice", input); err != nil {
		t.Fatalf("age 18 rejected: %v", err)
	}
}

func TestSaveProfileRequiresAccount(t *testing.T) {
	db := newMemDB()
	svc := NewProfileService(memProfileStore{db}, db)

	if _, err := svc.SaveProfile(context.Background(), "ghost", validInput()); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestSaveAndGetProfile(t *testing.T) {
	db := newMemDB()
	seedUser(t, db, "alice", "alice@campus.edu")
	svc := NewProfileService(memProfileStore{db}, db)
	ctx := context.Background()

	saved, err := svc.SaveProfile(ctx, "alice", validInput())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.ID != "alice" {
		t.Fatalf("profile id %q, want the account id", saved.ID)
	}
	if saved.Email != "alice@campus.edu" {
		t.Fatalf("profile email %q, want the account email", saved.Email)
	}

	got, err := svc.GetProfile(ctx, "alice")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Alice" || got.Age != 21 || got.Year != 3 || got.Gender != models.GenderFemale {
		t.Fatalf("read back %+v", got)
	}
	if len(got.Photos) != 1 || len(got.Prompts) != 1 {
		t.Fatalf("photos/prompts not round-tripped: %+v", got)
	}
}

func TestSaveProfileReplaceKeepsCreatedAt(t *testing.T) {
	db := newMemDB()
	seedUser(t, db, "alice", "alice@campus.edu")
	svc := NewProfileService(memProfileStore{db}, db)
	ctx := context.Background()

	first, err := svc.SaveProfile(ctx, "alice", validInput())
	if err != nil {
		t.Fatalf("first save: %v", err)
	}

	update := validInput()
	update.Bio = "New semester, new bio."
	update.Photos = []string{"https://cdn.example.com/alice-2.jpg"}
	second, err := svc.SaveProfile(ctx, "alice", update)
	if err != nil {
		t.Fatalf("second save: %v", err)
	}

	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Fatal("replace changed the creation time")
	}
	got, err := svc.GetProfile(ctx, "alice")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Bio != "New semester, new bio." {
		t.Fatalf("bio not replaced: %q", got.Bio)
	}
	if len(got.Photos) != 1 || got.Photos[0] != "https://cdn.example.com/alice-2.jpg" {
		t.Fatalf("photos not replaced: %v", got.Photos)
	}
}

func TestGetProfileMissing(t *testing.T) {
	db := newMemDB()
	svc := NewProfileService(memProfileStore{db}, db)

	if _, err := svc.GetProfile(context.Background(), "ghost"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}
