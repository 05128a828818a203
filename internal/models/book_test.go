package models_test

import (
	"testing"

	"github.com/code-ex0/bibliotheca/internal/models"
)

func TestNewBookDefaults(t *testing.T) {
	b := models.NewBook{
		Title:  "Dune",
		Author: "Frank Herbert",
		Year:   1965,
		Resume: "Spice and sand",
	}.Book()

	if !b.Availability {
		t.Error("Availability = false, want true on creation")
	}
	if b.GenderID != models.NoGenreID {
		t.Errorf("GenderID = %q, want sentinel %q", b.GenderID, models.NoGenreID)
	}
	if b.HasGenre() {
		t.Error("HasGenre() = true for a fresh book, want false")
	}
}

func TestHasGenre(t *testing.T) {
	tests := []struct {
		name     string
		genderID string
		want     bool
	}{
		{"Assigned", "6543a1b2c3d4e5f601234567", true},
		{"Sentinel", models.NoGenreID, false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := models.Book{GenderID: tt.genderID}
			if got := b.HasGenre(); got != tt.want {
				t.Errorf("HasGenre() = %v, want %v", got, tt.want)
			}
		})
	}
}
