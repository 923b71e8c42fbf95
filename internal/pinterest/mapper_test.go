package pinterest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alquimia/internal/store"
)

func TestAssignMatchesKeywords(t *testing.T) {
	tests := []struct {
		name     string
		pin      Pin
		wantKey  string
		minScore int
	}{
		{
			name:     "health keywords in title",
			pin:      Pin{Title: "Gentle movement for pain management"},
			wantKey:  "health",
			minScore: 2,
		},
		{
			name:     "spirituality in description",
			pin:      Pin{Title: "mood board", Description: "moon work rituals for the new year"},
			wantKey:  "spirituality",
			minScore: 2,
		},
		{
			name:     "case insensitive",
			pin:      Pin{Title: "SELF-LOVE and healing patterns"},
			wantKey:  "self_love",
			minScore: 2,
		},
		{
			name:     "travel pin",
			pin:      Pin{Title: "Tuscany travel guide", Description: "cultural immersion in Italy"},
			wantKey:  "adventure",
			minScore: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Assign(tt.pin)
			assert.Equal(t, tt.wantKey, got.CategoryKey)
			assert.GreaterOrEqual(t, got.Score, tt.minScore)
		})
	}
}

func TestAssignNoMatchFallsBackToFirstCategory(t *testing.T) {
	got := Assign(Pin{Title: "xyzzy", Description: "plugh"})
	assert.Equal(t, store.VisionCategories[0].Key, got.CategoryKey)
	assert.Zero(t, got.Score)
}

func TestAssignEmptyPin(t *testing.T) {
	got := Assign(Pin{})
	assert.Equal(t, store.VisionCategories[0].Key, got.CategoryKey)
	assert.Zero(t, got.Score)
}

func TestAssignTieBreaksToEarliestCategory(t *testing.T) {
	// One keyword from each of two categories; the earlier one wins.
	first := store.VisionCategories[1]  // health
	second := store.VisionCategories[2] // spirituality
	pin := Pin{Title: first.Keywords[0] + " " + second.Keywords[0]}

	got := Assign(pin)
	assert.Equal(t, first.Key, got.CategoryKey)
	assert.Equal(t, 1, got.Score)
}

func TestAssignIsDeterministic(t *testing.T) {
	pin := Pin{Title: "rituals and self-care"}
	want := Assign(pin)
	for i := 0; i < 25; i++ {
		assert.Equal(t, want, Assign(pin))
	}
}

func TestMapPinsPreservesOrder(t *testing.T) {
	pins := []Pin{
		{ID: "1", Title: "moon work"},
		{ID: "2", Title: "financial growth and prosperity"},
		{ID: "3", Title: "nothing relevant"},
	}

	got := MapPins(pins)
	require.Len(t, got, 3)
	assert.Equal(t, "1", got[0].Pin.ID)
	assert.Equal(t, "spirituality", got[0].CategoryKey)
	assert.Equal(t, "abundance", got[1].CategoryKey)
	assert.Equal(t, store.VisionCategories[0].Key, got[2].CategoryKey)
}
