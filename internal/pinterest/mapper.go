package pinterest

import (
	"strings"

	"alquimia/internal/store"
)

// Assignment records where one pin landed and how confident the match was.
// Score is the number of category keywords found in the pin's text; zero
// means nothing matched and the pin fell through to the first category.
type Assignment struct {
	Pin         Pin    `json:"pin"`
	CategoryKey string `json:"category_key"`
	Score       int    `json:"score"`
}

// Assign picks the vision category whose keywords overlap the pin's title
// and description the most. Matching is case-insensitive substring overlap.
// Ties, including an all-zero score, resolve to the earliest category in the
// canonical enumeration order, so every pin always gets exactly one category
// and the result is deterministic. This is a best-effort heuristic; users
// reassign manually when it guesses wrong.
func Assign(pin Pin) Assignment {
	text := strings.ToLower(pin.Title + " " + pin.Description)

	best := store.VisionCategories[0].Key
	bestScore := -1
	for _, cat := range store.VisionCategories {
		score := 0
		for _, keyword := range cat.Keywords {
			if keyword == "" {
				continue
			}
			if strings.Contains(text, strings.ToLower(keyword)) {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = cat.Key, score
		}
	}
	if bestScore < 0 {
		bestScore = 0
	}
	return Assignment{Pin: pin, CategoryKey: best, Score: bestScore}
}

// MapPins assigns every pin to a category, in input order.
func MapPins(pins []Pin) []Assignment {
	out := make([]Assignment, 0, len(pins))
	for _, pin := range pins {
		out = append(out, Assign(pin))
	}
	return out
}
