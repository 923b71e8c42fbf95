package store

// Rating bounds for life-area and archetype scores.
const (
	RatingMin = 0
	RatingMax = 10

	// DefaultRating is the score every area and archetype starts at.
	DefaultRating = 5
)

// LifeAreas is the fixed, ordered set of life-wheel dimensions. The order is
// load-bearing: it drives display, export ordering, and deterministic
// tie-breaks in the aggregator.
var LifeAreas = []string{
	"Health",
	"Career",
	"Finances",
	"Relationships",
	"Family",
	"Spirituality",
	"Fun",
	"Growth",
	"Home",
	"Creativity",
}

// Archetypes is the fixed, ordered set of self-assessment archetypes.
var Archetypes = []string{
	"Sorceress",
	"Maiden",
	"Lover",
	"Mother",
	"Queen",
	"Wild Woman",
	"Warrior",
	"Wise Woman",
	"Mystic",
}

// ReflectionPrompts enumerates the free-text reflection fields. Each key is a
// stable identifier; the value is the question shown to the user.
var ReflectionPrompts = map[string]string{
	"achievements":        "What were your biggest achievements this year?",
	"challenges":          "What challenges did you overcome?",
	"lessons":             "What did you learn about yourself?",
	"gratitude":           "What are you grateful for this year?",
	"sorceress_presence":  "How is the Sorceress already present in your life?",
	"archetype_attention": "Which archetypes need more attention?",
	"rituals":             "What rituals do you want to create next year?",
	"creation_magic":      "How is your creation an expression of your transformative power?",
}

// ReflectionKeys lists the prompt keys in display order.
var ReflectionKeys = []string{
	"achievements",
	"challenges",
	"lessons",
	"gratitude",
	"sorceress_presence",
	"archetype_attention",
	"rituals",
	"creation_magic",
}

// PersonalYear is the numerology theme attached to the current planning
// period. Display data only; nothing computes it.
type PersonalYear struct {
	Number int    `json:"number"`
	Theme  string `json:"theme"`
	Period string `json:"period"`
}

// CurrentPersonalYear describes the planning period the board is built around.
var CurrentPersonalYear = PersonalYear{
	Number: 7,
	Theme:  "Spirituality, Inner Wisdom, Introspection",
	Period: "Nov 2025 - Nov 2026",
}

func isKnownArea(name string) bool {
	for _, area := range LifeAreas {
		if area == name {
			return true
		}
	}
	return false
}

func isKnownArchetype(name string) bool {
	for _, archetype := range Archetypes {
		if archetype == name {
			return true
		}
	}
	return false
}
