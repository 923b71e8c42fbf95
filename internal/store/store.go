// Package store holds all mutable user data for the lifetime of one
// interactive session. There is no cross-session durability: a new Store
// starts from the documented defaults and everything is gone when the
// process exits.
//
// The schema is fixed: field names, rating ranges, and category sets are
// enumerated in fields.go and categories.yaml and validated here at the
// boundary. Out-of-range ratings are rejected, not clamped.
package store

import (
	"fmt"
	"sync"
	"time"

	"alquimia/internal/app"
)

// ArchetypeRating pairs a presence rating with its free-text reflection.
type ArchetypeRating struct {
	Rating int    `json:"rating"`
	Note   string `json:"note"`
}

// Store is the per-session state container. All access goes through its
// methods; a single RWMutex gives the single-writer discipline the data
// volume calls for (tens of fields, dozens of goals).
type Store struct {
	mu sync.RWMutex

	areaScores      map[string]int
	archetypeScores map[string]ArchetypeRating
	reflections     map[string]string
	vision          map[string]*VisionEntry
	goals           []Goal
	checkIns        []CheckIn

	createdAt time.Time
}

// New creates a session store populated with defaults: every life area and
// archetype at DefaultRating, every reflection and vision entry empty.
func New() *Store {
	s := &Store{
		areaScores:      make(map[string]int, len(LifeAreas)),
		archetypeScores: make(map[string]ArchetypeRating, len(Archetypes)),
		reflections:     make(map[string]string, len(ReflectionKeys)),
		vision:          make(map[string]*VisionEntry, len(VisionCategories)),
		createdAt:       time.Now(),
	}
	for _, area := range LifeAreas {
		s.areaScores[area] = DefaultRating
	}
	for _, archetype := range Archetypes {
		s.archetypeScores[archetype] = ArchetypeRating{Rating: DefaultRating}
	}
	for _, key := range ReflectionKeys {
		s.reflections[key] = ""
	}
	for _, cat := range VisionCategories {
		s.vision[cat.Key] = &VisionEntry{Category: cat}
	}
	return s
}

// CreatedAt reports when this session store was initialized.
func (s *Store) CreatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.createdAt
}

func validRating(v int) bool {
	return v >= RatingMin && v <= RatingMax
}

// AreaScore returns the current rating for a life area.
func (s *Store) AreaScore(area string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	score, ok := s.areaScores[area]
	if !ok {
		return 0, app.ValidationError(fmt.Sprintf("unknown life area %q", area))
	}
	return score, nil
}

// SetAreaScore overwrites the rating for a life area. Values outside
// [RatingMin, RatingMax] are rejected and the stored value is unchanged.
func (s *Store) SetAreaScore(area string, rating int) error {
	if !validRating(rating) {
		return app.ValidationError(fmt.Sprintf("rating %d out of range [%d,%d]", rating, RatingMin, RatingMax))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.areaScores[area]; !ok {
		return app.ValidationError(fmt.Sprintf("unknown life area %q", area))
	}
	s.areaScores[area] = rating
	return nil
}

// AreaScores returns a copy of all life-area ratings.
func (s *Store) AreaScores() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyIntMap(s.areaScores)
}

// Archetype returns the rating and note for one archetype.
func (s *Store) Archetype(name string) (ArchetypeRating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rating, ok := s.archetypeScores[name]
	if !ok {
		return ArchetypeRating{}, app.ValidationError(fmt.Sprintf("unknown archetype %q", name))
	}
	return rating, nil
}

// SetArchetypeScore overwrites the presence rating for an archetype.
func (s *Store) SetArchetypeScore(name string, rating int) error {
	if !validRating(rating) {
		return app.ValidationError(fmt.Sprintf("rating %d out of range [%d,%d]", rating, RatingMin, RatingMax))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.archetypeScores[name]
	if !ok {
		return app.ValidationError(fmt.Sprintf("unknown archetype %q", name))
	}
	current.Rating = rating
	s.archetypeScores[name] = current
	return nil
}

// SetArchetypeNote overwrites the free-text reflection for an archetype.
func (s *Store) SetArchetypeNote(name, note string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.archetypeScores[name]
	if !ok {
		return app.ValidationError(fmt.Sprintf("unknown archetype %q", name))
	}
	current.Note = note
	s.archetypeScores[name] = current
	return nil
}

// ArchetypeRatings returns a copy of all archetype ratings.
func (s *Store) ArchetypeRatings() map[string]ArchetypeRating {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]ArchetypeRating, len(s.archetypeScores))
	for k, v := range s.archetypeScores {
		out[k] = v
	}
	return out
}

// Reflection returns the answer text for a reflection prompt. Unset prompts
// return the empty string, never an error, as long as the key is known.
func (s *Store) Reflection(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.reflections[key]
	if !ok {
		return "", app.ValidationError(fmt.Sprintf("unknown reflection prompt %q", key))
	}
	return text, nil
}

// SetReflection overwrites the answer for a reflection prompt.
func (s *Store) SetReflection(key, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reflections[key]; !ok {
		return app.ValidationError(fmt.Sprintf("unknown reflection prompt %q", key))
	}
	s.reflections[key] = text
	return nil
}

// Reflections returns a copy of all reflection answers.
func (s *Store) Reflections() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.reflections))
	for k, v := range s.reflections {
		out[k] = v
	}
	return out
}

// VisionEntry returns a copy of the entry for one category.
func (s *Store) VisionEntry(categoryKey string) (VisionEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.vision[categoryKey]
	if !ok {
		return VisionEntry{}, app.ValidationError(fmt.Sprintf("unknown vision category %q", categoryKey))
	}
	return copyVisionEntry(entry), nil
}

// SetVisionText overwrites the intention text for one category.
func (s *Store) SetVisionText(categoryKey, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.vision[categoryKey]
	if !ok {
		return app.ValidationError(fmt.Sprintf("unknown vision category %q", categoryKey))
	}
	entry.Text = text
	return nil
}

// AttachVisionImage appends an image reference to a category's entry.
func (s *Store) AttachVisionImage(categoryKey string, img VisionImage) error {
	if img.URL == "" {
		return app.ValidationError("image url is required")
	}
	if img.Source != ImageSourceUpload && img.Source != ImageSourceImported {
		return app.ValidationError(fmt.Sprintf("unknown image source %q", img.Source))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.vision[categoryKey]
	if !ok {
		return app.ValidationError(fmt.Sprintf("unknown vision category %q", categoryKey))
	}
	entry.Images = append(entry.Images, img)
	return nil
}

// ClearVisionEntry resets a category's text and images. The category itself
// always remains: the set is closed.
func (s *Store) ClearVisionEntry(categoryKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.vision[categoryKey]
	if !ok {
		return app.ValidationError(fmt.Sprintf("unknown vision category %q", categoryKey))
	}
	entry.Text = ""
	entry.Images = nil
	return nil
}

// VisionEntries returns copies of every entry in canonical category order.
func (s *Store) VisionEntries() []VisionEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.visionEntriesLocked()
}

func (s *Store) visionEntriesLocked() []VisionEntry {
	out := make([]VisionEntry, 0, len(VisionCategories))
	for _, cat := range VisionCategories {
		out = append(out, copyVisionEntry(s.vision[cat.Key]))
	}
	return out
}

// Snapshot captures a deep copy of the full session state. Derived views
// (dashboard, exports) are always recomputed from a fresh snapshot; nothing
// caches one.
type Snapshot struct {
	TakenAt     time.Time                  `json:"taken_at"`
	AreaScores  map[string]int             `json:"area_scores"`
	Archetypes  map[string]ArchetypeRating `json:"archetypes"`
	Reflections map[string]string          `json:"reflections"`
	Vision      []VisionEntry              `json:"vision"`
	Goals       []Goal                     `json:"goals"`
	CheckIns    []CheckIn                  `json:"check_ins"`
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		TakenAt:     time.Now(),
		AreaScores:  copyIntMap(s.areaScores),
		Archetypes:  copyArchetypeMap(s.archetypeScores),
		Reflections: copyStringMap(s.reflections),
		Vision:      s.visionEntriesLocked(),
		Goals:       copyGoals(s.goals),
		CheckIns:    copyCheckIns(s.checkIns),
	}
}

func copyIntMap(in map[string]int) map[string]int {
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func copyStringMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func copyArchetypeMap(in map[string]ArchetypeRating) map[string]ArchetypeRating {
	out := make(map[string]ArchetypeRating, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func copyVisionEntry(entry *VisionEntry) VisionEntry {
	out := VisionEntry{Category: entry.Category, Text: entry.Text}
	if len(entry.Images) > 0 {
		out.Images = append([]VisionImage(nil), entry.Images...)
	}
	return out
}

func copyGoals(goals []Goal) []Goal {
	return append([]Goal(nil), goals...)
}

func copyCheckIns(checkIns []CheckIn) []CheckIn {
	out := make([]CheckIn, len(checkIns))
	for i, c := range checkIns {
		out[i] = CheckIn{At: c.At, Scores: copyIntMap(c.Scores), Average: c.Average}
	}
	return out
}
