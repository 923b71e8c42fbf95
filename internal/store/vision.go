package store

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed categories.yaml
var categoriesYAML []byte

// VisionCategory is one theme of the vision board. The set of categories is
// closed: it is loaded once from the embedded table and never changes at
// runtime. Keywords are read-only reference data used by the keyword mapper.
type VisionCategory struct {
	Key         string   `yaml:"key" json:"key"`
	Title       string   `yaml:"title" json:"title"`
	Keywords    []string `yaml:"keywords" json:"keywords"`
	Affirmation string   `yaml:"affirmation" json:"affirmation"`
}

// ImageSource distinguishes how an image arrived on the board.
type ImageSource string

const (
	ImageSourceUpload   ImageSource = "upload"
	ImageSourceImported ImageSource = "imported"
)

// VisionImage references an image attached to a vision entry. Only the
// reference is kept; binary bytes never enter the store.
type VisionImage struct {
	Source ImageSource `json:"source"`
	URL    string      `json:"url"`
	Title  string      `json:"title,omitempty"`
}

// VisionEntry holds the user's intention text and attached images for one
// category. Entries exist for every category from session start; they are
// cleared, never deleted.
type VisionEntry struct {
	Category VisionCategory `json:"category"`
	Text     string         `json:"text"`
	Images   []VisionImage  `json:"images"`
}

// VisionCategories is the fixed enumeration of board categories, in canonical
// order.
var VisionCategories = mustLoadCategories()

func mustLoadCategories() []VisionCategory {
	var doc struct {
		Categories []VisionCategory `yaml:"categories"`
	}
	if err := yaml.Unmarshal(categoriesYAML, &doc); err != nil {
		panic(fmt.Sprintf("store: invalid embedded category table: %v", err))
	}
	if len(doc.Categories) == 0 {
		panic("store: embedded category table is empty")
	}
	return doc.Categories
}

// CategoryByKey looks up a vision category by its key.
func CategoryByKey(key string) (VisionCategory, bool) {
	for _, cat := range VisionCategories {
		if cat.Key == key {
			return cat, true
		}
	}
	return VisionCategory{}, false
}
