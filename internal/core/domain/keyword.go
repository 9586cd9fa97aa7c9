package domain

import (
	"fmt"
	"slices"
	"strings"
)

// KeywordCategory is a named group of related keywords.
// Keywords are case-sensitive and unique within a category.
type KeywordCategory struct {
	// ID uniquely identifies the category across the collection.
	ID string `json:"id"`

	// Name is the display label.
	Name string `json:"name"`

	// Keywords is the keyword set, kept in insertion order.
	Keywords []string `json:"keywords"`
}

// Seed category IDs.
const (
	CategoryIDMergers      = "ma"
	CategoryIDRestructures = "business"
)

// DefaultCategories returns the seed collection used when nothing is
// persisted or the persisted entry is unusable.
func DefaultCategories() []KeywordCategory {
	return []KeywordCategory{
		{
			ID:       CategoryIDMergers,
			Name:     "M&A全般",
			Keywords: []string{"買収", "合併", "M&A", "資本提携", "TOB"},
		},
		{
			ID:       CategoryIDRestructures,
			Name:     "事業再編",
			Keywords: []string{"株式取得", "子会社化", "経営統合", "事業譲渡", "出資"},
		},
	}
}

// CloneCategories returns a deep copy of the collection.
func CloneCategories(cats []KeywordCategory) []KeywordCategory {
	if cats == nil {
		return nil
	}
	out := make([]KeywordCategory, len(cats))
	for i, c := range cats {
		out[i] = KeywordCategory{
			ID:       c.ID,
			Name:     c.Name,
			Keywords: slices.Clone(c.Keywords),
		}
	}
	return out
}

// FindCategory returns the category with the given ID.
func FindCategory(cats []KeywordCategory, categoryID string) (KeywordCategory, bool) {
	for _, c := range cats {
		if c.ID == categoryID {
			return c, true
		}
	}
	return KeywordCategory{}, false
}

// AddKeyword returns a copy of cats with keyword appended to the category
// identified by categoryID. The keyword is trimmed first. The collection is
// returned unchanged when the keyword is blank, the category does not exist,
// or the category already holds the exact keyword.
func AddKeyword(cats []KeywordCategory, categoryID, keyword string) []KeywordCategory {
	out := CloneCategories(cats)
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return out
	}
	for i := range out {
		if out[i].ID != categoryID {
			continue
		}
		if !slices.Contains(out[i].Keywords, keyword) {
			out[i].Keywords = append(out[i].Keywords, keyword)
		}
		break
	}
	return out
}

// RemoveKeyword returns a copy of cats without the exact keyword in the
// category identified by categoryID.
func RemoveKeyword(cats []KeywordCategory, categoryID, keyword string) []KeywordCategory {
	out := CloneCategories(cats)
	for i := range out {
		if out[i].ID != categoryID {
			continue
		}
		out[i].Keywords = slices.DeleteFunc(out[i].Keywords, func(k string) bool {
			return k == keyword
		})
		break
	}
	return out
}

// AddCategory returns a copy of cats with a new empty category appended.
// The name is trimmed first; blank names and IDs already in use leave the
// collection unchanged.
func AddCategory(cats []KeywordCategory, name, id string) []KeywordCategory {
	out := CloneCategories(cats)
	name = strings.TrimSpace(name)
	if name == "" || id == "" {
		return out
	}
	if _, exists := FindCategory(out, id); exists {
		return out
	}
	return append(out, KeywordCategory{
		ID:       id,
		Name:     name,
		Keywords: []string{},
	})
}

// RemoveCategory returns a copy of cats without the category identified by
// categoryID.
func RemoveCategory(cats []KeywordCategory, categoryID string) []KeywordCategory {
	out := CloneCategories(cats)
	return slices.DeleteFunc(out, func(c KeywordCategory) bool {
		return c.ID == categoryID
	})
}

// AllKeywords flattens the collection into a single list in category order.
// Duplicates across categories are kept; BuildQuery deduplicates.
func AllKeywords(cats []KeywordCategory) []string {
	var out []string
	for _, c := range cats {
		out = append(out, c.Keywords...)
	}
	return out
}

// KeywordSets returns each category's keywords as a separate set.
func KeywordSets(cats []KeywordCategory) [][]string {
	sets := make([][]string, 0, len(cats))
	for _, c := range cats {
		sets = append(sets, c.Keywords)
	}
	return sets
}

// CategoriesEqual reports whether two collections hold the same categories
// in the same order.
func CategoriesEqual(a, b []KeywordCategory) bool {
	return slices.EqualFunc(a, b, func(x, y KeywordCategory) bool {
		return x.ID == y.ID && x.Name == y.Name && slices.Equal(x.Keywords, y.Keywords)
	})
}

// ValidateCategories checks the collection invariants: every category has a
// non-empty ID and name, IDs are unique, and keywords are unique and
// non-blank within each category.
func ValidateCategories(cats []KeywordCategory) error {
	seen := make(map[string]struct{}, len(cats))
	for i, c := range cats {
		if c.ID == "" {
			return fmt.Errorf("%w: category %d has no id", ErrInvalidInput, i)
		}
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("%w: category %q has no name", ErrInvalidInput, c.ID)
		}
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("%w: duplicate category id %q", ErrInvalidInput, c.ID)
		}
		seen[c.ID] = struct{}{}

		kws := make(map[string]struct{}, len(c.Keywords))
		for _, k := range c.Keywords {
			if strings.TrimSpace(k) == "" {
				return fmt.Errorf("%w: category %q has a blank keyword", ErrInvalidInput, c.ID)
			}
			if _, dup := kws[k]; dup {
				return fmt.Errorf("%w: category %q repeats keyword %q", ErrInvalidInput, c.ID, k)
			}
			kws[k] = struct{}{}
		}
	}
	return nil
}
