package driver

import "fmt"

// Category groups drivers into pricing tiers used by roster rules.
type Category string

const (
	CategoryElite      Category = "ELITE"
	CategoryChallenger Category = "CHALLENGER"
	CategoryRookie     Category = "ROOKIE"
)

var AllCategories = map[Category]struct{}{
	CategoryElite:      {},
	CategoryChallenger: {},
	CategoryRookie:     {},
}

const maxCategoriesPerDriver = 2

// Driver is a selectable competitor in the season catalog.
type Driver struct {
	ID         string
	SeasonID   string
	Name       string
	TeamName   string
	Value      int64
	Categories []Category
	Country    string
	ImageURL   string
	Bio        string
}

func (d Driver) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("driver id is required")
	}
	if d.SeasonID == "" {
		return fmt.Errorf("driver season id is required")
	}
	if d.Name == "" {
		return fmt.Errorf("driver name is required")
	}
	if d.Value <= 0 {
		return fmt.Errorf("driver value must be greater than zero")
	}
	if len(d.Categories) == 0 {
		return fmt.Errorf("driver requires at least one category")
	}
	if len(d.Categories) > maxCategoriesPerDriver {
		return fmt.Errorf("driver cannot carry more than %d categories", maxCategoriesPerDriver)
	}
	seen := make(map[Category]struct{}, len(d.Categories))
	for _, c := range d.Categories {
		if _, ok := AllCategories[c]; !ok {
			return fmt.Errorf("invalid driver category: %s", c)
		}
		if _, dup := seen[c]; dup {
			return fmt.Errorf("duplicate driver category: %s", c)
		}
		seen[c] = struct{}{}
	}

	return nil
}

// HasCategory reports whether the driver carries the given category tag.
func (d Driver) HasCategory(c Category) bool {
	for _, have := range d.Categories {
		if have == c {
			return true
		}
	}
	return false
}
