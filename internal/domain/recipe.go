// Package domain defines the core types and interfaces for the recipe
// diary client. All other packages depend on domain; domain depends on
// nothing.
package domain

// Recipe is a structured recipe as returned by the processing backend.
// ID is empty for a freshly generated (unsaved) recipe and set for any
// persisted one. The three list fields are order-significant and must
// round-trip exactly.
type Recipe struct {
	ID           string   `json:"id,omitempty"`
	Name         string   `json:"recipe_name"`
	Author       string   `json:"author,omitempty"`
	Description  string   `json:"description,omitempty"`
	PrepTime     string   `json:"prep_time,omitempty"`
	CookTime     string   `json:"cook_time,omitempty"`
	Yield        string   `json:"yield,omitempty"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Tips         []string `json:"tips,omitempty"`
	CreatedAt    string   `json:"created_at,omitempty"`
}

// Clone returns a deep, independent copy of the recipe.
func (r *Recipe) Clone() *Recipe {
	if r == nil {
		return nil
	}
	out := *r
	out.Ingredients = append([]string(nil), r.Ingredients...)
	out.Instructions = append([]string(nil), r.Instructions...)
	out.Tips = append([]string(nil), r.Tips...)
	return &out
}

// Equal reports whether two recipes carry identical field values,
// including list order.
func (r *Recipe) Equal(other *Recipe) bool {
	if r == nil || other == nil {
		return r == other
	}
	if r.ID != other.ID || r.Name != other.Name || r.Author != other.Author ||
		r.Description != other.Description || r.PrepTime != other.PrepTime ||
		r.CookTime != other.CookTime || r.Yield != other.Yield ||
		r.CreatedAt != other.CreatedAt {
		return false
	}
	return equalStrings(r.Ingredients, other.Ingredients) &&
		equalStrings(r.Instructions, other.Instructions) &&
		equalStrings(r.Tips, other.Tips)
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ProcessResult is the outcome of a successful process-recipe call.
// CreditsRemaining is the server-reported balance, which is always
// authoritative over any locally displayed value.
type ProcessResult struct {
	Recipe           *Recipe
	CreditsRemaining int
	HasCredits       bool // false when the server omitted the balance
}
