package models

// ScrapedRecipe is the normalized result of extracting a recipe from a web
// page. It is built fresh for every call and never persisted here.
type ScrapedRecipe struct {
	Title        string   `json:"title"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`

	// PrepTime and CookTime are in minutes. Nil means unknown, not zero.
	PrepTime *int `json:"prepTime,omitempty"`
	CookTime *int `json:"cookTime,omitempty"`
	Servings *int `json:"servings,omitempty"`

	ImageURL  string `json:"imageUrl,omitempty"`
	SourceURL string `json:"sourceUrl"`
}

// Complete reports whether the recipe passes the completeness gate:
// a non-empty title and at least one ingredient.
func (r *ScrapedRecipe) Complete() bool {
	return r.Title != "" && len(r.Ingredients) > 0
}
