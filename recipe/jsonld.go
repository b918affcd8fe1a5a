package recipe

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/use-agent/dinnermenu/models"
)

const recipeType = "Recipe"

// structuredFields is what the JSON-LD pass managed to fill. Any field may be
// empty; the caller decides which heuristics still need to run.
type structuredFields struct {
	Title        string
	Ingredients  []string
	Instructions []string
	PrepTime     *int
	CookTime     *int
	Servings     *int
	ImageURL     string
}

// fromStructuredData reads the first application/ld+json block only. A
// missing or blank block returns (nil, nil). Malformed JSON returns a
// *models.ParseError, which callers recover from.
func fromStructuredData(doc *goquery.Document) (*structuredFields, error) {
	raw := strings.TrimSpace(doc.Find(`script[type="application/ld+json"]`).First().Text())
	if raw == "" {
		return nil, nil
	}

	var payload any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, &models.ParseError{Source: "json-ld", Err: err}
	}

	node := findRecipeNode(payload)
	if node == nil {
		return nil, nil
	}

	f := &structuredFields{
		PrepTime: parseDuration(node["prepTime"]),
		CookTime: parseDuration(node["cookTime"]),
		Servings: parseServings(node["recipeYield"]),
		ImageURL: parseImage(node["image"]),
	}
	if name, ok := node["name"].(string); ok {
		f.Title = strings.TrimSpace(name)
	}
	if list, ok := node["recipeIngredient"].([]any); ok {
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				continue
			}
			f.Ingredients = append(f.Ingredients, strings.TrimSpace(s))
		}
	}
	if list, ok := node["recipeInstructions"].([]any); ok {
		f.Instructions = make([]string, 0, len(list))
		for _, item := range list {
			f.Instructions = append(f.Instructions, instructionText(item))
		}
	}
	return f, nil
}

// findRecipeNode accepts a single object or a top-level array and returns the
// first object whose @type is exactly "Recipe".
func findRecipeNode(payload any) map[string]any {
	switch v := payload.(type) {
	case map[string]any:
		if isRecipe(v) {
			return v
		}
	case []any:
		for _, item := range v {
			if obj, ok := item.(map[string]any); ok && isRecipe(obj) {
				return obj
			}
		}
	}
	return nil
}

func isRecipe(obj map[string]any) bool {
	t, ok := obj["@type"].(string)
	return ok && t == recipeType
}

// instructionText: strings as-is, HowToStep objects via their text field,
// anything else contributes an empty step.
func instructionText(item any) string {
	switch v := item.(type) {
	case string:
		return v
	case map[string]any:
		if t, ok := v["text"].(string); ok {
			return t
		}
	}
	return ""
}
