package recipe

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// pattern mines one field from the document. An empty result means "try the
// next pattern".
type pattern func(doc *goquery.Document) []string

// firstMatch evaluates patterns in order and returns the first non-empty
// result. Later patterns are never run once one succeeds.
func firstMatch(doc *goquery.Document, patterns []pattern) []string {
	for _, p := range patterns {
		if out := p(doc); len(out) > 0 {
			return out
		}
	}
	return nil
}

// textsLongerThan collects the trimmed text of every element matching sel
// whose length in runes exceeds minLen, in document order.
func textsLongerThan(sel cascadia.Selector, minLen int) pattern {
	return func(doc *goquery.Document) []string {
		var out []string
		doc.FindMatcher(sel).Each(func(_ int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			if text != "" && utf8.RuneCountInString(text) > minLen {
				out = append(out, text)
			}
		})
		return out
	}
}

// The class-substring patterns leave out the exact .ingredients and
// .instructions lists; their items are reached by the "li" patterns below.

var (
	ingredientPatterns = []pattern{
		textsLongerThan(cascadia.MustCompile(`.recipe-ingredient`), 2),
		textsLongerThan(cascadia.MustCompile(`[class*="ingredient"]:not(.ingredients)`), 2),
		textsLongerThan(cascadia.MustCompile(`li[itemprop="recipeIngredient"]`), 2),
		textsLongerThan(cascadia.MustCompile(`.ingredients li`), 2),
	}

	instructionPatterns = []pattern{
		textsLongerThan(cascadia.MustCompile(`.recipe-instruction`), 10),
		textsLongerThan(cascadia.MustCompile(`[class*="instruction"]:not(.instructions)`), 10),
		textsLongerThan(cascadia.MustCompile(`li[itemprop="recipeInstructions"]`), 10),
		textsLongerThan(cascadia.MustCompile(`.instructions li`), 10),
		textsLongerThan(cascadia.MustCompile(`.directions li`), 10),
	}

	// Last resort: free-form paragraphs inside method-like containers.
	paragraphInstructions = textsLongerThan(cascadia.MustCompile(
		`[class*="instruction"] p, [class*="direction"] p, [class*="method"] p`,
	), 10)

	titleSelectors = []cascadia.Selector{
		cascadia.MustCompile(`h1`),
		cascadia.MustCompile(`[class*="recipe-title"]`),
		cascadia.MustCompile(`title`),
	}
)

// heuristicTitle returns the trimmed text of the first h1, then the first
// recipe-title element, then the document title.
func heuristicTitle(doc *goquery.Document) string {
	for _, sel := range titleSelectors {
		if t := strings.TrimSpace(doc.FindMatcher(sel).First().Text()); t != "" {
			return t
		}
	}
	return ""
}

func heuristicIngredients(doc *goquery.Document) []string {
	return firstMatch(doc, ingredientPatterns)
}

func heuristicInstructions(doc *goquery.Document) []string {
	if out := firstMatch(doc, instructionPatterns); len(out) > 0 {
		return out
	}
	return paragraphInstructions(doc)
}
