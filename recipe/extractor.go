// Package recipe turns a recipe page URL into a normalized ScrapedRecipe.
//
// Extraction tries the page's embedded JSON-LD first and falls back to fixed,
// ordered lists of CSS patterns for whatever the structured data left empty.
// An Extractor holds no state between calls and is safe for concurrent use.
package recipe

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/use-agent/dinnermenu/fetch"
	"github.com/use-agent/dinnermenu/models"
)

// Extractor runs the fetch, parse and extraction pipeline.
type Extractor struct {
	fetcher fetch.Fetcher
}

// New returns an Extractor that downloads pages through f.
func New(f fetch.Fetcher) *Extractor {
	return &Extractor{fetcher: f}
}

// Extract fetches rawURL and assembles a recipe from it.
//
// Flow:
//  1. Validate the URL. Nothing touches the network on failure.
//  2. Fetch. Any fetch error is returned as-is and skips all parsing.
//  3. Structured-data pass over the first JSON-LD block.
//  4. Heuristic passes for title, ingredients and instructions, each only
//     when the field is still empty.
//  5. Completeness gate: a title and at least one ingredient.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (*models.ScrapedRecipe, error) {
	// ── 1. Validate ─────────────────────────────────────────────────
	if err := validateURL(rawURL); err != nil {
		return nil, err
	}

	// ── 2. Fetch ────────────────────────────────────────────────────
	res, err := e.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		var me *models.Error
		if errors.As(err, &me) {
			return nil, err
		}
		return nil, models.NewFetchError(0, err.Error(), err)
	}

	doc, err := parseDocument(res.Body)
	if err != nil {
		return nil, models.NewError(models.ErrCodeInternal, models.MsgFetchFailedPlain, http.StatusInternalServerError, err)
	}

	r := &models.ScrapedRecipe{SourceURL: rawURL}

	// ── 3. Structured data ──────────────────────────────────────────
	sd, err := fromStructuredData(doc)
	if err != nil {
		slog.Warn("recipe: structured data unreadable, using heuristics",
			"url", rawURL, "error", err,
		)
	}
	if sd != nil {
		r.Title = sd.Title
		r.Ingredients = sd.Ingredients
		r.Instructions = sd.Instructions
		r.PrepTime = sd.PrepTime
		r.CookTime = sd.CookTime
		r.Servings = sd.Servings
		r.ImageURL = sd.ImageURL
	}

	// ── 4. Heuristics ───────────────────────────────────────────────
	if r.Title == "" {
		r.Title = heuristicTitle(doc)
	}
	if len(r.Ingredients) == 0 {
		r.Ingredients = heuristicIngredients(doc)
	}
	if len(r.Instructions) == 0 {
		r.Instructions = heuristicInstructions(doc)
	}
	if r.Instructions == nil {
		r.Instructions = []string{}
	}

	// ── 5. Gate ─────────────────────────────────────────────────────
	if !r.Complete() {
		slog.Info("recipe: extraction incomplete",
			"url", rawURL,
			"has_title", r.Title != "",
			"ingredients", len(r.Ingredients),
		)
		return nil, models.NewExtractionError()
	}

	slog.Debug("recipe: extracted",
		"url", rawURL,
		"structured", sd != nil,
		"ingredients", len(r.Ingredients),
		"instructions", len(r.Instructions),
	)
	return r, nil
}

// validateURL accepts absolute http and https URLs only.
func validateURL(rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return models.NewValidationError(models.MsgURLRequired)
	}
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return models.NewValidationError(models.MsgInvalidURL)
	}
	return nil
}
