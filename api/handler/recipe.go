package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/dinnermenu/models"
)

// RecipeExtractor is the extraction capability the handlers depend on.
// *recipe.Extractor satisfies it.
type RecipeExtractor interface {
	Extract(ctx context.Context, url string) (*models.ScrapedRecipe, error)
}

// ScrapeRecipe returns a handler for POST /api/v1/scrape-recipe.
//
//  1. Bind { "url": ... }. An empty body counts as a missing URL.
//  2. Run the extractor bound to the request context.
//  3. 200 with the recipe, or the error's status with { code, message }.
func ScrapeRecipe(ex RecipeExtractor) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ScrapeRecipeRequest
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			respondError(c, models.NewValidationError("invalid request body: "+err.Error()))
			return
		}

		rec, err := ex.Extract(c.Request.Context(), req.URL)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, rec)
	}
}

// respondError writes err as { code, message } with the status it carries.
// Errors that are not *models.Error become a 500 INTERNAL_ERROR.
func respondError(c *gin.Context, err error) {
	c.JSON(statusAndDetail(err))
}

func statusAndDetail(err error) (int, *models.ErrorDetail) {
	var e *models.Error
	if !errors.As(err, &e) {
		slog.Error("unexpected error", "error", err)
		e = models.NewError(models.ErrCodeInternal, models.MsgFetchFailedPlain, http.StatusInternalServerError, err)
	}
	if e.Status >= http.StatusInternalServerError {
		slog.Warn("request failed", "code", e.Code, "status", e.Status, "error", err)
	}
	return e.Status, e.ToDetail()
}
