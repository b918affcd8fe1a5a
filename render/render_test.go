package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/use-agent/dinnermenu/models"
)

func intPtr(n int) *int { return &n }

func sampleRecipe() *models.ScrapedRecipe {
	return &models.ScrapedRecipe{
		Title:        "Lemon Risotto",
		Ingredients:  []string{"1 cup arborio rice", "1 lemon"},
		Instructions: []string{"Toast the rice in butter", "", "Stir in the lemon zest"},
		PrepTime:     intPtr(15),
		CookTime:     intPtr(90),
		Servings:     intPtr(4),
		ImageURL:     "/img/risotto.jpg",
		SourceURL:    "https://example.com/lemon-risotto",
	}
}

func TestHTML_EscapesAndOmits(t *testing.T) {
	rec := &models.ScrapedRecipe{
		Title:        "Mac & Cheese <best>",
		Ingredients:  []string{"macaroni"},
		Instructions: []string{},
		SourceURL:    "https://example.com/mac",
	}

	out, err := New().HTML(rec)
	require.NoError(t, err)
	assert.Contains(t, out, "<h1>Mac &amp; Cheese &lt;best&gt;</h1>")
	assert.Contains(t, out, "<li>macaroni</li>")
	assert.NotContains(t, out, "<img")
	assert.NotContains(t, out, "Instructions")
	assert.NotContains(t, out, "Prep:")
}

func TestMarkdown(t *testing.T) {
	md, err := New().Markdown(sampleRecipe())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(md, "# Lemon Risotto"), md)
	assert.Contains(t, md, "Prep: 15 min")
	assert.Contains(t, md, "Cook: 1 h 30 min")
	assert.Contains(t, md, "Serves: 4")
	assert.Contains(t, md, "## Ingredients")
	assert.Contains(t, md, "- 1 cup arborio rice")
	assert.Contains(t, md, "1. Toast the rice in butter")
	assert.Contains(t, md, "2. Stir in the lemon zest")
	assert.Contains(t, md, "https://example.com/img/risotto.jpg")
	assert.Contains(t, md, "Source: ")
	assert.Contains(t, md, "https://example.com/lemon-risotto")
}

func TestMinutes(t *testing.T) {
	assert.Equal(t, "0 min", minutes(0))
	assert.Equal(t, "45 min", minutes(45))
	assert.Equal(t, "2 h", minutes(120))
	assert.Equal(t, "1 h 30 min", minutes(90))
}
