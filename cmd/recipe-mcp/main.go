package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/use-agent/dinnermenu/render"
)

func main() {
	apiURL := os.Getenv("RECIPES_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8080"
	}

	s := server.NewMCPServer(
		"recipes",
		"1.0.0",
		server.WithToolCapabilities(false),
	)
	rd := render.New()

	extractTool := mcp.NewTool("extract_recipe",
		mcp.WithDescription("Extract a recipe (title, ingredients, instructions, timings, servings, image) from a recipe web page. Reads schema.org JSON-LD when present and falls back to page markup."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The URL of the recipe page"),
		),
		mcp.WithString("format",
			mcp.Description("Output format: 'markdown' (default) or 'json'"),
			mcp.Enum("markdown", "json"),
		),
	)
	s.AddTool(extractTool, handleExtractRecipe(apiURL, rd))

	batchTool := mcp.NewTool("batch_extract_recipes",
		mcp.WithDescription("Extract recipes from several URLs in parallel. Each URL succeeds or fails independently."),
		mcp.WithArray("urls",
			mcp.Required(),
			mcp.Description("List of recipe page URLs"),
		),
	)
	s.AddTool(batchTool, handleBatchExtract(apiURL, rd))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}
