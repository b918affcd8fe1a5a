package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/use-agent/dinnermenu/models"
	"github.com/use-agent/dinnermenu/render"
)

var pollInterval = 2 * time.Second

// apiCall sends a request to the recipes API and returns status and body.
func apiCall(ctx context.Context, client *http.Client, method, url string, payload any) (int, []byte, error) {
	var rdr io.Reader
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("marshal request: %w", err)
		}
		rdr = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, rdr)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, body, nil
}

// apiError formats a non-2xx API body as "[CODE] message".
func apiError(status int, body []byte) string {
	var detail models.ErrorDetail
	if err := json.Unmarshal(body, &detail); err != nil || detail.Code == "" {
		return fmt.Sprintf("API returned status %d", status)
	}
	return fmt.Sprintf("[%s] %s", detail.Code, detail.Message)
}

// pollBatch polls the job until its status is no longer "processing" or ctx
// is cancelled.
func pollBatch(ctx context.Context, client *http.Client, url string) (*models.BatchStatusResponse, error) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
			status, body, err := apiCall(ctx, client, http.MethodGet, url, nil)
			if err != nil {
				return nil, err
			}
			if status != http.StatusOK {
				return nil, fmt.Errorf("%s", apiError(status, body))
			}
			var job models.BatchStatusResponse
			if err := json.Unmarshal(body, &job); err != nil {
				return nil, fmt.Errorf("parse poll status: %w", err)
			}
			if job.Status != models.BatchProcessing {
				return &job, nil
			}
		}
	}
}

func handleExtractRecipe(apiURL string, rd *render.Renderer) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 60 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}
		format := request.GetString("format", "markdown")

		status, body, err := apiCall(ctx, client, http.MethodPost, apiURL+"/api/v1/scrape-recipe",
			models.ScrapeRecipeRequest{URL: url})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if status != http.StatusOK {
			return mcp.NewToolResultError(apiError(status, body)), nil
		}

		if format == "json" {
			return mcp.NewToolResultText(string(body)), nil
		}

		var rec models.ScrapedRecipe
		if err := json.Unmarshal(body, &rec); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}
		md, err := rd.Markdown(&rec)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(md), nil
	}
}

func handleBatchExtract(apiURL string, rd *render.Renderer) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 60 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		urls, err := request.RequireStringSlice("urls")
		if err != nil {
			return mcp.NewToolResultError("urls is required and must be an array of strings"), nil
		}

		status, body, err := apiCall(ctx, client, http.MethodPost, apiURL+"/api/v1/scrape-recipe/batch",
			models.BatchRequest{URLs: urls})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if status != http.StatusAccepted {
			return mcp.NewToolResultError(apiError(status, body)), nil
		}

		var accepted models.BatchResponse
		if err := json.Unmarshal(body, &accepted); err != nil || accepted.ID == "" {
			return mcp.NewToolResultError("batch job creation failed"), nil
		}

		job, err := pollBatch(ctx, client, apiURL+"/api/v1/scrape-recipe/batch/"+accepted.ID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("polling batch job failed: %v", err)), nil
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "Batch %s: %s (%d/%d completed)\n\n", job.ID, job.Status, job.Completed, job.Total)
		for i, item := range job.Results {
			switch {
			case item.Recipe != nil:
				md, err := rd.Markdown(item.Recipe)
				if err != nil {
					fmt.Fprintf(&sb, "--- [%d] %s: render error: %v ---\n\n", i+1, item.URL, err)
					continue
				}
				fmt.Fprintf(&sb, "--- [%d] %s ---\n%s\n\n", i+1, item.URL, md)
			case item.Error != nil:
				fmt.Fprintf(&sb, "--- [%d] FAILED %s: [%s] %s ---\n\n", i+1, item.URL, item.Error.Code, item.Error.Message)
			default:
				fmt.Fprintf(&sb, "--- [%d] %s: no result ---\n\n", i+1, item.URL)
			}
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}
