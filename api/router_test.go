package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/use-agent/dinnermenu/api/handler"
	"github.com/use-agent/dinnermenu/approval"
	"github.com/use-agent/dinnermenu/config"
	"github.com/use-agent/dinnermenu/models"
)

type fixedExtractor struct{}

func (fixedExtractor) Extract(_ context.Context, url string) (*models.ScrapedRecipe, error) {
	return &models.ScrapedRecipe{
		Title:        "Flatbread",
		Ingredients:  []string{"flour", "water"},
		Instructions: []string{},
		SourceURL:    url,
	}, nil
}

func testConfig() *config.Config {
	cfg := config.Load()
	cfg.Server.Mode = "test"
	cfg.RateLimit = config.RateLimitConfig{RequestsPerSecond: 0.001, Burst: 1}
	return cfg
}

func TestRouter_Routes(t *testing.T) {
	ex := fixedExtractor{}
	r := NewRouter(ex, handler.NewBatches(ex, config.BatchConfig{}, nil), approval.New(0), testConfig(), time.Now())

	post := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/scrape-recipe",
			strings.NewReader(`{"url":"https://example.com/bread"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, post())
	assert.Equal(t, http.StatusTooManyRequests, post())

	// Health is never rate limited.
	for range 3 {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_MenuRoutes(t *testing.T) {
	ex := fixedExtractor{}
	cfg := testConfig()
	cfg.RateLimit = config.RateLimitConfig{RequestsPerSecond: 100, Burst: 100}
	r := NewRouter(ex, handler.NewBatches(ex, config.BatchConfig{}, nil), approval.New(0), cfg, time.Now())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/menus",
		strings.NewReader(`{"week_start_date":"2026-03-02","created_by":"sam"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/approvals/unknown", nil))
	assert.Equal(t, http.StatusGone, w.Code)
}
