package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/use-agent/dinnermenu/config"
	"github.com/use-agent/dinnermenu/models"
	"github.com/use-agent/dinnermenu/webhook"
)

// Batches owns the in-memory batch job registry and runs jobs in the
// background. Jobs expire cfg.JobTTL after creation.
type Batches struct {
	ex       RecipeExtractor
	cfg      config.BatchConfig
	notifier *webhook.Notifier

	mu   sync.RWMutex
	jobs map[string]*models.BatchStatusResponse
}

// NewBatches creates an empty registry. notifier may be nil when webhooks
// are not needed.
func NewBatches(ex RecipeExtractor, cfg config.BatchConfig, notifier *webhook.Notifier) *Batches {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}
	if cfg.MaxURLs <= 0 {
		cfg.MaxURLs = 50
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = time.Hour
	}
	if notifier == nil {
		notifier = webhook.NewNotifier()
	}
	return &Batches{
		ex:       ex,
		cfg:      cfg,
		notifier: notifier,
		jobs:     make(map[string]*models.BatchStatusResponse),
	}
}

// Run evicts expired jobs every 5 minutes until ctx is cancelled.
func (b *Batches) Run(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := b.Sweep(now); n > 0 {
				slog.Debug("batch jobs expired", "count", n)
			}
		}
	}
}

// Sweep deletes jobs created more than JobTTL before now and returns how
// many were removed.
func (b *Batches) Sweep(now time.Time) int {
	cutoff := now.Add(-b.cfg.JobTTL)
	b.mu.Lock()
	defer b.mu.Unlock()
	removed := 0
	for id, job := range b.jobs {
		if job.CreatedAt.Before(cutoff) {
			delete(b.jobs, id)
			removed++
		}
	}
	return removed
}

// Active counts jobs still processing.
func (b *Batches) Active() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	n := 0
	for _, job := range b.jobs {
		if job.Status == models.BatchProcessing {
			n++
		}
	}
	return n
}

// Get returns a copy of the job, safe to serialise while the job runs.
func (b *Batches) Get(id string) (models.BatchStatusResponse, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	job, ok := b.jobs[id]
	if !ok {
		return models.BatchStatusResponse{}, false
	}
	snap := *job
	snap.Results = append([]models.BatchItem(nil), job.Results...)
	return snap, true
}

// Start registers a job for urls and processes it in the background.
func (b *Batches) Start(req models.BatchRequest) models.BatchResponse {
	job := &models.BatchStatusResponse{
		ID:        uuid.NewString(),
		Status:    models.BatchProcessing,
		Total:     len(req.URLs),
		Results:   make([]models.BatchItem, len(req.URLs)),
		CreatedAt: time.Now(),
	}
	for i, u := range req.URLs {
		job.Results[i].URL = u
	}

	b.mu.Lock()
	b.jobs[job.ID] = job
	b.mu.Unlock()

	go b.process(job.ID, req)

	return models.BatchResponse{ID: job.ID, Status: job.Status, Total: job.Total}
}

// process extracts every URL with at most cfg.Concurrency in flight. Results
// keep request order.
func (b *Batches) process(id string, req models.BatchRequest) {
	g := new(errgroup.Group)
	g.SetLimit(b.cfg.Concurrency)

	for i, u := range req.URLs {
		g.Go(func() error {
			item := models.BatchItem{URL: u}
			rec, err := b.ex.Extract(context.Background(), u)
			if err != nil {
				_, item.Error = statusAndDetail(err)
			} else {
				item.Recipe = rec
			}
			b.record(id, i, item)
			return nil
		})
	}
	_ = g.Wait()

	final, ok := b.finish(id)
	if !ok {
		return
	}

	slog.Info("batch job finished",
		"id", final.ID,
		"status", final.Status,
		"total", final.Total,
	)

	if req.WebhookURL != "" {
		b.notifier.DeliverAsync(req.WebhookURL, req.WebhookSecret, &webhook.Event{
			Type:      webhook.EventBatchCompleted,
			JobID:     final.ID,
			Timestamp: time.Now().Unix(),
			Data:      final,
		}, nil)
	}
}

func (b *Batches) record(id string, idx int, item models.BatchItem) {
	b.mu.Lock()
	defer b.mu.Unlock()
	job, ok := b.jobs[id]
	if !ok {
		return
	}
	job.Results[idx] = item
	job.Completed++
}

// finish settles the final status: all failed → failed, some → partial.
func (b *Batches) finish(id string) (models.BatchStatusResponse, bool) {
	b.mu.Lock()
	job, ok := b.jobs[id]
	if ok {
		failed := 0
		for _, item := range job.Results {
			if item.Error != nil {
				failed++
			}
		}
		switch {
		case failed == job.Total:
			job.Status = models.BatchFailed
		case failed > 0:
			job.Status = models.BatchPartial
		default:
			job.Status = models.BatchCompleted
		}
	}
	b.mu.Unlock()

	if !ok {
		return models.BatchStatusResponse{}, false
	}
	return b.Get(id)
}

// PostBatch returns a handler for POST /api/v1/scrape-recipe/batch.
func PostBatch(b *Batches) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.BatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, models.NewValidationError("invalid request body: "+err.Error()))
			return
		}
		if len(req.URLs) == 0 {
			respondError(c, models.NewValidationError("at least one URL is required"))
			return
		}
		if len(req.URLs) > b.cfg.MaxURLs {
			respondError(c, models.NewValidationError(fmt.Sprintf("maximum %d URLs per batch", b.cfg.MaxURLs)))
			return
		}
		if req.WebhookURL != "" {
			u, err := url.Parse(req.WebhookURL)
			if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
				respondError(c, models.NewValidationError("webhook_url must be an absolute http or https URL"))
				return
			}
		}

		c.JSON(http.StatusAccepted, b.Start(req))
	}
}

// GetBatch returns a handler for GET /api/v1/scrape-recipe/batch/:id.
func GetBatch(b *Batches) gin.HandlerFunc {
	return func(c *gin.Context) {
		job, ok := b.Get(c.Param("id"))
		if !ok {
			respondError(c, models.NewError(models.ErrCodeNotFound, "batch job not found", http.StatusNotFound, nil))
			return
		}
		c.JSON(http.StatusOK, job)
	}
}
