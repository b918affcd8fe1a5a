// Package approval keeps weekly menus and their single-use approval tokens in
// memory. A menu moves draft → pending_approval when an approval is
// requested, then to approved or needs_changes when the approver answers
// through the token. needs_changes menus may be sent for approval again.
package approval

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/use-agent/dinnermenu/models"
)

// DefaultTokenTTL is how long an approver has to answer.
const DefaultTokenTTL = 7 * 24 * time.Hour

type menuEntry struct {
	menu    models.WeeklyMenu
	history []models.StatusChange
}

// Store is an in-memory menu and token registry. It is safe for concurrent
// use.
type Store struct {
	ttl time.Duration
	now func() time.Time

	mu     sync.RWMutex
	menus  map[string]*menuEntry
	tokens map[string]*models.ApprovalToken
}

// New creates an empty store whose tokens expire ttl after issue. A ttl <= 0
// means DefaultTokenTTL.
func New(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Store{
		ttl:    ttl,
		now:    time.Now,
		menus:  make(map[string]*menuEntry),
		tokens: make(map[string]*models.ApprovalToken),
	}
}

// CreateMenu registers a draft menu for the week starting weekStart.
func (s *Store) CreateMenu(weekStart, createdBy string) (models.MenuResponse, error) {
	if _, err := time.Parse(time.DateOnly, weekStart); err != nil {
		return models.MenuResponse{}, models.NewValidationError("week_start_date must be a YYYY-MM-DD date")
	}
	now := s.now()
	e := &menuEntry{menu: models.WeeklyMenu{
		ID:            uuid.NewString(),
		WeekStartDate: weekStart,
		CreatedBy:     createdBy,
		Status:        models.MenuDraft,
		CreatedAt:     now,
		UpdatedAt:     now,
	}}
	e.history = append(e.history, models.StatusChange{Status: models.MenuDraft, ChangedBy: createdBy, ChangedAt: now})

	s.mu.Lock()
	s.menus[e.menu.ID] = e
	s.mu.Unlock()
	return e.snapshot(), nil
}

// Menu returns a copy of the menu and its status history.
func (s *Store) Menu(id string) (models.MenuResponse, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.menus[id]
	if !ok {
		return models.MenuResponse{}, false
	}
	return e.snapshot(), true
}

// RequestApproval issues a fresh token for a draft or needs_changes menu and
// moves it to pending_approval.
func (s *Store) RequestApproval(menuID, requestedBy string) (models.ApprovalToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.menus[menuID]
	if !ok {
		return models.ApprovalToken{}, models.NewNotFoundError("menu not found")
	}
	if st := e.menu.Status; st != models.MenuDraft && st != models.MenuNeedsChanges {
		return models.ApprovalToken{}, models.NewConflictError(fmt.Sprintf("cannot request approval for a %s menu", st))
	}

	now := s.now()
	tok := &models.ApprovalToken{
		Token:     newToken(now),
		MenuID:    menuID,
		Status:    models.TokenPending,
		ExpiresAt: now.Add(s.ttl),
	}
	s.tokens[tok.Token] = tok
	e.transition(models.MenuPendingApproval, requestedBy, "", now)

	slog.Info("approval requested", "menu", menuID, "expires", tok.ExpiresAt)
	return *tok, nil
}

// Verify returns the token when it is still pending and unexpired.
func (s *Store) Verify(token string) (models.ApprovalToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tok, err := s.usable(token)
	if err != nil {
		return models.ApprovalToken{}, err
	}
	return *tok, nil
}

// Resolve spends token with the approver's decision and moves the menu to
// approved or needs_changes. Requesting changes needs a comment.
func (s *Store) Resolve(token, decision, comment string) (models.MenuResponse, error) {
	var next string
	switch decision {
	case models.TokenApproved:
		next = models.MenuApproved
	case models.TokenChangesRequested:
		next = models.MenuNeedsChanges
		if strings.TrimSpace(comment) == "" {
			return models.MenuResponse{}, models.NewValidationError("comment is required when requesting changes")
		}
	default:
		return models.MenuResponse{}, models.NewValidationError(`decision must be "approved" or "changes_requested"`)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tok, err := s.usable(token)
	if err != nil {
		return models.MenuResponse{}, err
	}
	e, ok := s.menus[tok.MenuID]
	if !ok {
		return models.MenuResponse{}, models.NewNotFoundError("menu not found")
	}

	now := s.now()
	tok.Status = decision
	tok.UsedAt = &now
	e.transition(next, "approver", comment, now)

	slog.Info("approval resolved", "menu", tok.MenuID, "decision", decision)
	return e.snapshot(), nil
}

// Run evicts expired tokens every 5 minutes until ctx is cancelled.
func (s *Store) Run(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := s.Sweep(now); n > 0 {
				slog.Debug("approval tokens expired", "count", n)
			}
		}
	}
}

// Sweep deletes tokens whose expiry is before now and returns how many were
// removed. Menus are kept.
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for k, tok := range s.tokens {
		if tok.ExpiresAt.Before(now) {
			delete(s.tokens, k)
			removed++
		}
	}
	return removed
}

// usable must be called with s.mu held.
func (s *Store) usable(token string) (*models.ApprovalToken, error) {
	tok, ok := s.tokens[token]
	if !ok || tok.Status != models.TokenPending || !s.now().Before(tok.ExpiresAt) {
		return nil, models.NewInvalidTokenError()
	}
	return tok, nil
}

func (e *menuEntry) transition(status, by, comment string, at time.Time) {
	e.menu.Status = status
	e.menu.UpdatedAt = at
	e.history = append(e.history, models.StatusChange{Status: status, ChangedBy: by, Comment: comment, ChangedAt: at})
}

func (e *menuEntry) snapshot() models.MenuResponse {
	return models.MenuResponse{
		WeeklyMenu: e.menu,
		History:    append([]models.StatusChange(nil), e.history...),
	}
}

// newToken returns "<unix millis>-<random hex>".
func newToken(now time.Time) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), strings.ReplaceAll(uuid.NewString(), "-", ""))
}
