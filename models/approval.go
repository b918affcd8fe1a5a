package models

import "time"

// Weekly menu statuses.
const (
	MenuDraft           = "draft"
	MenuPendingApproval = "pending_approval"
	MenuApproved        = "approved"
	MenuNeedsChanges    = "needs_changes"
)

// Approval token statuses.
const (
	TokenPending          = "pending"
	TokenApproved         = "approved"
	TokenChangesRequested = "changes_requested"
)

// MsgInvalidToken is returned for unknown, used or expired approval tokens.
const MsgInvalidToken = "Invalid or expired token"

// WeeklyMenu is a week's dinner plan moving through the approval workflow.
type WeeklyMenu struct {
	ID            string    `json:"id"`
	WeekStartDate string    `json:"week_start_date"`
	CreatedBy     string    `json:"created_by"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// StatusChange is one entry in a menu's status log.
type StatusChange struct {
	Status    string    `json:"status"`
	ChangedBy string    `json:"changed_by"`
	Comment   string    `json:"comment,omitempty"`
	ChangedAt time.Time `json:"changed_at"`
}

// ApprovalToken is a single-use token handed to the approver.
type ApprovalToken struct {
	Token     string     `json:"token"`
	MenuID    string     `json:"menu_id"`
	Status    string     `json:"status"`
	ExpiresAt time.Time  `json:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
}

// CreateMenuRequest is the body of POST /api/v1/menus.
type CreateMenuRequest struct {
	WeekStartDate string `json:"week_start_date"`
	CreatedBy     string `json:"created_by"`
}

// MenuResponse is a menu with its status history.
type MenuResponse struct {
	WeeklyMenu
	History []StatusChange `json:"history"`
}

// ApprovalRequest is the body of POST /api/v1/menus/:id/approval-request.
type ApprovalRequest struct {
	RequestedBy string `json:"requested_by"`
}

// ApprovalDecision is the body of POST /api/v1/approvals/:token.
type ApprovalDecision struct {
	Decision string `json:"decision"` // "approved" or "changes_requested"
	Comment  string `json:"comment"`
}
