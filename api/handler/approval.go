package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/dinnermenu/approval"
	"github.com/use-agent/dinnermenu/models"
)

// CreateMenu returns a handler for POST /api/v1/menus.
func CreateMenu(s *approval.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CreateMenuRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, models.NewValidationError("invalid request body: "+err.Error()))
			return
		}
		m, err := s.CreateMenu(req.WeekStartDate, req.CreatedBy)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, m)
	}
}

// GetMenu returns a handler for GET /api/v1/menus/:id.
func GetMenu(s *approval.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		m, ok := s.Menu(c.Param("id"))
		if !ok {
			respondError(c, models.NewNotFoundError("menu not found"))
			return
		}
		c.JSON(http.StatusOK, m)
	}
}

// RequestApproval returns a handler for POST /api/v1/menus/:id/approval-request.
// The body is optional.
func RequestApproval(s *approval.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ApprovalRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				respondError(c, models.NewValidationError("invalid request body: "+err.Error()))
				return
			}
		}
		tok, err := s.RequestApproval(c.Param("id"), req.RequestedBy)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, tok)
	}
}

// VerifyApproval returns a handler for GET /api/v1/approvals/:token.
func VerifyApproval(s *approval.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok, err := s.Verify(c.Param("token"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, tok)
	}
}

// ResolveApproval returns a handler for POST /api/v1/approvals/:token.
func ResolveApproval(s *approval.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ApprovalDecision
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, models.NewValidationError("invalid request body: "+err.Error()))
			return
		}
		m, err := s.Resolve(c.Param("token"), req.Decision, req.Comment)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, m)
	}
}
