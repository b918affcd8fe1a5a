package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/use-agent/dinnermenu/approval"
	"github.com/use-agent/dinnermenu/models"
)

func newApprovalEngine(s *approval.Store) *gin.Engine {
	r := gin.New()
	r.POST("/menus", CreateMenu(s))
	r.GET("/menus/:id", GetMenu(s))
	r.POST("/menus/:id/approval-request", RequestApproval(s))
	r.GET("/approvals/:token", VerifyApproval(s))
	r.POST("/approvals/:token", ResolveApproval(s))
	return r
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body, &v))
	return v
}

func TestApprovalFlow(t *testing.T) {
	r := newApprovalEngine(approval.New(0))

	w := doJSON(t, r, http.MethodPost, "/menus", `{"week_start_date":"2026-03-02","created_by":"sam"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	menu := decode[models.MenuResponse](t, w.Body.Bytes())
	assert.Equal(t, models.MenuDraft, menu.Status)

	w = doJSON(t, r, http.MethodPost, "/menus/"+menu.ID+"/approval-request", "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	tok := decode[models.ApprovalToken](t, w.Body.Bytes())
	assert.Equal(t, models.TokenPending, tok.Status)

	w = doJSON(t, r, http.MethodGet, "/approvals/"+tok.Token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, menu.ID, decode[models.ApprovalToken](t, w.Body.Bytes()).MenuID)

	w = doJSON(t, r, http.MethodPost, "/approvals/"+tok.Token, `{"decision":"changes_requested","comment":"More veg"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, models.MenuNeedsChanges, decode[models.MenuResponse](t, w.Body.Bytes()).Status)

	w = doJSON(t, r, http.MethodGet, "/approvals/"+tok.Token, "")
	assert.Equal(t, http.StatusGone, w.Code)
	assert.JSONEq(t, `{"code":"INVALID_TOKEN","message":"Invalid or expired token"}`, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/menus/"+menu.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[models.MenuResponse](t, w.Body.Bytes())
	assert.Equal(t, models.MenuNeedsChanges, got.Status)
	assert.Len(t, got.History, 3)
}

func TestApproval_Errors(t *testing.T) {
	r := newApprovalEngine(approval.New(0))

	w := doJSON(t, r, http.MethodPost, "/menus", `{"week_start_date":"soon"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodGet, "/menus/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodPost, "/menus/missing/approval-request", `{"requested_by":"sam"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodPost, "/approvals/abc", `{"decision":"approved"}`)
	assert.Equal(t, http.StatusGone, w.Code)

	w = doJSON(t, r, http.MethodPost, "/approvals/abc", `{"decision":"perhaps"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/menus", `{"week_start_date":"2026-03-09"}`)
	menu := decode[models.MenuResponse](t, w.Body.Bytes())
	doJSON(t, r, http.MethodPost, "/menus/"+menu.ID+"/approval-request", "")
	w = doJSON(t, r, http.MethodPost, "/menus/"+menu.ID+"/approval-request", "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, models.ErrCodeConflict, decode[models.ErrorDetail](t, w.Body.Bytes()).Code)
}
