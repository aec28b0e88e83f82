package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rezieresouza-rgb/portal-gestao/internal/http/middleware"
	"github.com/rezieresouza-rgb/portal-gestao/internal/model"
	"github.com/rezieresouza-rgb/portal-gestao/internal/service"
)

type openCaseRequest struct {
	StudentName string `json:"student_name" binding:"required"`
	Reporter    string `json:"reporter"`
	Category    string `json:"category" binding:"required"`
	Summary     string `json:"summary" binding:"required"`
}

func (h *Handler) openCase(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req openCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.mediation.OpenCase(c.Request.Context(), service.OpenCaseInput{
		StudentName: req.StudentName,
		Reporter:    req.Reporter,
		Category:    req.Category,
		Summary:     req.Summary,
		Principal:   principal,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) listCases(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var status *model.CaseStatus
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		parsed := model.CaseStatus(strings.ToUpper(raw))
		status = &parsed
	}

	cases, err := h.mediation.ListCases(c.Request.Context(), status, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, cases)
}

func (h *Handler) getCase(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	found, err := h.mediation.GetCase(c.Request.Context(), id, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

type addNoteRequest struct {
	Text string `json:"text" binding:"required"`
}

func (h *Handler) addCaseNote(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req addNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note, err := h.mediation.AddNote(c.Request.Context(), id, req.Text, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, note)
}

type transitionCaseRequest struct {
	Status     string `json:"status" binding:"required"`
	AssigneeID string `json:"assignee_id"`
}

func (h *Handler) transitionCase(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transitionCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var assigneeID *uuid.UUID
	if raw := strings.TrimSpace(req.AssigneeID); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assignee_id"})
			return
		}
		assigneeID = &parsed
	}

	updated, err := h.mediation.TransitionCase(c.Request.Context(), service.TransitionCaseInput{
		CaseID:     id,
		Status:     model.CaseStatus(strings.ToUpper(strings.TrimSpace(req.Status))),
		AssigneeID: assigneeID,
		Principal:  principal,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
