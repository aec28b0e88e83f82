package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rezieresouza-rgb/portal-gestao/internal/http/middleware"
	"github.com/rezieresouza-rgb/portal-gestao/internal/service"
)

type campaignEventRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"required"`
	StartAt     string `json:"start_at" binding:"required"`
	EndAt       string `json:"end_at" binding:"required"`
}

func (r campaignEventRequest) toInput(c *gin.Context) (service.CampaignEventInput, bool) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return service.CampaignEventInput{}, false
	}
	startAt, err := parseDate(r.StartAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_at"})
		return service.CampaignEventInput{}, false
	}
	endAt, err := parseDate(r.EndAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_at"})
		return service.CampaignEventInput{}, false
	}
	return service.CampaignEventInput{
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		StartAt:     startAt,
		EndAt:       endAt,
		Principal:   principal,
	}, true
}

func (h *Handler) createEvent(c *gin.Context) {
	var req campaignEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input, ok := req.toInput(c)
	if !ok {
		return
	}

	event, err := h.calendar.CreateEvent(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (h *Handler) listEvents(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	from, err := parseDate(c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from"})
		return
	}
	to, err := parseDate(c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to"})
		return
	}

	events, err := h.calendar.ListEvents(c.Request.Context(), from, to, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *Handler) updateEvent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req campaignEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input, ok := req.toInput(c)
	if !ok {
		return
	}

	event, err := h.calendar.UpdateEvent(c.Request.Context(), id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *Handler) deleteEvent(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.calendar.DeleteEvent(c.Request.Context(), id, principal); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
