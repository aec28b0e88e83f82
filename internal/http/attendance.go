package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rezieresouza-rgb/portal-gestao/internal/http/middleware"
	"github.com/rezieresouza-rgb/portal-gestao/internal/model"
	"github.com/rezieresouza-rgb/portal-gestao/internal/service"
)

type attendanceRecordRequest struct {
	StudentName string `json:"student_name" binding:"required"`
	Status      string `json:"status" binding:"required"`
	Note        string `json:"note"`
}

type createSessionRequest struct {
	ClassName string                    `json:"class_name" binding:"required"`
	Subject   string                    `json:"subject" binding:"required"`
	Date      string                    `json:"date" binding:"required"`
	Records   []attendanceRecordRequest `json:"records" binding:"required,min=1,dive"`
}

func (h *Handler) createAttendanceSession(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}

	records := make([]service.AttendanceRecordInput, 0, len(req.Records))
	for _, record := range req.Records {
		records = append(records, service.AttendanceRecordInput{
			StudentName: record.StudentName,
			Status:      model.AttendanceStatus(record.Status),
			Note:        record.Note,
		})
	}

	session, err := h.attendance.CreateSession(c.Request.Context(), service.CreateSessionInput{
		ClassName: req.ClassName,
		Subject:   req.Subject,
		Date:      date,
		Records:   records,
		Principal: principal,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (h *Handler) listAttendanceSessions(c *gin.Context) {
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

	sessions, err := h.attendance.ListSessions(c.Request.Context(), from, to, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

func (h *Handler) getAttendanceSession(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	session, err := h.attendance.GetSession(c.Request.Context(), id, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

type updateRecordRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note"`
}

func (h *Handler) updateAttendanceRecord(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req updateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.attendance.UpdateRecord(c.Request.Context(), id, model.AttendanceStatus(req.Status), req.Note, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) deleteAttendanceSession(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.attendance.DeleteSession(c.Request.Context(), id, principal); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
