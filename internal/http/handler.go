package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rezieresouza-rgb/portal-gestao/internal/service"
)

type Handler struct {
	contracts  *service.ContractService
	orders     *service.OrderService
	attendance *service.AttendanceService
	mediation  *service.MediationService
	calendar   *service.CalendarService
	log        zerolog.Logger
}

func NewHandler(
	contracts *service.ContractService,
	orders *service.OrderService,
	attendance *service.AttendanceService,
	mediation *service.MediationService,
	calendar *service.CalendarService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		contracts:  contracts,
		orders:     orders,
		attendance: attendance,
		mediation:  mediation,
		calendar:   calendar,
		log:        log,
	}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	protected := router.Group("/")
	protected.Use(authMiddleware)

	protected.POST("/contracts", h.createContract)
	protected.GET("/contracts", h.listContracts)
	protected.GET("/contracts/:id", h.getContract)
	protected.GET("/contracts/:id/report", h.contractReport)

	protected.POST("/orders", h.placeOrder)
	protected.GET("/orders", h.listOrders)
	protected.GET("/orders/:id", h.getOrder)
	protected.PUT("/orders/:id", h.updateOrder)
	protected.DELETE("/orders/:id", h.deleteOrder)
	protected.GET("/orders/:id/pdf", h.orderGuidePDF)

	protected.POST("/attendance/sessions", h.createAttendanceSession)
	protected.GET("/attendance/sessions", h.listAttendanceSessions)
	protected.GET("/attendance/sessions/:id", h.getAttendanceSession)
	protected.DELETE("/attendance/sessions/:id", h.deleteAttendanceSession)
	protected.PATCH("/attendance/records/:id", h.updateAttendanceRecord)

	protected.POST("/mediation/cases", h.openCase)
	protected.GET("/mediation/cases", h.listCases)
	protected.GET("/mediation/cases/:id", h.getCase)
	protected.POST("/mediation/cases/:id/notes", h.addCaseNote)
	protected.PATCH("/mediation/cases/:id/status", h.transitionCase)

	protected.POST("/calendar/events", h.createEvent)
	protected.GET("/calendar/events", h.listEvents)
	protected.PUT("/calendar/events/:id", h.updateEvent)
	protected.DELETE("/calendar/events/:id", h.deleteEvent)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInsufficientBalance):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrOrdersLocked):
		c.JSON(http.StatusLocked, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, service.ErrInvalidInput
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}
