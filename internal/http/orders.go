package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rezieresouza-rgb/portal-gestao/internal/http/middleware"
	"github.com/rezieresouza-rgb/portal-gestao/internal/service"
)

type orderLineRequest struct {
	ContractItemID string  `json:"contract_item_id" binding:"required"`
	Quantity       float64 `json:"quantity" binding:"required,gt=0"`
}

type orderRequest struct {
	ContractID   string             `json:"contract_id"`
	IssueDate    string             `json:"issue_date"`
	DeliveryDate string             `json:"delivery_date" binding:"required"`
	Observations string             `json:"observations"`
	Items        []orderLineRequest `json:"items" binding:"required,min=1,dive"`
}

func (r orderRequest) lines() ([]service.OrderLineInput, error) {
	lines := make([]service.OrderLineInput, 0, len(r.Items))
	for _, item := range r.Items {
		itemID, err := uuid.Parse(strings.TrimSpace(item.ContractItemID))
		if err != nil {
			return nil, err
		}
		lines = append(lines, service.OrderLineInput{
			ContractItemID: itemID,
			Quantity:       item.Quantity,
		})
	}
	return lines, nil
}

func (r orderRequest) dates() (issue, delivery time.Time, err error) {
	if r.IssueDate != "" {
		issue, err = parseDate(r.IssueDate)
		if err != nil {
			return
		}
	}
	delivery, err = parseDate(r.DeliveryDate)
	return
}

func (h *Handler) placeOrder(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contractID, err := uuid.Parse(strings.TrimSpace(req.ContractID))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contract_id"})
		return
	}
	lines, err := req.lines()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contract_item_id"})
		return
	}
	issueDate, deliveryDate, err := req.dates()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}

	order, err := h.orders.PlaceOrder(c.Request.Context(), service.PlaceOrderInput{
		ContractID:   contractID,
		IssueDate:    issueDate,
		DeliveryDate: deliveryDate,
		Observations: req.Observations,
		Lines:        lines,
		Principal:    principal,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *Handler) listOrders(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	contractID, err := uuid.Parse(strings.TrimSpace(c.Query("contract_id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contract_id"})
		return
	}

	orders, err := h.orders.ListOrders(c.Request.Context(), contractID, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) getOrder(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	order, err := h.orders.GetOrder(c.Request.Context(), id, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) updateOrder(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	lines, err := req.lines()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contract_item_id"})
		return
	}
	issueDate, deliveryDate, err := req.dates()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}

	order, err := h.orders.UpdateOrder(c.Request.Context(), service.UpdateOrderInput{
		OrderID:      id,
		IssueDate:    issueDate,
		DeliveryDate: deliveryDate,
		Observations: req.Observations,
		Lines:        lines,
		Principal:    principal,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) deleteOrder(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.orders.DeleteOrder(c.Request.Context(), id, principal); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) orderGuidePDF(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.orders.OrderGuidePDF(c.Request.Context(), id, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/pdf", result.Content)
}
