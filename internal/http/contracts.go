package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rezieresouza-rgb/portal-gestao/internal/http/middleware"
	"github.com/rezieresouza-rgb/portal-gestao/internal/service"
)

type contractItemRequest struct {
	Description        string  `json:"description" binding:"required"`
	Unit               string  `json:"unit" binding:"required"`
	UnitPrice          float64 `json:"unit_price" binding:"required,gt=0"`
	ContractedQuantity float64 `json:"contracted_quantity" binding:"required,gt=0"`
}

type createContractRequest struct {
	SupplierName string                `json:"supplier_name" binding:"required"`
	SupplierDoc  string                `json:"supplier_doc" binding:"required"`
	Description  string                `json:"description"`
	StartAt      string                `json:"start_at" binding:"required"`
	EndAt        string                `json:"end_at" binding:"required"`
	Items        []contractItemRequest `json:"items" binding:"required,min=1,dive"`
}

func (h *Handler) createContract(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req createContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	startAt, err := parseDate(req.StartAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_at"})
		return
	}
	endAt, err := parseDate(req.EndAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_at"})
		return
	}

	items := make([]service.ContractItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.ContractItemInput{
			Description:        item.Description,
			Unit:               item.Unit,
			UnitPrice:          item.UnitPrice,
			ContractedQuantity: item.ContractedQuantity,
		})
	}

	contract, err := h.contracts.CreateContract(c.Request.Context(), service.CreateContractInput{
		SupplierName: req.SupplierName,
		SupplierDoc:  req.SupplierDoc,
		Description:  req.Description,
		StartAt:      startAt,
		EndAt:        endAt,
		Items:        items,
		Principal:    principal,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, contract)
}

func (h *Handler) listContracts(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	contracts, err := h.contracts.ListContracts(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, contracts)
}

func (h *Handler) getContract(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	contract, err := h.contracts.GetContract(c.Request.Context(), id, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract)
}

func (h *Handler) contractReport(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.contracts.BalanceReport(c.Request.Context(), id, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	const contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, contentType, result.Content)
}
