package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rezieresouza-rgb/portal-gestao/internal/clock"
	"github.com/rezieresouza-rgb/portal-gestao/internal/config"
	"github.com/rezieresouza-rgb/portal-gestao/internal/model"
	"github.com/rezieresouza-rgb/portal-gestao/internal/repository"
)

type ContractStore interface {
	CreateContract(ctx context.Context, contract model.Contract) (*model.Contract, error)
	GetContract(ctx context.Context, id uuid.UUID) (*model.Contract, error)
	ListContracts(ctx context.Context, schoolID uuid.UUID) ([]model.Contract, error)
	GetSchool(ctx context.Context, id uuid.UUID) (*model.School, error)
}

type OrderStore interface {
	CreateOrder(ctx context.Context, order model.Order) (*model.Order, error)
	UpdateOrder(ctx context.Context, order model.Order, deltas []model.ItemDelta) (*model.Order, error)
	DeleteOrder(ctx context.Context, order model.Order) error
	GetOrder(ctx context.Context, id uuid.UUID) (*model.Order, error)
	ListOrders(ctx context.Context, contractID uuid.UUID) ([]model.Order, error)
}

type PDFGenerator interface {
	Generate(doc model.OrderDocument) ([]byte, error)
}

// OrderService owns the contract balance ledger: every change to a line
// item's acquired quantity goes through PlaceOrder, UpdateOrder or
// DeleteOrder.
type OrderService struct {
	contracts ContractStore
	orders    OrderStore
	pdf       PDFGenerator
	clock     clock.Clock
	locked    bool
}

func NewOrderService(contracts ContractStore, orders OrderStore, pdf PDFGenerator, clk clock.Clock, cfg *config.Config) *OrderService {
	return &OrderService{
		contracts: contracts,
		orders:    orders,
		pdf:       pdf,
		clock:     clk,
		locked:    cfg.Orders.Locked,
	}
}

type OrderLineInput struct {
	ContractItemID uuid.UUID
	Quantity       float64
}

type PlaceOrderInput struct {
	ContractID   uuid.UUID
	IssueDate    time.Time
	DeliveryDate time.Time
	Observations string
	Lines        []OrderLineInput
	Principal    model.Principal
}

func (s *OrderService) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*model.Order, error) {
	if !input.Principal.CanManageOrders() {
		return nil, ErrPermissionDenied
	}
	if err := validateLines(input.Lines); err != nil {
		return nil, err
	}

	contract, err := s.loadContract(ctx, input.ContractID, input.Principal)
	if err != nil {
		return nil, err
	}

	itemsByID := indexItems(contract.Items)
	snapshot := make([]model.OrderItem, 0, len(input.Lines))
	total := 0.0
	for _, line := range input.Lines {
		item, ok := itemsByID[line.ContractItemID]
		if !ok {
			return nil, fmt.Errorf("%w: item %s does not belong to contract", ErrInvalidInput, line.ContractItemID)
		}
		if line.Quantity > item.Balance() {
			return nil, balanceError(item, item.Balance())
		}
		snapshot = append(snapshot, model.OrderItem{
			ContractItemID: item.ID,
			Description:    item.Description,
			Unit:           item.Unit,
			Quantity:       line.Quantity,
			UnitPrice:      item.UnitPrice,
		})
		total += line.Quantity * item.UnitPrice
	}

	issueDate := input.IssueDate
	if issueDate.IsZero() {
		issueDate = dateOnly(s.clock.Now())
	}

	// The store assigns the guide number inside the create transaction.
	order := model.Order{
		ContractID:   contract.ID,
		IssueDate:    issueDate,
		DeliveryDate: input.DeliveryDate,
		TotalValue:   total,
		Observations: input.Observations,
		CreatedByID:  input.Principal.UserID,
		Items:        snapshot,
	}

	saved, err := s.orders.CreateOrder(ctx, order)
	if err != nil {
		return nil, mapLedgerError(err)
	}
	return saved, nil
}

type UpdateOrderInput struct {
	OrderID      uuid.UUID
	IssueDate    time.Time
	DeliveryDate time.Time
	Observations string
	Lines        []OrderLineInput
	Principal    model.Principal
}

// UpdateOrder replaces the order's lines wholesale. The ledger adjustment is
// applied as one signed delta per contract item, so a caller can keep or
// reduce their own prior request without being blocked by it: the available
// quantity while editing is the current balance plus the order's original
// quantity for that item.
func (s *OrderService) UpdateOrder(ctx context.Context, input UpdateOrderInput) (*model.Order, error) {
	if !input.Principal.CanManageOrders() {
		return nil, ErrPermissionDenied
	}
	if err := validateLines(input.Lines); err != nil {
		return nil, err
	}

	order, err := s.orders.GetOrder(ctx, input.OrderID)
	if err != nil {
		return nil, mapLedgerError(err)
	}
	contract, err := s.loadContract(ctx, order.ContractID, input.Principal)
	if err != nil {
		return nil, err
	}

	original := make(map[uuid.UUID]float64, len(order.Items))
	for _, item := range order.Items {
		original[item.ContractItemID] += item.Quantity
	}

	itemsByID := indexItems(contract.Items)
	snapshot := make([]model.OrderItem, 0, len(input.Lines))
	deltas := make([]model.ItemDelta, 0, len(input.Lines)+len(original))
	total := 0.0
	for _, line := range input.Lines {
		item, ok := itemsByID[line.ContractItemID]
		if !ok {
			return nil, fmt.Errorf("%w: item %s does not belong to contract", ErrInvalidInput, line.ContractItemID)
		}
		available := item.Balance() + original[line.ContractItemID]
		if line.Quantity > available {
			return nil, balanceError(item, available)
		}
		snapshot = append(snapshot, model.OrderItem{
			ContractItemID: item.ID,
			Description:    item.Description,
			Unit:           item.Unit,
			Quantity:       line.Quantity,
			UnitPrice:      item.UnitPrice,
		})
		total += line.Quantity * item.UnitPrice
		deltas = append(deltas, model.ItemDelta{
			ContractItemID: item.ID,
			Delta:          line.Quantity - original[line.ContractItemID],
		})
		delete(original, line.ContractItemID)
	}
	// Lines dropped from the order give their full quantity back.
	for itemID, quantity := range original {
		deltas = append(deltas, model.ItemDelta{ContractItemID: itemID, Delta: -quantity})
	}

	updated := *order
	updated.IssueDate = input.IssueDate
	if updated.IssueDate.IsZero() {
		updated.IssueDate = order.IssueDate
	}
	updated.DeliveryDate = input.DeliveryDate
	updated.Observations = input.Observations
	updated.TotalValue = total
	updated.Items = snapshot

	saved, err := s.orders.UpdateOrder(ctx, updated, deltas)
	if err != nil {
		return nil, mapLedgerError(err)
	}
	return saved, nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, orderID uuid.UUID, principal model.Principal) error {
	if s.locked {
		return ErrOrdersLocked
	}
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}

	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return mapLedgerError(err)
	}
	if _, err := s.loadContract(ctx, order.ContractID, principal); err != nil {
		return err
	}
	if err := s.orders.DeleteOrder(ctx, *order); err != nil {
		return mapLedgerError(err)
	}
	return nil
}

func (s *OrderService) GetOrder(ctx context.Context, orderID uuid.UUID, principal model.Principal) (*model.Order, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, mapLedgerError(err)
	}
	if _, err := s.loadContract(ctx, order.ContractID, principal); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, contractID uuid.UUID, principal model.Principal) ([]model.Order, error) {
	if _, err := s.loadContract(ctx, contractID, principal); err != nil {
		return nil, err
	}
	return s.orders.ListOrders(ctx, contractID)
}

type OrderGuideResult struct {
	FileName string
	Content  []byte
}

// OrderGuidePDF renders the printable guide from the order's snapshot lines;
// it never touches the ledger.
func (s *OrderService) OrderGuidePDF(ctx context.Context, orderID uuid.UUID, principal model.Principal) (*OrderGuideResult, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, mapLedgerError(err)
	}
	contract, err := s.loadContract(ctx, order.ContractID, principal)
	if err != nil {
		return nil, err
	}
	school, err := s.contracts.GetSchool(ctx, contract.SchoolID)
	if err != nil {
		return nil, mapLedgerError(err)
	}

	content, err := s.pdf.Generate(model.OrderDocument{
		Order:    *order,
		Contract: *contract,
		School:   *school,
	})
	if err != nil {
		return nil, err
	}
	return &OrderGuideResult{
		FileName: fmt.Sprintf("%s.pdf", sanitizeFileName(strings.ToLower(order.OrderNumber))),
		Content:  content,
	}, nil
}

func (s *OrderService) loadContract(ctx context.Context, contractID uuid.UUID, principal model.Principal) (*model.Contract, error) {
	contract, err := s.contracts.GetContract(ctx, contractID)
	if err != nil {
		return nil, mapLedgerError(err)
	}
	if contract.SchoolID != principal.SchoolID {
		return nil, ErrPermissionDenied
	}
	return contract, nil
}

func validateLines(lines []OrderLineInput) error {
	if len(lines) == 0 {
		return fmt.Errorf("%w: at least one item is required", ErrInvalidInput)
	}
	seen := make(map[uuid.UUID]struct{}, len(lines))
	for _, line := range lines {
		if line.ContractItemID == uuid.Nil {
			return fmt.Errorf("%w: contract_item_id is required", ErrInvalidInput)
		}
		if line.Quantity <= 0 {
			return fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
		}
		if _, dup := seen[line.ContractItemID]; dup {
			return fmt.Errorf("%w: duplicate item %s", ErrInvalidInput, line.ContractItemID)
		}
		seen[line.ContractItemID] = struct{}{}
	}
	return nil
}

func indexItems(items []model.ContractItem) map[uuid.UUID]model.ContractItem {
	index := make(map[uuid.UUID]model.ContractItem, len(items))
	for _, item := range items {
		index[item.ID] = item
	}
	return index
}

func balanceError(item model.ContractItem, available float64) error {
	return fmt.Errorf("%w: %q has %.1f %s available", ErrInsufficientBalance, item.Description, available, item.Unit)
}

func mapLedgerError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrBalanceExceeded):
		return fmt.Errorf("%w: %v", ErrInsufficientBalance, err)
	default:
		return err
	}
}

func dateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sanitizeFileName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z':
			result = append(result, r)
		case r >= 'A' && r <= 'Z':
			result = append(result, r)
		case r >= '0' && r <= '9':
			result = append(result, r)
		case r == '-', r == '_':
			result = append(result, r)
		default:
			result = append(result, '-')
		}
	}
	return strings.Trim(string(result), "-")
}
