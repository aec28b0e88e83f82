package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rezieresouza-rgb/portal-gestao/internal/model"
	"github.com/rezieresouza-rgb/portal-gestao/internal/repository"
)

// fakeStore is an in-memory stand-in for the contract and order
// repositories. Ledger writes go through applyDeltas, which checks every
// guard before mutating anything so a failing line leaves the store
// untouched, the same all-or-nothing behavior the transactional repository
// has.
type fakeStore struct {
	schools   map[uuid.UUID]model.School
	contracts map[uuid.UUID]model.Contract
	items     map[uuid.UUID]*model.ContractItem
	itemOrder map[uuid.UUID][]uuid.UUID
	orders    map[uuid.UUID]model.Order
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		schools:   make(map[uuid.UUID]model.School),
		contracts: make(map[uuid.UUID]model.Contract),
		items:     make(map[uuid.UUID]*model.ContractItem),
		itemOrder: make(map[uuid.UUID][]uuid.UUID),
		orders:    make(map[uuid.UUID]model.Order),
	}
}

func (f *fakeStore) addSchool(school model.School) model.School {
	if school.ID == uuid.Nil {
		school.ID = uuid.New()
	}
	f.schools[school.ID] = school
	return school
}

func (f *fakeStore) addContract(schoolID uuid.UUID, items ...model.ContractItem) model.Contract {
	contract := model.Contract{
		ID:           uuid.New(),
		SchoolID:     schoolID,
		SupplierName: "Distribuidora Boa Safra",
		SupplierDoc:  "12.345.678/0001-90",
		StartAt:      time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		EndAt:        time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt:    time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC),
	}
	f.contracts[contract.ID] = contract
	for i := range items {
		item := items[i]
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.ContractID = contract.ID
		f.items[item.ID] = &item
		f.itemOrder[contract.ID] = append(f.itemOrder[contract.ID], item.ID)
	}
	return contract
}

func (f *fakeStore) contractItems(contractID uuid.UUID) []model.ContractItem {
	ids := f.itemOrder[contractID]
	items := make([]model.ContractItem, 0, len(ids))
	for _, id := range ids {
		items = append(items, *f.items[id])
	}
	return items
}

func (f *fakeStore) CreateContract(_ context.Context, contract model.Contract) (*model.Contract, error) {
	contract.ID = uuid.New()
	contract.CreatedAt = time.Now()
	saved := contract
	f.contracts[contract.ID] = contract
	for i := range saved.Items {
		item := saved.Items[i]
		item.ID = uuid.New()
		item.ContractID = contract.ID
		saved.Items[i] = item
		f.items[item.ID] = &item
		f.itemOrder[contract.ID] = append(f.itemOrder[contract.ID], item.ID)
	}
	return &saved, nil
}

func (f *fakeStore) GetContract(_ context.Context, id uuid.UUID) (*model.Contract, error) {
	contract, ok := f.contracts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	contract.Items = f.contractItems(id)
	return &contract, nil
}

func (f *fakeStore) ListContracts(_ context.Context, schoolID uuid.UUID) ([]model.Contract, error) {
	var contracts []model.Contract
	for _, contract := range f.contracts {
		if contract.SchoolID == schoolID {
			contracts = append(contracts, contract)
		}
	}
	return contracts, nil
}

func (f *fakeStore) GetSchool(_ context.Context, id uuid.UUID) (*model.School, error) {
	school, ok := f.schools[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &school, nil
}

func (f *fakeStore) applyDeltas(contractID uuid.UUID, deltas []model.ItemDelta) error {
	for _, d := range deltas {
		item, ok := f.items[d.ContractItemID]
		if !ok || item.ContractID != contractID {
			return gorm.ErrRecordNotFound
		}
		if item.AcquiredQuantity+d.Delta > item.ContractedQuantity {
			return repository.ErrBalanceExceeded
		}
	}
	for _, d := range deltas {
		item := f.items[d.ContractItemID]
		item.AcquiredQuantity += d.Delta
		if item.AcquiredQuantity < 0 {
			item.AcquiredQuantity = 0
		}
	}
	return nil
}

// nextOrderNumber matches the repository's numbering: one past the highest
// numeric suffix among the contract's live orders, so deleting a guide never
// frees its number for reuse.
func (f *fakeStore) nextOrderNumber(contractID uuid.UUID) string {
	var max int64
	for _, order := range f.orders {
		if order.ContractID != contractID {
			continue
		}
		if idx := strings.LastIndex(order.OrderNumber, "-"); idx >= 0 {
			if n, err := strconv.ParseInt(order.OrderNumber[idx+1:], 10, 64); err == nil && n > max {
				max = n
			}
		}
	}
	return model.FormatOrderNumber(max + 1)
}

func (f *fakeStore) CreateOrder(_ context.Context, order model.Order) (*model.Order, error) {
	if _, ok := f.contracts[order.ContractID]; !ok {
		return nil, gorm.ErrRecordNotFound
	}
	order.OrderNumber = f.nextOrderNumber(order.ContractID)
	deltas := make([]model.ItemDelta, 0, len(order.Items))
	for _, item := range order.Items {
		deltas = append(deltas, model.ItemDelta{ContractItemID: item.ContractItemID, Delta: item.Quantity})
	}
	if err := f.applyDeltas(order.ContractID, deltas); err != nil {
		return nil, err
	}
	order.ID = uuid.New()
	order.CreatedAt = time.Now()
	for i := range order.Items {
		order.Items[i].ID = uuid.New()
		order.Items[i].OrderID = order.ID
	}
	f.orders[order.ID] = order
	return &order, nil
}

func (f *fakeStore) UpdateOrder(_ context.Context, order model.Order, deltas []model.ItemDelta) (*model.Order, error) {
	if _, ok := f.orders[order.ID]; !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if err := f.applyDeltas(order.ContractID, deltas); err != nil {
		return nil, err
	}
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}
	f.orders[order.ID] = order
	return &order, nil
}

func (f *fakeStore) DeleteOrder(_ context.Context, order model.Order) error {
	if _, ok := f.orders[order.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	deltas := make([]model.ItemDelta, 0, len(order.Items))
	for _, item := range order.Items {
		deltas = append(deltas, model.ItemDelta{ContractItemID: item.ContractItemID, Delta: -item.Quantity})
	}
	if err := f.applyDeltas(order.ContractID, deltas); err != nil {
		return err
	}
	delete(f.orders, order.ID)
	return nil
}

func (f *fakeStore) GetOrder(_ context.Context, id uuid.UUID) (*model.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &order, nil
}

func (f *fakeStore) ListOrders(_ context.Context, contractID uuid.UUID) ([]model.Order, error) {
	var orders []model.Order
	for _, order := range f.orders {
		if order.ContractID == contractID {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

// checkLedgerConservation verifies that every item's acquired quantity equals
// the sum of live order quantities referencing it, modulo the seed quantity
// the item started with.
func (f *fakeStore) checkLedgerConservation(contractID uuid.UUID, seed map[uuid.UUID]float64) error {
	sums := make(map[uuid.UUID]float64)
	for _, order := range f.orders {
		if order.ContractID != contractID {
			continue
		}
		for _, item := range order.Items {
			sums[item.ContractItemID] += item.Quantity
		}
	}
	for _, id := range f.itemOrder[contractID] {
		item := f.items[id]
		expected := sums[id] + seed[id]
		if item.AcquiredQuantity != expected {
			return fmt.Errorf("item %q: acquired %.3f, live orders sum to %.3f", item.Description, item.AcquiredQuantity, expected)
		}
	}
	return nil
}

type stubPDF struct{}

func (stubPDF) Generate(model.OrderDocument) ([]byte, error) { return []byte("%PDF-stub"), nil }
