package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rezieresouza-rgb/portal-gestao/internal/model"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// applyItemDelta adjusts one contract item's acquired quantity inside tx.
// The WHERE clause carries the balance guard, so an overdraw shows up as
// zero affected rows rather than a bad write; negative deltas floor at zero
// to tolerate pre-existing drift in older data.
func applyItemDelta(tx *gorm.DB, contractID, itemID uuid.UUID, delta float64) error {
	if delta == 0 {
		return nil
	}
	res := tx.Exec(`
		UPDATE contract_items
		SET acquired_quantity = GREATEST(acquired_quantity + ?, 0)
		WHERE id = ?
			AND contract_id = ?
			AND acquired_quantity + ? <= contracted_quantity
	`, delta, itemID, contractID, delta)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var exists bool
		err := tx.Raw(`
			SELECT EXISTS (SELECT 1 FROM contract_items WHERE id = ? AND contract_id = ?)
		`, itemID, contractID).Scan(&exists).Error
		if err != nil {
			return err
		}
		if !exists {
			return gorm.ErrRecordNotFound
		}
		return ErrBalanceExceeded
	}
	return nil
}

func insertOrderItems(tx *gorm.DB, orderID uuid.UUID, items []model.OrderItem) error {
	for _, item := range items {
		err := tx.Exec(`
			INSERT INTO order_items (order_id, contract_item_id, description, unit, quantity, unit_price)
			VALUES (?, ?, ?, ?, ?, ?)
		`, orderID, item.ContractItemID, item.Description, item.Unit, item.Quantity, item.UnitPrice).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// nextOrderNumber assigns the contract's next guide number inside tx. The
// contract row is locked first so concurrent creates number serially, and
// the sequence comes from the highest numeric suffix still live, so deleted
// guides never free a number a later order already took.
func nextOrderNumber(tx *gorm.DB, contractID uuid.UUID) (string, error) {
	var locked uuid.UUID
	err := tx.Raw(`
		SELECT id FROM contracts WHERE id = ? FOR UPDATE
	`, contractID).Scan(&locked).Error
	if err != nil {
		return "", err
	}
	if locked == uuid.Nil {
		return "", gorm.ErrRecordNotFound
	}

	var seq int64
	err = tx.Raw(`
		SELECT COALESCE(MAX(CAST(SUBSTRING(order_number FROM '[0-9]+$') AS INTEGER)), 0) + 1
		FROM orders
		WHERE contract_id = ?
	`, contractID).Scan(&seq).Error
	if err != nil {
		return "", err
	}
	return model.FormatOrderNumber(seq), nil
}

// CreateOrder consumes the requested balances, assigns the guide number and
// persists the order with its snapshot lines as one transaction. Any line
// failing the balance guard rolls back the whole order.
func (r *OrderRepository) CreateOrder(ctx context.Context, order model.Order) (*model.Order, error) {
	saved := order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		number, err := nextOrderNumber(tx, order.ContractID)
		if err != nil {
			return err
		}
		saved.OrderNumber = number

		for _, item := range order.Items {
			if err := applyItemDelta(tx, order.ContractID, item.ContractItemID, item.Quantity); err != nil {
				return err
			}
		}

		var row struct {
			ID        uuid.UUID
			CreatedAt time.Time
		}
		err = tx.Raw(`
			INSERT INTO orders (order_number, contract_id, issue_date, delivery_date, total_value, observations, created_by_id)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			RETURNING id, created_at
		`,
			saved.OrderNumber,
			order.ContractID,
			order.IssueDate,
			order.DeliveryDate,
			order.TotalValue,
			order.Observations,
			order.CreatedByID,
		).Scan(&row).Error
		if err != nil {
			return err
		}
		saved.ID = row.ID
		saved.CreatedAt = row.CreatedAt

		for i := range saved.Items {
			saved.Items[i].OrderID = saved.ID
		}
		return insertOrderItems(tx, saved.ID, saved.Items)
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// UpdateOrder applies the per-line ledger deltas, rewrites the snapshot and
// updates the order header, all in one transaction.
func (r *OrderRepository) UpdateOrder(ctx context.Context, order model.Order, deltas []model.ItemDelta) (*model.Order, error) {
	saved := order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, d := range deltas {
			if err := applyItemDelta(tx, order.ContractID, d.ContractItemID, d.Delta); err != nil {
				return err
			}
		}

		res := tx.Exec(`
			UPDATE orders
			SET issue_date = ?, delivery_date = ?, total_value = ?, observations = ?
			WHERE id = ?
		`, order.IssueDate, order.DeliveryDate, order.TotalValue, order.Observations, order.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Exec(`DELETE FROM order_items WHERE order_id = ?`, order.ID).Error; err != nil {
			return err
		}
		for i := range saved.Items {
			saved.Items[i].OrderID = order.ID
		}
		return insertOrderItems(tx, order.ID, saved.Items)
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// DeleteOrder re-credits every snapshot line and removes the order; the
// order_items rows go with it via cascade.
func (r *OrderRepository) DeleteOrder(ctx context.Context, order model.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range order.Items {
			if err := applyItemDelta(tx, order.ContractID, item.ContractItemID, -item.Quantity); err != nil {
				return err
			}
		}
		res := tx.Exec(`DELETE FROM orders WHERE id = ?`, order.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *OrderRepository) GetOrder(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, order_number, contract_id, issue_date, delivery_date, total_value, observations, created_by_id, created_at
		FROM orders
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&order).Error
	if err != nil {
		return nil, err
	}
	if order.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}

	err = r.db.WithContext(ctx).Raw(`
		SELECT id, order_id, contract_item_id, description, unit, quantity, unit_price
		FROM order_items
		WHERE order_id = ?
		ORDER BY description ASC
	`, id).Scan(&order.Items).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) ListOrders(ctx context.Context, contractID uuid.UUID) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, order_number, contract_id, issue_date, delivery_date, total_value, observations, created_by_id, created_at
		FROM orders
		WHERE contract_id = ?
		ORDER BY created_at DESC
	`, contractID).Scan(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
