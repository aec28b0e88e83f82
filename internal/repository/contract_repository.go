package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rezieresouza-rgb/portal-gestao/internal/model"
)

type ContractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

func (r *ContractRepository) CreateContract(ctx context.Context, contract model.Contract) (*model.Contract, error) {
	saved := contract
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row struct {
			ID        uuid.UUID
			CreatedAt time.Time
		}
		err := tx.Raw(`
			INSERT INTO contracts (school_id, supplier_name, supplier_doc, description, start_at, end_at)
			VALUES (?, ?, ?, ?, ?, ?)
			RETURNING id, created_at
		`,
			contract.SchoolID,
			contract.SupplierName,
			contract.SupplierDoc,
			contract.Description,
			contract.StartAt,
			contract.EndAt,
		).Scan(&row).Error
		if err != nil {
			return err
		}
		saved.ID = row.ID
		saved.CreatedAt = row.CreatedAt

		for i := range saved.Items {
			item := &saved.Items[i]
			item.ContractID = saved.ID
			err := tx.Raw(`
				INSERT INTO contract_items (contract_id, description, unit, unit_price, contracted_quantity, acquired_quantity)
				VALUES (?, ?, ?, ?, ?, 0)
				RETURNING id
			`,
				item.ContractID,
				item.Description,
				item.Unit,
				item.UnitPrice,
				item.ContractedQuantity,
			).Scan(&item.ID).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *ContractRepository) GetContract(ctx context.Context, id uuid.UUID) (*model.Contract, error) {
	var contract model.Contract
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, school_id, supplier_name, supplier_doc, description, start_at, end_at, created_at
		FROM contracts
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&contract).Error
	if err != nil {
		return nil, err
	}
	if contract.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}

	items, err := r.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	contract.Items = items
	return &contract, nil
}

func (r *ContractRepository) ListContracts(ctx context.Context, schoolID uuid.UUID) ([]model.Contract, error) {
	var contracts []model.Contract
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, school_id, supplier_name, supplier_doc, description, start_at, end_at, created_at
		FROM contracts
		WHERE school_id = ?
		ORDER BY created_at DESC
	`, schoolID).Scan(&contracts).Error
	if err != nil {
		return nil, err
	}
	return contracts, nil
}

func (r *ContractRepository) ListItems(ctx context.Context, contractID uuid.UUID) ([]model.ContractItem, error) {
	var items []model.ContractItem
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, contract_id, description, unit, unit_price, contracted_quantity, acquired_quantity
		FROM contract_items
		WHERE contract_id = ?
		ORDER BY description ASC
	`, contractID).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *ContractRepository) GetSchool(ctx context.Context, id uuid.UUID) (*model.School, error) {
	var school model.School
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, name, cnpj, director, address, phone
		FROM schools
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&school).Error
	if err != nil {
		return nil, err
	}
	if school.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &school, nil
}
