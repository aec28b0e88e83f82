package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rezieresouza-rgb/portal-gestao/internal/clock"
	"github.com/rezieresouza-rgb/portal-gestao/internal/model"
)

type ExcelGenerator interface {
	Generate(report model.BalanceReport) ([]byte, error)
}

type ContractService struct {
	contracts ContractStore
	excel     ExcelGenerator
	clock     clock.Clock
}

func NewContractService(contracts ContractStore, excel ExcelGenerator, clk clock.Clock) *ContractService {
	return &ContractService{contracts: contracts, excel: excel, clock: clk}
}

type ContractItemInput struct {
	Description        string
	Unit               string
	UnitPrice          float64
	ContractedQuantity float64
}

type CreateContractInput struct {
	SupplierName string
	SupplierDoc  string
	Description  string
	StartAt      time.Time
	EndAt        time.Time
	Items        []ContractItemInput
	Principal    model.Principal
}

func (s *ContractService) CreateContract(ctx context.Context, input CreateContractInput) (*model.Contract, error) {
	if !input.Principal.CanManageOrders() {
		return nil, ErrPermissionDenied
	}
	if input.SupplierName == "" {
		return nil, fmt.Errorf("%w: supplier_name is required", ErrInvalidInput)
	}
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: at least one item is required", ErrInvalidInput)
	}

	if input.StartAt.IsZero() || input.EndAt.IsZero() {
		return nil, fmt.Errorf("%w: contract period is required", ErrInvalidInput)
	}
	if input.StartAt.After(input.EndAt) {
		return nil, fmt.Errorf("%w: start_at must not be after end_at", ErrInvalidInput)
	}

	items := make([]model.ContractItem, 0, len(input.Items))
	for _, item := range input.Items {
		if item.Description == "" || item.Unit == "" {
			return nil, fmt.Errorf("%w: item description and unit are required", ErrInvalidInput)
		}
		if item.UnitPrice <= 0 || item.ContractedQuantity <= 0 {
			return nil, fmt.Errorf("%w: item price and quantity must be positive", ErrInvalidInput)
		}
		items = append(items, model.ContractItem{
			Description:        item.Description,
			Unit:               item.Unit,
			UnitPrice:          item.UnitPrice,
			ContractedQuantity: item.ContractedQuantity,
		})
	}

	return s.contracts.CreateContract(ctx, model.Contract{
		SchoolID:     input.Principal.SchoolID,
		SupplierName: input.SupplierName,
		SupplierDoc:  input.SupplierDoc,
		Description:  input.Description,
		StartAt:      dateOnly(input.StartAt),
		EndAt:        dateOnly(input.EndAt),
		Items:        items,
	})
}

func (s *ContractService) GetContract(ctx context.Context, id uuid.UUID, principal model.Principal) (*model.Contract, error) {
	contract, err := s.contracts.GetContract(ctx, id)
	if err != nil {
		return nil, mapLedgerError(err)
	}
	if contract.SchoolID != principal.SchoolID {
		return nil, ErrPermissionDenied
	}
	return contract, nil
}

func (s *ContractService) ListContracts(ctx context.Context, principal model.Principal) ([]model.Contract, error) {
	return s.contracts.ListContracts(ctx, principal.SchoolID)
}

type BalanceReportResult struct {
	FileName string
	Content  []byte
}

func (s *ContractService) BalanceReport(ctx context.Context, contractID uuid.UUID, principal model.Principal) (*BalanceReportResult, error) {
	contract, err := s.GetContract(ctx, contractID, principal)
	if err != nil {
		return nil, err
	}
	school, err := s.contracts.GetSchool(ctx, contract.SchoolID)
	if err != nil {
		return nil, mapLedgerError(err)
	}

	report := model.BalanceReport{
		Contract:    *contract,
		School:      *school,
		GeneratedAt: s.clock.Now(),
	}
	content, err := s.excel.Generate(report)
	if err != nil {
		return nil, err
	}

	name := sanitizeFileName(contract.SupplierName)
	if name == "" {
		name = contract.ID.String()
	}
	return &BalanceReportResult{
		FileName: fmt.Sprintf("saldo-%s-%s.xlsx", name, report.GeneratedAt.Format("20060102")),
		Content:  content,
	}, nil
}
