package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rezieresouza-rgb/portal-gestao/internal/clock"
	"github.com/rezieresouza-rgb/portal-gestao/internal/excel"
	"github.com/rezieresouza-rgb/portal-gestao/internal/model"
)

func TestContractService_CreateContract(t *testing.T) {
	t.Parallel()

	validInput := func(principal model.Principal) CreateContractInput {
		return CreateContractInput{
			SupplierName: "Distribuidora Boa Safra",
			SupplierDoc:  "12.345.678/0001-90",
			StartAt:      time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			EndAt:        time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC),
			Items: []ContractItemInput{
				{Description: "Arroz tipo 1", Unit: "kg", UnitPrice: 6.50, ContractedQuantity: 100},
			},
			Principal: principal,
		}
	}

	t.Run("creates contract with zeroed ledger", func(t *testing.T) {
		store := newFakeStore()
		school := store.addSchool(model.School{Name: "Escola"})
		svc := NewContractService(store, excel.NewGenerator(), clock.NewFixed(testNow))

		contract, err := svc.CreateContract(context.Background(), validInput(coordinator(school.ID)))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if contract.SchoolID != school.ID {
			t.Fatalf("expected contract bound to principal's school")
		}
		if len(contract.Items) != 1 {
			t.Fatalf("expected 1 item, got %d", len(contract.Items))
		}
		if contract.Items[0].AcquiredQuantity != 0 {
			t.Fatalf("expected acquired quantity to start at zero")
		}
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		store := newFakeStore()
		school := store.addSchool(model.School{Name: "Escola"})
		svc := NewContractService(store, excel.NewGenerator(), clock.NewFixed(testNow))
		principal := coordinator(school.ID)

		noItems := validInput(principal)
		noItems.Items = nil

		badPeriod := validInput(principal)
		badPeriod.StartAt, badPeriod.EndAt = badPeriod.EndAt, badPeriod.StartAt

		badPrice := validInput(principal)
		badPrice.Items[0].UnitPrice = 0

		badQuantity := validInput(principal)
		badQuantity.Items[0].ContractedQuantity = -1

		for name, input := range map[string]CreateContractInput{
			"no items":     noItems,
			"bad period":   badPeriod,
			"bad price":    badPrice,
			"bad quantity": badQuantity,
		} {
			if _, err := svc.CreateContract(context.Background(), input); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("%s: expected ErrInvalidInput, got %v", name, err)
			}
		}
	})

	t.Run("teacher cannot create contracts", func(t *testing.T) {
		store := newFakeStore()
		school := store.addSchool(model.School{Name: "Escola"})
		svc := NewContractService(store, excel.NewGenerator(), clock.NewFixed(testNow))

		teacher := model.Principal{UserID: uuid.New(), SchoolID: school.ID, Role: model.RoleTeacher}
		if _, err := svc.CreateContract(context.Background(), validInput(teacher)); !errors.Is(err, ErrPermissionDenied) {
			t.Fatalf("expected ErrPermissionDenied, got %v", err)
		}
	})
}

func TestContractService_BalanceReport(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	contract, _, _ := seedContract(store)
	svc := NewContractService(store, excel.NewGenerator(), clock.NewFixed(testNow))

	result, err := svc.BalanceReport(context.Background(), contract.ID, coordinator(contract.SchoolID))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.FileName != "saldo-Distribuidora-Boa-Safra-20260310.xlsx" {
		t.Fatalf("unexpected file name %s", result.FileName)
	}
	// xlsx files are zip archives.
	if !bytes.HasPrefix(result.Content, []byte("PK")) {
		t.Fatalf("expected xlsx content")
	}

	t.Run("denies another school", func(t *testing.T) {
		_, err := svc.BalanceReport(context.Background(), contract.ID, coordinator(uuid.New()))
		if !errors.Is(err, ErrPermissionDenied) {
			t.Fatalf("expected ErrPermissionDenied, got %v", err)
		}
	})
}
