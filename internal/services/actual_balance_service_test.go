package services

import (
	"testing"

	"budgetplaner/internal/pagination"
	"budgetplaner/internal/testutil"
)

func TestActualBalanceService(t *testing.T) {
	t.Run("create_defaults_to_zero", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewActualBalanceService(db)
		budget := testutil.CreateTestBudget(t, db)

		b, err := svc.CreateActualBalance(budget.ID, ActualBalanceInput{Month: intPtr(3), Year: intPtr(2026), ActualIncome: decPtr("5000")})
		testutil.AssertNoError(t, err)
		if !b.ActualExpenses.IsZero() {
			t.Errorf("expected zero expenses, got %s", b.ActualExpenses)
		}
		if !b.Balance().Equal(testutil.Dec("5000")) {
			t.Errorf("expected balance 5000, got %s", b.Balance())
		}
	})

	t.Run("unknown_budget", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewActualBalanceService(db)

		_, err := svc.CreateActualBalance("0190a8f0-0000-7000-8000-000000000000", ActualBalanceInput{Month: intPtr(1), Year: intPtr(2026)})
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})

	t.Run("duplicate_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewActualBalanceService(db)
		budget := testutil.CreateTestBudget(t, db)
		testutil.CreateTestActualBalance(t, db, budget.ID, 4, 2026, "100", "50")

		_, err := svc.CreateActualBalance(budget.ID, ActualBalanceInput{Month: intPtr(4), Year: intPtr(2026)})
		testutil.AssertAppError(t, err, "DUPLICATE_ENTRY")
	})

	t.Run("update_into_taken_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewActualBalanceService(db)
		budget := testutil.CreateTestBudget(t, db)
		testutil.CreateTestActualBalance(t, db, budget.ID, 1, 2026, "100", "50")
		feb := testutil.CreateTestActualBalance(t, db, budget.ID, 2, 2026, "100", "50")

		_, err := svc.UpdateActualBalance(feb.ID, ActualBalanceInput{Month: intPtr(1)})
		testutil.AssertAppError(t, err, "DUPLICATE_ENTRY")

		updated, err := svc.UpdateActualBalance(feb.ID, ActualBalanceInput{ActualExpenses: decPtr("80")})
		testutil.AssertNoError(t, err)
		if !updated.ActualExpenses.Equal(testutil.Dec("80")) || updated.Month != 2 {
			t.Errorf("unexpected balance after update: %+v", updated)
		}
	})

	t.Run("update_to_negative_balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewActualBalanceService(db)
		budget := testutil.CreateTestBudget(t, db)
		b := testutil.CreateTestActualBalance(t, db, budget.ID, 1, 2026, "5000", "4000")

		updated, err := svc.UpdateActualBalance(b.ID, ActualBalanceInput{ActualExpenses: decPtr("5500")})
		testutil.AssertNoError(t, err)
		if !updated.Balance().Equal(testutil.Dec("-500")) {
			t.Errorf("expected balance -500, got %s", updated.Balance())
		}
	})

	t.Run("list_filters_and_orders", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewActualBalanceService(db)
		budget := testutil.CreateTestBudget(t, db)
		other := testutil.CreateTestBudget(t, db)
		testutil.CreateTestActualBalance(t, db, budget.ID, 5, 2026, "1", "1")
		testutil.CreateTestActualBalance(t, db, budget.ID, 2, 2026, "1", "1")
		testutil.CreateTestActualBalance(t, db, budget.ID, 12, 2025, "1", "1")
		testutil.CreateTestActualBalance(t, db, other.ID, 1, 2026, "1", "1")

		year := 2026
		page, err := svc.ListActualBalances(pagination.PageRequest{}, budget.ID, &year)
		testutil.AssertNoError(t, err)
		if page.TotalItems != 2 {
			t.Fatalf("expected 2 balances, got %d", page.TotalItems)
		}
		if page.Data[0].Month != 2 || page.Data[1].Month != 5 {
			t.Errorf("expected months 2, 5 in order, got %d, %d", page.Data[0].Month, page.Data[1].Month)
		}

		all, err := svc.ListActualBalances(pagination.PageRequest{}, "", nil)
		testutil.AssertNoError(t, err)
		if all.TotalItems != 4 {
			t.Errorf("expected 4 balances overall, got %d", all.TotalItems)
		}
	})

	t.Run("delete", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewActualBalanceService(db)
		budget := testutil.CreateTestBudget(t, db)
		b := testutil.CreateTestActualBalance(t, db, budget.ID, 1, 2026, "1", "1")

		testutil.AssertNoError(t, svc.DeleteActualBalance(b.ID))
		testutil.AssertAppError(t, svc.DeleteActualBalance(b.ID), "ACTUAL_BALANCE_NOT_FOUND")
		_, err := svc.GetActualBalanceByID(b.ID)
		testutil.AssertAppError(t, err, "ACTUAL_BALANCE_NOT_FOUND")
	})
}

func TestAuditService_Log(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAuditService(db)

	svc.Log("CREATE_BUDGET", "budget", "b-1", "127.0.0.1", map[string]any{"name": "Haushalt"})
	svc.Log("DELETE_BUDGET", "budget", "b-1", "127.0.0.1", nil)

	var logs []struct {
		Action  string
		Changes string
	}
	if err := db.Table("audit_logs").Order("created_at, action").Find(&logs).Error; err != nil {
		t.Fatalf("failed to read audit logs: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 audit entries, got %d", len(logs))
	}
	for _, l := range logs {
		switch l.Action {
		case "CREATE_BUDGET":
			if l.Changes != `{"name":"Haushalt"}` {
				t.Errorf("unexpected changes %q", l.Changes)
			}
		case "DELETE_BUDGET":
			if l.Changes != "" {
				t.Errorf("expected empty changes, got %q", l.Changes)
			}
		default:
			t.Errorf("unexpected action %s", l.Action)
		}
	}
}
