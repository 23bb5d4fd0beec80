package analytics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clarity-clinic/clarity/internal/ledger"
)

func TestProfitAndLossInclusiveRange(t *testing.T) {
	txs := []ledger.Transaction{
		tx("2024-01-01", ledger.TypeIncome, 800, "Consultation"),
		tx("2024-01-31", ledger.TypeExpense, 250, "Supplies"),
		tx("2024-02-01", ledger.TypeIncome, 999, "Procedure"),
	}
	stmt := ProfitAndLoss(txs, "2024-01-01", "2024-01-31")
	require.Equal(t, 800.0, stmt.TotalIncome)
	require.Equal(t, 250.0, stmt.TotalExpense)
	require.Equal(t, 550.0, stmt.NetProfit)
	require.Equal(t, []CategoryTotal{{Category: "Consultation", Total: 800}}, stmt.Income)
	require.Equal(t, []CategoryTotal{{Category: "Supplies", Total: 250}}, stmt.Expense)
}

func TestProfitAndLossEmptyRange(t *testing.T) {
	txs := []ledger.Transaction{
		tx("2024-01-01", ledger.TypeIncome, 800, "Consultation"),
	}
	stmt := ProfitAndLoss(txs, "2025-01-01", "2025-12-31")
	require.Zero(t, stmt.TotalIncome)
	require.Zero(t, stmt.TotalExpense)
	require.Zero(t, stmt.NetProfit)
	require.NotNil(t, stmt.Income)
	require.Empty(t, stmt.Income)
	require.NotNil(t, stmt.Expense)
	require.Empty(t, stmt.Expense)
}

func TestProfitAndLossCategoryOrderFollowsFixedSet(t *testing.T) {
	txs := []ledger.Transaction{
		tx("2024-01-10", ledger.TypeIncome, 100, "Pharmacy"),
		tx("2024-01-11", ledger.TypeIncome, 100, "Consultation"),
		tx("2024-01-12", ledger.TypeIncome, 100, "Procedure"),
	}
	stmt := ProfitAndLoss(txs, "2024-01-01", "2024-01-31")
	require.Equal(t, "Consultation", stmt.Income[0].Category)
	require.Equal(t, "Procedure", stmt.Income[1].Category)
	require.Equal(t, "Pharmacy", stmt.Income[2].Category)
}

func TestProfitAndLossSkipsZeroCategories(t *testing.T) {
	txs := []ledger.Transaction{
		tx("2024-01-10", ledger.TypeIncome, 500, "Consultation"),
		tx("2024-01-11", ledger.TypeExpense, 120, "Rent"),
	}
	stmt := ProfitAndLoss(txs, "2024-01-01", "2024-01-31")
	require.Len(t, stmt.Income, 1)
	require.Len(t, stmt.Expense, 1)
}
