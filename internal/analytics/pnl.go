package analytics

import (
	"github.com/clarity-clinic/clarity/internal/ledger"
)

// CategoryTotal is one line of a P&L category breakdown.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// PnLStatement is the profit & loss report for a date range.
type PnLStatement struct {
	From         string          `json:"from"`
	To           string          `json:"to"`
	Income       []CategoryTotal `json:"income"`
	Expense      []CategoryTotal `json:"expense"`
	TotalIncome  float64         `json:"totalIncome"`
	TotalExpense float64         `json:"totalExpense"`
	NetProfit    float64         `json:"netProfit"`
}

// ProfitAndLoss builds the P&L statement for the inclusive date range
// [from, to]. Only categories with a strictly positive total appear in
// the breakdowns, in the fixed category-set order. Dates are compared
// lexically, which matches calendar order for YYYY-MM-DD strings.
func ProfitAndLoss(txs []ledger.Transaction, from, to string) PnLStatement {
	stmt := PnLStatement{
		From:    from,
		To:      to,
		Income:  make([]CategoryTotal, 0),
		Expense: make([]CategoryTotal, 0),
	}

	incomeByCat := make(map[string]float64)
	expenseByCat := make(map[string]float64)
	for _, tx := range txs {
		if tx.Date < from || tx.Date > to {
			continue
		}
		switch tx.Type {
		case ledger.TypeIncome:
			incomeByCat[tx.Category] += tx.Amount
			stmt.TotalIncome += tx.Amount
		case ledger.TypeExpense:
			expenseByCat[tx.Category] += tx.Amount
			stmt.TotalExpense += tx.Amount
		}
	}

	for _, cat := range ledger.Categories {
		if total := incomeByCat[cat]; total > 0 {
			stmt.Income = append(stmt.Income, CategoryTotal{Category: cat, Total: total})
		}
	}
	for _, cat := range ledger.Categories {
		if total := expenseByCat[cat]; total > 0 {
			stmt.Expense = append(stmt.Expense, CategoryTotal{Category: cat, Total: total})
		}
	}

	stmt.NetProfit = stmt.TotalIncome - stmt.TotalExpense
	return stmt
}
