package analytics

import (
	"sort"
	"time"

	"github.com/clarity-clinic/clarity/internal/ledger"
)

// Totals are the headline KPI figures for a set of transactions.
type Totals struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Net     float64 `json:"net"`
}

// MonthlyPoint is one bucket of the income/expense trend.
type MonthlyPoint struct {
	Label   string  `json:"label"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`

	year  int
	month time.Month
}

// CategoryPoint is the signed net contribution of one category.
type CategoryPoint struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// ComputeTotals sums income and expense over all transactions.
// Net is always exactly Income minus Expense.
func ComputeTotals(txs []ledger.Transaction) Totals {
	var t Totals
	for _, tx := range txs {
		switch tx.Type {
		case ledger.TypeIncome:
			t.Income += tx.Amount
		case ledger.TypeExpense:
			t.Expense += tx.Amount
		}
	}
	t.Net = t.Income - t.Expense
	return t
}

// MonthlySeries buckets transactions by calendar month, ordered ascending
// by year then month. Labels use the "Jan 06" form.
func MonthlySeries(txs []ledger.Transaction) []MonthlyPoint {
	buckets := make(map[string]*MonthlyPoint)
	for _, tx := range txs {
		d, err := time.Parse("2006-01-02", tx.Date)
		if err != nil {
			continue
		}
		label := d.Format("Jan 06")
		p, ok := buckets[label]
		if !ok {
			p = &MonthlyPoint{Label: label, year: d.Year(), month: d.Month()}
			buckets[label] = p
		}
		switch tx.Type {
		case ledger.TypeIncome:
			p.Income += tx.Amount
		case ledger.TypeExpense:
			p.Expense += tx.Amount
		}
	}

	series := make([]MonthlyPoint, 0, len(buckets))
	for _, p := range buckets {
		series = append(series, *p)
	}
	sort.Slice(series, func(i, j int) bool {
		if series[i].year != series[j].year {
			return series[i].year < series[j].year
		}
		return series[i].month < series[j].month
	})
	return series
}

// CategorySeries computes the signed net per category (income positive,
// expense negative), ordered by amount descending. Categories tied on
// amount keep their first-seen input order.
func CategorySeries(txs []ledger.Transaction) []CategoryPoint {
	sums := make(map[string]float64)
	order := make([]string, 0)
	for _, tx := range txs {
		if _, seen := sums[tx.Category]; !seen {
			order = append(order, tx.Category)
		}
		switch tx.Type {
		case ledger.TypeIncome:
			sums[tx.Category] += tx.Amount
		case ledger.TypeExpense:
			sums[tx.Category] -= tx.Amount
		}
	}

	series := make([]CategoryPoint, 0, len(order))
	for _, cat := range order {
		series = append(series, CategoryPoint{Category: cat, Amount: sums[cat]})
	}
	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Amount > series[j].Amount
	})
	return series
}
