package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/clarity-clinic/clarity/internal/analytics"
	"github.com/clarity-clinic/clarity/internal/ledger"
	"github.com/clarity-clinic/clarity/internal/shared"
)

// AmountFormatter renders a monetary amount in the active currency.
// currency.Formatter satisfies it.
type AmountFormatter interface {
	Format(v float64) string
}

// WriteTransactionsCSV serialises the transaction list to CSV.
// An empty list is reported as ErrNoData rather than an empty file.
func WriteTransactionsCSV(w io.Writer, txs []ledger.Transaction, f AmountFormatter) error {
	if len(txs) == 0 {
		return shared.ErrNoData
	}
	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := []string{"Date", "Type", "Category", "Amount", "Patient", "Patient ID", "Phone", "Payment", "Notes"}
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, tx := range txs {
		if err := writer.Write([]string{
			tx.Date,
			string(tx.Type),
			tx.Category,
			f.Format(tx.Amount),
			tx.PatientName,
			tx.PatientID,
			tx.Phone,
			tx.Payment,
			tx.Notes,
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteRosterCSV serialises the derived patient roster to CSV.
func WriteRosterCSV(w io.Writer, roster []analytics.PatientEntry) error {
	if len(roster) == 0 {
		return shared.ErrNoData
	}
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Patient", "Patient ID", "Phone", "Visits", "Last Visit"}); err != nil {
		return err
	}
	for _, entry := range roster {
		if err := writer.Write([]string{
			entry.Name,
			entry.PatientID,
			entry.Phone,
			strconv.Itoa(entry.Visits),
			entry.LastVisit,
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WritePnLCSV emits the profit & loss statement in the report layout:
// a period row, the income section with its total, the expense section
// with its total, and the closing net line.
func WritePnLCSV(w io.Writer, stmt analytics.PnLStatement, f AmountFormatter) error {
	if len(stmt.Income) == 0 && len(stmt.Expense) == 0 {
		return shared.ErrNoData
	}
	writer := csv.NewWriter(w)
	defer writer.Flush()

	records := [][]string{
		{"Profit & Loss Statement"},
		{"Report Period", stmt.From + " to " + stmt.To},
		{},
		{"INCOME"},
	}
	for _, line := range stmt.Income {
		records = append(records, []string{line.Category, f.Format(line.Total)})
	}
	records = append(records,
		[]string{"TOTAL INCOME", f.Format(stmt.TotalIncome)},
		[]string{},
		[]string{"EXPENSE"},
	)
	for _, line := range stmt.Expense {
		records = append(records, []string{line.Category, f.Format(line.Total)})
	}
	label := "NET PROFIT"
	if stmt.NetProfit < 0 {
		label = "NET LOSS"
	}
	records = append(records,
		[]string{"TOTAL EXPENSE", f.Format(stmt.TotalExpense)},
		[]string{},
		[]string{label, f.Format(stmt.NetProfit)},
	)

	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
