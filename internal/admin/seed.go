package admin

import (
	"time"

	"github.com/clarity-clinic/clarity/internal/ledger"
)

// SampleTransactions returns the demo data set, dated relative to now so
// the dashboard always shows a populated recent trend.
func SampleTransactions(now time.Time) []ledger.Transaction {
	day := func(monthOffset, dayOfMonth int) string {
		return time.Date(now.Year(), now.Month()+time.Month(monthOffset), dayOfMonth,
			0, 0, 0, 0, time.UTC).Format("2006-01-02")
	}

	return []ledger.Transaction{
		{Date: day(-2, 3), Type: ledger.TypeIncome, Amount: 800, Category: "Consultation",
			PatientName: "Shreya Iyer", PatientID: "P-1001", Phone: "90000 11111",
			Payment: "UPI", Notes: "General checkup"},
		{Date: day(-2, 9), Type: ledger.TypeExpense, Amount: 250, Category: "Supplies",
			Payment: "Card", Notes: "Syringes & gloves"},
		{Date: day(-1, 12), Type: ledger.TypeIncome, Amount: 4000, Category: "Procedure",
			PatientName: "Arjun Patel", PatientID: "P-1002", Phone: "90000 22222",
			Payment: "Card", Notes: "Minor surgery"},
		{Date: day(-1, 15), Type: ledger.TypeExpense, Amount: 1500, Category: "Staff",
			Payment: "Bank Transfer", Notes: "Assistant salary (partial)"},
		{Date: day(-1, 22), Type: ledger.TypeIncome, Amount: 1200, Category: "Diagnostics",
			PatientName: "Neha Gupta", PatientID: "P-1003", Phone: "90000 33333",
			Payment: "Cash", Notes: "ECG + Lab"},
		{Date: day(0, 5), Type: ledger.TypeExpense, Amount: 2200, Category: "Rent",
			Payment: "Bank Transfer", Notes: "Clinic rent"},
		{Date: day(0, 6), Type: ledger.TypeExpense, Amount: 650, Category: "Utilities",
			Payment: "UPI", Notes: "Electricity + Water bill for the clinic"},
		{Date: day(0, 7), Type: ledger.TypeIncome, Amount: 900, Category: "Consultation",
			PatientName: "Rahul Kumar", PatientID: "P-1004", Phone: "90000 44444",
			Payment: "UPI", Notes: "Follow-up consultation regarding previous treatment"},
		{Date: day(0, 11), Type: ledger.TypeIncome, Amount: 1400, Category: "Pharmacy",
			PatientName: "Aisha Khan", PatientID: "P-1005", Phone: "90000 55555",
			Payment: "Cash", Notes: "Post-op medications and prescribed drugs"},
		{Date: day(0, 14), Type: ledger.TypeExpense, Amount: 300, Category: "Supplies",
			Payment: "Card", Notes: "Bandages and sterile dressings"},
	}
}
