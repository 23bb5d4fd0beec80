// Package ledger holds the clinic's income and expense transactions.
package ledger

// Collection is the change-feed name for the transaction collection.
const Collection = "transactions"

// TransactionType enumerates the two sides of the ledger.
type TransactionType string

const (
	// TypeIncome marks revenue transactions.
	TypeIncome TransactionType = "Income"
	// TypeExpense marks cost transactions.
	TypeExpense TransactionType = "Expense"
)

// Categories is the fixed set of transaction categories.
var Categories = []string{
	"Consultation",
	"Procedure",
	"Diagnostics",
	"Pharmacy",
	"Supplies",
	"Rent",
	"Utilities",
	"Staff",
	"Misc",
}

// ValidCategory reports whether name belongs to the fixed category set.
func ValidCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

// Transaction models a single ledger entry. Dates are calendar days in
// YYYY-MM-DD form, produced upstream by request validation.
type Transaction struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Type        TransactionType `json:"type"`
	Amount      float64         `json:"amount"`
	Category    string          `json:"category"`
	PatientName string          `json:"patientName,omitempty"`
	PatientID   string          `json:"patientId,omitempty"`
	Phone       string          `json:"phone,omitempty"`
	Payment     string          `json:"payment"`
	Notes       string          `json:"notes,omitempty"`
}
