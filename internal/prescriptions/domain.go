// Package prescriptions holds prescription records issued by the clinic.
package prescriptions

// Collection is the change-feed name for the prescription collection.
const Collection = "prescriptions"

// Prescription models a single issued prescription.
type Prescription struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Doctor   string `json:"doctor"`
	Patient  string `json:"patient"`
	Medicine string `json:"medicine"`
	Notes    string `json:"notes,omitempty"`
}
