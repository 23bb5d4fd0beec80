package appointments

// Collection is the change-feed name for appointment records.
const Collection = "appointments"

// Status enumerates the lifecycle states of an appointment. Transitions
// between states are unconstrained; any status may replace any other.
type Status string

const (
	StatusConfirmed Status = "Confirmed"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

// ValidStatus reports whether s is a recognized appointment status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Appointment is a scheduled patient visit.
type Appointment struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Patient string `json:"patient"`
	Doctor  string `json:"doctor"`
	Reason  string `json:"reason,omitempty"`
	Status  Status `json:"status"`
	Notes   string `json:"notes,omitempty"`
}
