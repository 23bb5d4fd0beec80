package shared

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate indicates a record conflicts with an existing one.
	ErrDuplicate = errors.New("duplicate entry")
	// ErrValidation indicates request input failed validation.
	ErrValidation = errors.New("validation failed")
	// ErrNoData indicates an export was requested over an empty record set.
	ErrNoData = errors.New("no data to export")
)

// UserSafeMessage returns a message suitable for surfacing to the user.
func UserSafeMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "The requested record was not found."
	case errors.Is(err, ErrDuplicate):
		return "A matching record already exists."
	case errors.Is(err, ErrNoData):
		return "No data to export."
	case errors.Is(err, ErrValidation):
		return err.Error()
	default:
		return "Something went wrong. Please try again."
	}
}
