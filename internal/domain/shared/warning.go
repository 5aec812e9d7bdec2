package shared

// Warning represents a non-fatal consistency issue detected during an
// operation. Warnings are surfaced to the caller but never block saving.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewWarning creates a new warning
func NewWarning(code, message string) Warning {
	return Warning{Code: code, Message: message}
}

// Warnings is a collection of warnings
type Warnings []Warning

// Add appends a warning and returns the updated collection
func (w Warnings) Add(code, message string) Warnings {
	return append(w, NewWarning(code, message))
}

// Has reports whether a warning with the given code is present
func (w Warnings) Has(code string) bool {
	for _, warning := range w {
		if warning.Code == code {
			return true
		}
	}
	return false
}
