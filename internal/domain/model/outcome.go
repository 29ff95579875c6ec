package model

// Outcome describes the result of one test sub-step. A single dispatcher run
// may produce several outcomes (one per sub-test attempted).
type Outcome struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// OK builds a successful outcome.
func OK(message, details string) Outcome {
	return Outcome{Success: true, Message: message, Details: details}
}

// Fail builds a failed outcome carrying the cause in Details.
func Fail(message string, err error) Outcome {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return Outcome{Success: false, Message: message, Details: details}
}
