package hooklog

import "fmt"

/* Outcome represents the final delivery result of an ingestion attempt
 * Failure carries a human-readable reason on the record itself
 */
type Outcome int

const (
	Success Outcome = iota + 1
	Failure
)

// String returns the string representation of the outcome
func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return "unknown"
	}
}

// NewOutcome creates an Outcome from a string
func NewOutcome(str string) Outcome {
	switch str {
	case "success":
		return Success
	case "failure":
		return Failure
	default:
		return Failure
	}
}

// Validate checks if the outcome is valid
func (o Outcome) Validate() error {
	if o != Success && o != Failure {
		return fmt.Errorf("invalid outcome: %d", o)
	}
	return nil
}
