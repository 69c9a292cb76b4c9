package render

import "fmt"

/* Format identifies the payload shape the renderer recognized
 * Detection is first-match-wins over an ordered chain; Generic is
 * the fallback and always matches
 */
type Format int

const (
	GitHub Format = iota + 1
	Stripe
	Generic
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case GitHub:
		return "github"
	case Stripe:
		return "stripe"
	case Generic:
		return "generic"
	default:
		return "unknown"
	}
}

// NewFormat creates a Format from a string
func NewFormat(str string) Format {
	switch str {
	case "github":
		return GitHub
	case "stripe":
		return Stripe
	case "generic":
		return Generic
	default:
		return Generic
	}
}

// Validate checks if the format is valid
func (f Format) Validate() error {
	if f < GitHub || f > Generic {
		return fmt.Errorf("invalid format: %d", f)
	}
	return nil
}
