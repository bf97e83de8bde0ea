package ui

// Outcome is where a session stands.
type Outcome int

const (
	Running Outcome = iota
	Cancelled
	Dispatched
)

func (o Outcome) String() string {
	switch o {
	case Running:
		return "Running"
	case Cancelled:
		return "Cancelled"
	case Dispatched:
		return "Dispatched"
	default:
		return "Unknown"
	}
}

// Result is how a finished session ended.
type Result struct {
	Outcome Outcome
	Trigger string // buffer that matched, set when Dispatched
	Command string // command bound to Trigger
}
