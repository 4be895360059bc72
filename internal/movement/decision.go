package movement

// Outcome is the verdict of a policy evaluation
type Outcome int

const (
	Allow Outcome = iota
	Warn
	Block
)

func (o Outcome) String() string {
	switch o {
	case Allow:
		return "allow"
	case Warn:
		return "warn"
	case Block:
		return "block"
	default:
		return "unknown"
	}
}

// MarshalText renders the outcome by name in json and yaml output
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Decision is the result of evaluating one money movement. Message is the short
// headline shown to the user, Detail the explanation.
type Decision struct {
	Outcome Outcome `json:"outcome" yaml:"outcome"`
	Message string  `json:"message,omitempty" yaml:"message,omitempty"`
	Detail  string  `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Blocked reports whether submission must be prevented
func (d Decision) Blocked() bool { return d.Outcome == Block }

// Warned reports whether submission needs confirmation
func (d Decision) Warned() bool { return d.Outcome == Warn }

func allow() Decision {
	return Decision{Outcome: Allow}
}

func block(message, detail string) Decision {
	return Decision{Outcome: Block, Message: message, Detail: detail}
}

func warn(message, detail string) Decision {
	return Decision{Outcome: Warn, Message: message, Detail: detail}
}
