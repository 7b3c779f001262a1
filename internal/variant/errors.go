package variant

import "fmt"

// PreconditionError reports source markup that cannot be derived safely. It aborts the
// whole run; no partial output is written.
type PreconditionError struct {
	Subject string // "entity" or "class"
	Name    string
	Reason  string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Subject, e.Name, e.Reason)
}
