// Package validation collects validation failures so a whole pass can be
// reported at once.
package validation

// Error is a single validation failure
type Error struct {
	Message string
}

func (e Error) Error() string {
	return e.Message
}

// Notification accumulates validation errors in the order they were found.
type Notification struct {
	errors []Error
}

// NewNotification creates an empty notification
func NewNotification() *Notification {
	return &Notification{errors: make([]Error, 0)}
}

// Append adds err to the notification
func (n *Notification) Append(err Error) *Notification {
	n.errors = append(n.errors, err)
	return n
}

// AppendMessage adds a new error with msg
func (n *Notification) AppendMessage(msg string) *Notification {
	return n.Append(Error{Message: msg})
}

// AppendAll adds every error of other, keeping their order
func (n *Notification) AppendAll(other *Notification) *Notification {
	if other == nil {
		return n
	}
	n.errors = append(n.errors, other.errors...)
	return n
}

// HasErrors reports whether any error was collected
func (n *Notification) HasErrors() bool {
	return len(n.errors) > 0
}

// Errors returns a copy of the collected errors
func (n *Notification) Errors() []Error {
	out := make([]Error, len(n.errors))
	copy(out, n.errors)
	return out
}

// Messages returns the collected messages in order
func (n *Notification) Messages() []string {
	out := make([]string, 0, len(n.errors))
	for _, e := range n.errors {
		out = append(out, e.Message)
	}
	return out
}

// FirstError returns the first collected error, if any.
func (n *Notification) FirstError() (Error, bool) {
	if len(n.errors) == 0 {
		return Error{}, false
	}
	return n.errors[0], true
}
