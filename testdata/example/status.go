package main

// Status is the lifecycle state of a tracked issue.
type Status int

const (
	// Open marks an issue that still needs attention.
	Open Status = iota
	// InProgress marks an issue someone is working on.
	InProgress
	// Resolved marks an issue with a landed fix.
	Resolved
	// Closed marks an issue that needs no further work.
	Closed
)

// IsTerminal reports whether the status ends the issue lifecycle.
func (s Status) IsTerminal() bool {
	return s == Resolved || s == Closed
}

// Advance returns the next status in the usual lifecycle.
func (s Status) Advance() Status {
	switch s {
	case Open:
		return InProgress
	case InProgress:
		return Resolved
	default:
		return Closed
	}
}
