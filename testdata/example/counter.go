package main

import "fmt"

// Counter accumulates a single tally for one tracked issue.
type Counter struct {
	label string
	total int
}

// NewCounter creates a Counter for the given label.
func NewCounter(label string) *Counter {
	return &Counter{label: label}
}

// Add increases the tally by delta and returns the new total.
func (c *Counter) Add(delta int) int {
	c.total += delta
	return c.total
}

// Value returns the current tally.
func (c *Counter) Value() int {
	return c.total
}

// Reset clears the tally.
func (c *Counter) Reset() {
	c.total = 0
}

// String renders the counter for logs.
func (c *Counter) String() string {
	return fmt.Sprintf("%s=%d", c.label, c.total)
}
