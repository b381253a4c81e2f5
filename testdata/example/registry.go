package main

import (
	"fmt"
	"sort"
)

// Registry tracks one Counter per issue label.
type Registry struct {
	counters map[string]*Counter
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{counters: make(map[string]*Counter)}
}

// Track bumps the counter for label, creating it on first sight.
func (r *Registry) Track(label string, delta int) int {
	counter, ok := r.counters[label]
	if !ok {
		counter = NewCounter(label)
		r.counters[label] = counter
	}
	return counter.Add(delta)
}

// Lookup returns the counter for label, if any.
func (r *Registry) Lookup(label string) (*Counter, bool) {
	counter, ok := r.counters[label]
	return counter, ok
}

// Labels returns every tracked label in sorted order.
func (r *Registry) Labels() []string {
	labels := make([]string, 0, len(r.counters))
	for label := range r.counters {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Report renders one line per tracked counter.
func (r *Registry) Report() []string {
	lines := make([]string, 0, len(r.counters))
	for _, label := range r.Labels() {
		counter := r.counters[label]
		lines = append(lines, fmt.Sprintf("%s (%d)", counter.String(), counter.Value()))
	}
	return lines
}
