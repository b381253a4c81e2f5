package main

import "fmt"

func main() {
	registry := NewRegistry()

	registry.Track("login-panic", 1)
	registry.Track("login-panic", 2)
	registry.Track("slow-search", 1)

	if counter, ok := registry.Lookup("login-panic"); ok {
		fmt.Printf("login-panic tally: %d\n", counter.Value())
	}

	spare := NewCounter("spare")
	spare.Add(5)
	spare.Reset()
	fmt.Println(spare)

	status := Open
	for !status.IsTerminal() {
		fmt.Printf("status: %s\n", status)
		status = status.Advance()
	}
	fmt.Printf("final status: %s\n", status)

	for _, line := range registry.Report() {
		fmt.Println(line)
	}
}
