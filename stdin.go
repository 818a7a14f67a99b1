package main

import (
	"io"
	"os"
)

// isStdinPiped checks if stdin is being piped to the program
func isStdinPiped() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// pipedStdin returns stdin when a document is piped in, nil for an interactive terminal
func pipedStdin() io.Reader {
	if !isStdinPiped() {
		return nil
	}
	return os.Stdin
}
