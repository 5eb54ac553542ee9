package main

import (
	"fmt"
	"os"

	"btouch/cmd"
	"btouch/internal/btouch"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(btouch.ExitCode(err))
	}
}
