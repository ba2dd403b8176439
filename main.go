package main

import (
	"context"
	"fmt"
	"os"

	"postboard/service"
)

// exit is swapped out in tests.
var exit = os.Exit

func main() {
	RealMain()
}

// RealMain runs the CLI and exits with a non-zero status on error.
func RealMain() {
	if err := service.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exit(1)
	}
}
