package main

import (
	"fmt"
	"os"

	"github.com/tablerohq/tablero/cmd"
	"github.com/tablerohq/tablero/internal/logging"
)

func main() {
	if _, err := logging.Init(); err != nil {
		// Logging is best-effort; the board still works without it.
		fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
	}

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
