package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ldksplicing/ldk-sample/cmd/cli/commands"
)

func main() {
	if err := commands.RootCmd.Execute(); err != nil {
		if !errors.Is(err, commands.ErrReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
