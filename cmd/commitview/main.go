package main

import (
	"fmt"
	"os"

	"github.com/just-nibble/commit-view/cmd/commitview/commands"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
