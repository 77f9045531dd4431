package main

import (
	"fmt"
	"os"

	"github.com/dbracewell/mango/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "mango:", err)
		os.Exit(1)
	}
}
