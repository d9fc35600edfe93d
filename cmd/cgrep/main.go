package main

import (
	"os"

	"github.com/callum/cgrep/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute(os.Stdout, os.Stderr))
}
