package main

import (
	"os"

	"github.com/meenmo/timevalue/cmd/tvm/internal/commands"
)

func main() {
	os.Exit(commands.Execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
