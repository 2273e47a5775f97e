// Minimal entry point that delegates CLI handling to the cobra root command
package main

import (
	"github.com/vsinha/lotsizing/pkg/interfaces/cli/commands"
)

func main() {
	commands.Execute()
}
