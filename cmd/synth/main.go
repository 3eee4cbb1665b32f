package main

import (
	"os"

	"github.com/conduit-lang/synth/internal/cli/commands"
)

func main() {
	os.Exit(commands.Execute())
}
