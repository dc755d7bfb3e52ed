package main

import (
	"os"

	"github.com/aussiebroadwan/dash/internal/dash/cli"
)

func main() {
	os.Exit(cli.Execute())
}
