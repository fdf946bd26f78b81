package main

import (
	"os"

	"github.com/raveheart1/relnote/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
