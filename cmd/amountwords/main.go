package main

import (
	"os"

	"github.com/dalemusser/amountwords/internal/cli"
)

func main() {
	os.Exit(cli.Run("amountwords", os.Args[1:]))
}
