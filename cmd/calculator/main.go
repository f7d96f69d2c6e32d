package main

import (
	"os"

	"calcHistory/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
