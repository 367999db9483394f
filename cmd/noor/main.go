package main

import (
	"os"

	"github.com/mmcdole/noor/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
