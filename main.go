package main

import (
	"github.com/whiskerlabs/catstonks/internal/cli"
)

func main() {
	cli.Run()
}
