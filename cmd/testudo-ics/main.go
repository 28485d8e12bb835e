package main

import (
	"github.com/pfrederiksen/testudo-ics/internal/cli"
)

func main() {
	cli.Execute()
}
