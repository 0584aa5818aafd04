package main

import (
	"github.com/dancojocaru2000/ttt-server/internal/cli"
)

func main() {
	cli.Execute()
}
