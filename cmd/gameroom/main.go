package main

import (
	"github.com/parlorhub/gameroom-go/internal/cli"
)

func main() {
	cli.Execute()
}
