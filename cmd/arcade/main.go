package main

import (
	"github.com/retrogamehub/arcade/cmd/arcade/commands"
)

func main() {
	commands.Execute()
}
