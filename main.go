package main

import (
	"github.com/rubiojr/stringdoubles/cmd"
	_ "github.com/rubiojr/stringdoubles/modules/color"
	_ "github.com/rubiojr/stringdoubles/modules/doubles"
)

var version = "v0.1.0"

func main() {
	cmd.Execute(version)
}
