package main

import (
	"github.com/Rorical/PaperChat/cmd"
)

var version = "dev"

func main() {
	cmd.Execute(version)
}
