package main

import (
	"os"

	"github.com/hashicorp-forge/objectid/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
