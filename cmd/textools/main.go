package main

import (
	"os"

	"github.com/Fepozopo/textools/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
