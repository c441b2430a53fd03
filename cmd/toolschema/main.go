package main

import (
	"os"

	"github.com/keyrates/toolschema/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
