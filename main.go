package main

import (
	"os"

	"github.com/jkowalczyk/retain/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
