package main

import (
	"os"

	"github.com/rafa/screenux-screenshot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
