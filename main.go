package main

import (
	"os"

	"github.com/mkraj/apiprobe/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
