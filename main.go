package main

import (
	"os"

	"github.com/reposcope/reposcope/cmd"
)

func main() {
	code := cmd.Execute()
	os.Exit(code)
}
