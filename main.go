package main

import (
	"os"

	"github.com/ishantk2507/ZeroWasteAI/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
