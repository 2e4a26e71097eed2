package main

import (
	"os"

	"github.com/wonny/twdiff/cmd/twdiff/commands"
)

// main is the entry point for the twdiff CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/twdiff [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
