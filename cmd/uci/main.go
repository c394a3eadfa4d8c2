// Package main provides the uci CLI tool for decoding UCI protocol lines and
// replaying recorded engine sessions.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
