// Package main provides the leapdraw drawing editor CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/leapdraw/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
