// Package main provides the salesquery CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/salesquery/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
