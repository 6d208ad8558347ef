// Package main provides the fizzbuzz command line tool.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
