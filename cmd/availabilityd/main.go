// Package main provides the availabilityd service binary.
//
// availabilityd exposes the asset availability state machine over HTTP,
// manages the database schema, and sweeps overdue owner locks.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
