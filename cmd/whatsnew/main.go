package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/whatsnew/internal/config"
)

var rootCmd = &cobra.Command{
	Use:     "whatsnew",
	Short:   "Merge PM highlighted features with release notes into one What's New document",
	Version: config.Version,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
