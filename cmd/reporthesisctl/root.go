package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "reporthesisctl",
	Long:         "Convert JUnit XML test reports to a self-contained HTML dashboard",
	SilenceUsage: true,
}
