// Command stocksage runs the StockSage web client.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "stocksage",
		Short: "The StockSage stock simulator web client",
		Long: `StockSage serves the pages of the stock simulator,
signing browsers in with the identity provider
and calling the StockSage backend on their behalf.

Configuration is read from environment variables or a .env file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		healthCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %s\n", color.RedString("Error:"), err)
		os.Exit(1)
	}
}
