// Package cli defines the console's command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "console",
	Short: "Monash Merchant console",
	Long: `Monash Merchant console is a single-user text-menu storefront.

Customers browse the inventory, fill a shopping cart and check out
against their credit balance; admins maintain the product inventory.
All data lives in flat files under the configured data directory.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
