// Package main implements the cv_wizard CLI: the chat API server plus
// offline utilities around the same resume data model.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "cv_wizard",
	Short: "Conversational resume builder",
	Long:  "cv_wizard guides a user through a staged resume conversation over a JSON chat API and prints the confirmed result as a themed PDF.",
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the cv_wizard version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("cv_wizard", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
