// Package main provides the entry point for the ATS tailoring agent.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ats_agent",
	Short: "ATS application tailoring agent",
	Long:  "ats_agent detects job postings on ATS pages, tailors a CV to the posting's keywords, renders application documents and attaches them into upload fields.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
