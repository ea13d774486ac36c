package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-tailor/internal/keywords"
)

var extractInputFile string

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract classified keywords from a job description",
	Long:  "Extract technology and process keywords from a job description text file and classify them into priority tiers.",
	RunE:  runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractInputFile, "in", "i", "", "Path to job description text file (required)")
	_ = extractCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(_ *cobra.Command, _ []string) error {
	description, err := os.ReadFile(extractInputFile)
	if err != nil {
		return fmt.Errorf("reading job description: %w", err)
	}

	set := keywords.Extract(string(description))
	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding keywords: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
