package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-tailor/internal/resume"
	"github.com/jonathan/ats-tailor/internal/schemas"
)

var (
	parseInputFile  string
	parseOutputFile string
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a resume file into structured JSON",
	Long:  "Parse a resume file (.txt, .md or .pdf) into the structured resume JSON the tailoring pipeline works on.",
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().StringVarP(&parseInputFile, "in", "i", "", "Path to resume file (required)")
	parseCmd.Flags().StringVarP(&parseOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	_ = parseCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(parseCmd)
}

func runParse(_ *cobra.Command, _ []string) error {
	parsed, err := resume.ParseFile(parseInputFile)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(parsed, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding resume: %w", err)
	}
	if err := schemas.Validate(schemas.StructuredResume, data); err != nil {
		return err
	}

	if parseOutputFile == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(parseOutputFile, data, 0644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	fmt.Printf("Parsed resume written to %s\n", parseOutputFile)
	return nil
}
