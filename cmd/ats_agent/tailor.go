package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-tailor/internal/keywords"
	"github.com/jonathan/ats-tailor/internal/rendering"
	"github.com/jonathan/ats-tailor/internal/resume"
	"github.com/jonathan/ats-tailor/internal/tailoring"
	"github.com/jonathan/ats-tailor/internal/types"
)

var (
	tailorCVFile  string
	tailorJobFile string
	tailorOutDir  string
	tailorPDF     bool
)

var tailorCmd = &cobra.Command{
	Use:   "tailor",
	Short: "Tailor a CV to a job description",
	Long:  "Parse a CV, extract keywords from a job description and produce a tailored ATS-friendly document.",
	RunE:  runTailor,
}

func init() {
	tailorCmd.Flags().StringVar(&tailorCVFile, "cv", "", "Path to CV file (required)")
	tailorCmd.Flags().StringVar(&tailorJobFile, "job", "", "Path to job description text file (required)")
	tailorCmd.Flags().StringVarP(&tailorOutDir, "out", "o", ".", "Directory for generated documents")
	tailorCmd.Flags().BoolVar(&tailorPDF, "pdf", false, "Also render a PDF (requires Chrome)")
	_ = tailorCmd.MarkFlagRequired("cv")
	_ = tailorCmd.MarkFlagRequired("job")
	rootCmd.AddCommand(tailorCmd)
}

func runTailor(cmd *cobra.Command, _ []string) error {
	parsed, err := resume.ParseFile(tailorCVFile)
	if err != nil {
		return err
	}

	description, err := os.ReadFile(tailorJobFile)
	if err != nil {
		return fmt.Errorf("reading job description: %w", err)
	}

	set := keywords.Extract(string(description))
	if set.IsEmpty() {
		return fmt.Errorf("no keywords found in %s", tailorJobFile)
	}

	result := tailoring.Tailor(parsed, set)
	fmt.Printf("Match score: %d%%\n", result.Score)
	fmt.Printf("Matched:  %s\n", strings.Join(result.Matched, ", "))
	fmt.Printf("Injected: %s\n", strings.Join(result.Injected, ", "))
	if len(result.Missing) > 0 {
		fmt.Printf("Missing:  %s\n", strings.Join(result.Missing, ", "))
	}

	var renderer rendering.Renderer
	if tailorPDF {
		renderer = rendering.NewChromeRenderer(false)
	}
	att := rendering.RenderDocument(cmd.Context(), renderer, result.Tailored, types.DocumentCV)

	textPath := filepath.Join(tailorOutDir, strings.TrimSuffix(att.FileName, ".pdf")+".txt")
	if err := os.WriteFile(textPath, []byte(att.Text), 0644); err != nil {
		return fmt.Errorf("writing tailored CV: %w", err)
	}
	fmt.Printf("Wrote %s\n", textPath)

	if tailorPDF {
		if len(att.PDF) == 0 {
			return fmt.Errorf("PDF rendering produced no output")
		}
		pdfPath := filepath.Join(tailorOutDir, att.FileName)
		if err := os.WriteFile(pdfPath, att.PDF, 0644); err != nil {
			return fmt.Errorf("writing PDF: %w", err)
		}
		fmt.Printf("Wrote %s\n", pdfPath)
	}
	return nil
}
