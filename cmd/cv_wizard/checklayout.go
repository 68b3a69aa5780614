package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matthias/cv-wizard/internal/cvdata"
	"github.com/matthias/cv-wizard/internal/layout"
	"github.com/matthias/cv-wizard/internal/schemas"
)

var checkLayoutCmd = &cobra.Command{
	Use:   "check-layout",
	Short: "Validate a resume document against the layout limits",
	Long:  "Checks a resume document JSON file against the schema and the one-page layout limits, the same gate the wizard applies before printing a PDF.",
	RunE:  runCheckLayout,
}

var (
	checkLayoutInput  string
	checkLayoutLimits string
	checkLayoutOutput string
)

func init() {
	checkLayoutCmd.Flags().StringVarP(&checkLayoutInput, "in", "i", "", "Path to resume document JSON file (required)")
	checkLayoutCmd.Flags().StringVar(&checkLayoutLimits, "limits", "", "Path to layout limits YAML file (defaults to built-in limits)")
	checkLayoutCmd.Flags().StringVarP(&checkLayoutOutput, "out", "o", "", "Path to write the validation result JSON (optional)")

	if err := checkLayoutCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(checkLayoutCmd)
}

func runCheckLayout(cmd *cobra.Command, _ []string) error {
	content, err := os.ReadFile(checkLayoutInput)
	if err != nil {
		return fmt.Errorf("failed to read document file: %w", err)
	}

	if err := schemas.ValidateDocument(string(content)); err != nil {
		return fmt.Errorf("document schema validation failed: %w", err)
	}

	var doc cvdata.Document
	if err := json.Unmarshal(content, &doc); err != nil {
		return fmt.Errorf("failed to unmarshal document JSON: %w", err)
	}

	limits := layout.DefaultLimits()
	if checkLayoutLimits != "" {
		limits, err = layout.LoadLimits(checkLayoutLimits)
		if err != nil {
			return fmt.Errorf("failed to load limits file: %w", err)
		}
	}

	result := layout.Validate(doc, limits)

	if checkLayoutOutput != "" {
		payload, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		if err := os.WriteFile(checkLayoutOutput, payload, 0644); err != nil {
			return fmt.Errorf("failed to write result file: %w", err)
		}
	}

	cmd.Printf("Estimated pages: %.2f\n", result.EstimatedPages)
	for _, w := range result.Warnings {
		cmd.Printf("warning: %s: %s\n", w.Field, w.Remedy)
	}
	for _, e := range result.Errors {
		cmd.Printf("error: %s (measured %d, limit %d): %s\n", e.Field, e.Measured, e.Limit, e.Remedy)
	}
	if !result.IsValid {
		return fmt.Errorf("layout check failed with %d error(s)", len(result.Errors))
	}

	cmd.Println("Layout OK")
	return nil
}
