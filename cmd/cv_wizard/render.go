package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matthias/cv-wizard/internal/cvdata"
	"github.com/matthias/cv-wizard/internal/layout"
	"github.com/matthias/cv-wizard/internal/render"
	"github.com/matthias/cv-wizard/internal/schemas"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a resume document to PDF",
	Long:  "Renders a resume document JSON file to PDF through headless Chrome, applying the same layout gate the wizard uses.",
	RunE:  runRender,
}

var (
	renderInput     string
	renderOutput    string
	renderTheme     string
	renderThemesDir string
	renderChrome    string
	renderForce     bool
)

func init() {
	renderCmd.Flags().StringVarP(&renderInput, "in", "i", "", "Path to resume document JSON file (required)")
	renderCmd.Flags().StringVarP(&renderOutput, "out", "o", "", "Path to output PDF file (required)")
	renderCmd.Flags().StringVarP(&renderTheme, "theme", "t", render.DefaultThemeID, "Theme id")
	renderCmd.Flags().StringVar(&renderThemesDir, "themes-dir", "", "Directory with theme files (defaults to built-in themes)")
	renderCmd.Flags().StringVar(&renderChrome, "chrome", "", "Path to the Chrome binary (optional, auto-detected)")
	renderCmd.Flags().BoolVar(&renderForce, "force", false, "Render even when the layout check fails")

	if err := renderCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}
	if err := renderCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	content, err := os.ReadFile(renderInput)
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

	result := layout.Validate(doc, layout.DefaultLimits())
	if !result.IsValid && !renderForce {
		for _, e := range result.Errors {
			cmd.Printf("error: %s (measured %d, limit %d): %s\n", e.Field, e.Measured, e.Limit, e.Remedy)
		}
		return fmt.Errorf("layout check failed with %d error(s), use --force to render anyway", len(result.Errors))
	}

	var themes render.ThemeStore = render.NewEmbeddedThemeStore()
	if renderThemesDir != "" {
		themes = render.NewDirThemeStore(renderThemesDir)
	}

	renderer := render.NewPDFRenderer(themes, renderChrome)
	pdf, err := renderer.Render(context.Background(), &doc, renderTheme)
	if err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}

	if err := os.WriteFile(renderOutput, pdf, 0644); err != nil {
		return fmt.Errorf("failed to write PDF file: %w", err)
	}
	cmd.Printf("Wrote %s (%d bytes)\n", renderOutput, len(pdf))
	return nil
}
