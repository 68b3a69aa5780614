// Package render turns canonical resume data into PDF bytes. Each theme is
// an HTML template plus a stylesheet; a headless Chrome prints the page to
// A4.
package render

import (
	"context"
	"fmt"

	"github.com/matthias/cv-wizard/internal/cvdata"
)

// DefaultThemeID is used when a session never picked a theme.
const DefaultThemeID = "classic"

// Renderer produces the final PDF for a resume document. Implementations
// must be deterministic for identical inputs.
type Renderer interface {
	Render(ctx context.Context, doc *cvdata.Document, themeID string) ([]byte, error)
	RenderLetter(ctx context.Context, doc *cvdata.Document, letter *Letter, themeID string) ([]byte, error)
}

// Letter is an accepted cover letter draft. The sender block on the printed
// sheet comes from the document's contact data, not from the letter itself.
type Letter struct {
	Subject string
	Body    string
}

// Theme bundles one visual layout: the resume template, the letter template
// and the shared stylesheet. Letter may be empty; rendering then falls back
// to the built-in letter sheet.
type Theme struct {
	ID     string
	HTML   string
	Letter string
	CSS    string
}

// ThemeStore resolves theme ids. Unknown ids are a hard error at request
// time, reported as UnknownThemeError.
type ThemeStore interface {
	Load(id string) (*Theme, error)
	List() []string
}

// UnknownThemeError reports a theme id no store entry exists for.
type UnknownThemeError struct {
	ID string
}

func (e *UnknownThemeError) Error() string {
	return fmt.Sprintf("unknown theme: %s", e.ID)
}

// TemplateError represents an error parsing or executing a theme template.
type TemplateError struct {
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("template error: %s", e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError represents a general rendering failure.
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
