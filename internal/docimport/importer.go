package docimport

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/matthias/cv-wizard/internal/completion"
	"github.com/matthias/cv-wizard/internal/cvdata"
)

// Importer builds an unconfirmed prefill document from an uploaded file.
// Text and photo extraction run concurrently; the photo is best-effort and
// never fails the import.
type Importer struct {
	completions *completion.Client
}

// NewImporter creates an importer over the given completion client.
func NewImporter(completions *completion.Client) *Importer {
	return &Importer{completions: completions}
}

// Import extracts the upload's text, structures it into resume sections via
// the model, and attaches an embedded photo when the document carries one.
// The returned document is prefill only; nothing is merged or persisted
// here.
func (i *Importer) Import(ctx context.Context, data []byte, language string) (*cvdata.Document, error) {
	var text, photo string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		text, err = ExtractText(data)
		return err
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		var err error
		photo, err = ExtractPhoto(data)
		if err != nil {
			log.Printf("docimport: photo extraction failed: %v", err)
			photo = ""
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	env, err := i.completions.Complete(ctx, completion.OpExtractPrefill, map[string]string{
		"ResumeText": text,
		"Language":   language,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to structure uploaded resume: %w", err)
	}

	var payload completion.PrefillPayload
	if err := completion.DecodePayload(env, &payload); err != nil {
		return nil, fmt.Errorf("failed to structure uploaded resume: %w", err)
	}

	doc := payload.ToDocument()
	doc.PhotoDataURI = photo
	return &doc, nil
}
