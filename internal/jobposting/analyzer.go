package jobposting

import (
	"context"
	"fmt"
	"time"

	"github.com/matthias/cv-wizard/internal/completion"
)

// NotPostingError reports that the model classified the supplied text as
// something other than a job posting.
type NotPostingError struct {
	Message string
}

func (e *NotPostingError) Error() string {
	return fmt.Sprintf("text is not a job posting: %s", e.Message)
}

// Analysis is the outcome of one successful posting analysis.
type Analysis struct {
	Reference *Reference
	// Message is the model's summary for the user.
	Message string
}

// Analyzer turns posting text into a Reference via one structured
// completion call.
type Analyzer struct {
	completions *completion.Client
	now         func() time.Time
}

// NewAnalyzer creates an Analyzer on top of a completion client.
func NewAnalyzer(completions *completion.Client) *Analyzer {
	return &Analyzer{completions: completions, now: time.Now}
}

// Analyze extracts the posting essentials. source records provenance
// ("pasted" or the fetched URL); language is the human-readable output
// language for the user message.
func (a *Analyzer) Analyze(ctx context.Context, text, source, language string) (*Analysis, error) {
	if err := CheckPostingText(text); err != nil {
		return nil, err
	}

	env, err := a.completions.Complete(ctx, completion.OpAnalyzeJobPosting, map[string]string{
		"Posting":  text,
		"Language": language,
	})
	if err != nil {
		return nil, err
	}
	if env.ResponseType == completion.TypeError {
		return nil, &NotPostingError{Message: env.UserMessage.Text}
	}

	var payload completion.JobAnalysisPayload
	if err := completion.DecodePayload(env, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode job analysis: %w", err)
	}

	return &Analysis{
		Reference: &Reference{
			Company:    payload.Company,
			Title:      payload.Title,
			Location:   payload.Location,
			Seniority:  payload.Seniority,
			Skills:     payload.Skills,
			Summary:    payload.Summary,
			Source:     source,
			AnalyzedAt: a.now(),
		},
		Message: env.UserMessage.Text,
	}, nil
}
