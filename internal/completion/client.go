package completion

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/matthias/cv-wizard/internal/llm"
	"github.com/matthias/cv-wizard/internal/prompts"
	"github.com/matthias/cv-wizard/internal/schemas"
)

// DefaultMaxAttempts bounds how often one operation is retried when the
// model returns empty or schema-invalid output.
const DefaultMaxAttempts = 3

// ModelError reports an operation whose replies never passed validation, or
// that the model refused. It is terminal for the current action: the caller
// surfaces it with a skip affordance and session state stays untouched.
type ModelError struct {
	Operation string
	Attempts  int
	Refusal   string
	Cause     error
}

func (e *ModelError) Error() string {
	if e.Refusal != "" {
		return fmt.Sprintf("model refused %s: %s", e.Operation, e.Refusal)
	}
	return fmt.Sprintf("model output for %s invalid after %d attempts: %v", e.Operation, e.Attempts, e.Cause)
}

func (e *ModelError) Unwrap() error {
	return e.Cause
}

// Refused reports whether the failure was a refusal rather than malformed output.
func (e *ModelError) Refused() bool {
	return e.Refusal != ""
}

// envelopeInstructions is appended to every prompt so the model knows the
// reply contract. Kept in one place; the per-operation prompts describe only
// the task and the payload fields.
const envelopeInstructions = `Reply with a single JSON object and nothing else. Exact shape:
{
  "response_type": "question" | "proposal" | "confirmation" | "status_update" | "error" | "completion",
  "user_message": {"text": string, "sections": [{"heading": string, "body": string}], "questions": [string]},
  "payload": object with exactly the fields named in the task, or null,
  "metadata": {"confidence": number between 0 and 1, "validation_status": string},
  "refusal": null, or a short reason if you cannot do the task
}
No extra fields, no markdown fences, no text outside the JSON object.`

// Client issues schema-enforced completions over an LLM client.
type Client struct {
	llm         llm.Client
	maxAttempts int
}

// NewClient creates a completion client. maxAttempts <= 0 selects
// DefaultMaxAttempts.
func NewClient(llmClient llm.Client, maxAttempts int) *Client {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Client{llm: llmClient, maxAttempts: maxAttempts}
}

// Complete renders the operation's prompt, calls the model and returns the
// first schema-valid envelope. Invalid output is retried up to the attempt
// cap with the validation failure appended to the reprompt; nothing is
// persisted between attempts. A refusal ends the call immediately.
func (c *Client) Complete(ctx context.Context, op Operation, data map[string]string) (*Envelope, error) {
	base, err := prompts.Render(op.PromptFile, op.PromptKey, data)
	if err != nil {
		return nil, fmt.Errorf("failed to render prompt for %s: %w", op.Name, err)
	}
	prompt := base + "\n\n" + envelopeInstructions

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("completion %s aborted: %w", op.Name, err)
		}

		raw, err := c.llm.GenerateJSON(ctx, prompt, op.Tier)
		if err != nil {
			lastErr = err
			log.Printf("completion: %s attempt %d/%d transport error: %v", op.Name, attempt, c.maxAttempts, err)
			continue
		}
		if raw == "" {
			lastErr = fmt.Errorf("empty response")
			log.Printf("completion: %s attempt %d/%d returned empty output", op.Name, attempt, c.maxAttempts)
			continue
		}

		if err := schemas.ValidateEnvelope(raw); err != nil {
			lastErr = err
			log.Printf("completion: %s attempt %d/%d schema-invalid: %v", op.Name, attempt, c.maxAttempts, err)
			prompt = base + "\n\n" + envelopeInstructions + fmt.Sprintf("\n\nYour previous reply was rejected:\n%v\nReturn a corrected JSON object.", err)
			continue
		}

		var env Envelope
		if err := json.Unmarshal([]byte(raw), &env); err != nil {
			lastErr = fmt.Errorf("failed to decode envelope: %w", err)
			continue
		}

		if env.Refused() {
			return nil, &ModelError{Operation: op.Name, Attempts: attempt, Refusal: env.Refusal}
		}
		return &env, nil
	}

	return nil, &ModelError{Operation: op.Name, Attempts: c.maxAttempts, Cause: lastErr}
}
