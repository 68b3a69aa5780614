// Package completion wraps every wizard model call behind a strict output
// schema, a bounded retry policy and typed payload decoding. Callers see
// either a schema-valid Envelope or a ModelError, never raw model text.
package completion

import (
	"encoding/json"

	"github.com/matthias/cv-wizard/internal/llm"
)

// ResponseType classifies what a model reply asks the wizard to do next.
type ResponseType string

const (
	// TypeQuestion asks the user for missing information.
	TypeQuestion ResponseType = "question"
	// TypeProposal offers content that requires an explicit accept or reject.
	TypeProposal ResponseType = "proposal"
	// TypeConfirmation restates data for the user to confirm.
	TypeConfirmation ResponseType = "confirmation"
	// TypeStatusUpdate is informational and changes nothing.
	TypeStatusUpdate ResponseType = "status_update"
	// TypeError reports that the model could not perform the task.
	TypeError ResponseType = "error"
	// TypeCompletion reports a finished operation whose result is in the payload.
	TypeCompletion ResponseType = "completion"
)

// Section is one titled block inside a user-facing message.
type Section struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// UserMessage is the user-facing part of a model reply.
type UserMessage struct {
	Text      string    `json:"text"`
	Sections  []Section `json:"sections,omitempty"`
	Questions []string  `json:"questions,omitempty"`
}

// Metadata carries the model's self-assessment of a reply.
type Metadata struct {
	Confidence       float64 `json:"confidence"`
	ValidationStatus string  `json:"validation_status"`
}

// Envelope is the schema-enforced contract of every model call. Payload
// holds the operation-specific data and is decoded per call site via
// DecodePayload.
type Envelope struct {
	ResponseType ResponseType    `json:"response_type"`
	UserMessage  UserMessage     `json:"user_message"`
	Payload      json.RawMessage `json:"payload,omitempty"`
	Metadata     Metadata        `json:"metadata"`
	Refusal      string          `json:"refusal,omitempty"`
}

// Refused reports whether the model declined the task. A refused envelope
// is treated as a failed call regardless of its other content.
func (e *Envelope) Refused() bool {
	return e != nil && e.Refusal != ""
}

// Operation names one wizard model call: where its prompt lives and which
// model tier serves it.
type Operation struct {
	Name       string
	PromptFile string
	PromptKey  string
	Tier       llm.ModelTier
}

// The wizard's model operations.
var (
	OpExtractPrefill    = Operation{Name: "extract_prefill", PromptFile: "extraction.json", PromptKey: "extract-prefill", Tier: llm.TierLite}
	OpExtractContact    = Operation{Name: "extract_contact", PromptFile: "extraction.json", PromptKey: "extract-contact", Tier: llm.TierLite}
	OpExtractEducation  = Operation{Name: "extract_education", PromptFile: "extraction.json", PromptKey: "extract-education", Tier: llm.TierLite}
	OpAnalyzeJobPosting = Operation{Name: "analyze_job_posting", PromptFile: "tailoring.json", PromptKey: "analyze-job-posting", Tier: llm.TierStandard}
	OpTailorWork        = Operation{Name: "tailor_work", PromptFile: "tailoring.json", PromptKey: "tailor-work", Tier: llm.TierStandard}
	OpTailorSkills      = Operation{Name: "tailor_skills", PromptFile: "tailoring.json", PromptKey: "tailor-skills", Tier: llm.TierStandard}
	OpCoverLetter       = Operation{Name: "cover_letter", PromptFile: "letter.json", PromptKey: "cover-letter", Tier: llm.TierAdvanced}
)
