package wizard

import (
	"encoding/json"

	"github.com/matthias/cv-wizard/internal/session"
)

// DirectiveKind tags the shape of a UI directive. A review form presents
// read-only data with decision buttons; an edit form presents writable
// fields.
type DirectiveKind string

const (
	KindReviewForm DirectiveKind = "review_form"
	KindEditForm   DirectiveKind = "edit_form"
)

// Field is one labeled value inside a directive.
type Field struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// Action is one button the client should offer. Style is a hint only:
// "primary", "secondary" or "danger".
type Action struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Style string `json:"style,omitempty"`
}

// Directive tells the client what to render for the current stage.
// DisableFreeText is set on every review stage so typed text cannot race a
// structured decision.
type Directive struct {
	Kind            DirectiveKind `json:"kind"`
	Stage           session.Stage `json:"stage"`
	Title           string        `json:"title"`
	Text            string        `json:"text,omitempty"`
	Fields          []Field       `json:"fields,omitempty"`
	Actions         []Action      `json:"actions,omitempty"`
	DisableFreeText bool          `json:"disable_free_text"`
}

// UserAction is a structured button press, optionally carrying form data.
type UserAction struct {
	ID      string          `json:"id"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ClientContext carries per-request client preferences.
type ClientContext struct {
	FastPathProfile bool `json:"fast_path_profile,omitempty"`
}

// ChatRequest is one inbound wizard turn. DocxBase64 is only meaningful on
// session creation; later uploads are ignored.
type ChatRequest struct {
	Message        string         `json:"message,omitempty"`
	SessionID      string         `json:"session_id,omitempty"`
	DocxBase64     string         `json:"docx_base64,omitempty"`
	JobPostingURL  string         `json:"job_posting_url,omitempty"`
	JobPostingText string         `json:"job_posting_text,omitempty"`
	UserAction     *UserAction    `json:"user_action,omitempty"`
	ClientContext  *ClientContext `json:"client_context,omitempty"`
}

// ChatResponse is the outcome of one wizard turn. PDFBase64 is populated
// only when a document was actually produced in this turn.
type ChatResponse struct {
	Success   bool           `json:"success"`
	Response  string         `json:"response"`
	SessionID string         `json:"session_id,omitempty"`
	UIAction  *Directive     `json:"ui_action,omitempty"`
	PDFBase64 string         `json:"pdf_base64,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Error     string         `json:"error,omitempty"`
}
