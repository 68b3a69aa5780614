// Package wizard drives the staged resume conversation. It owns the stage
// machine, builds the UI directive for every reply, and is the only place
// that mutates sessions. Model calls, rendering, and persistence are behind
// collaborator interfaces so the flow can be tested without a browser, a
// database, or a live model.
package wizard

import (
	"context"
	"encoding/base64"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matthias/cv-wizard/internal/completion"
	"github.com/matthias/cv-wizard/internal/cvdata"
	"github.com/matthias/cv-wizard/internal/jobposting"
	"github.com/matthias/cv-wizard/internal/layout"
	"github.com/matthias/cv-wizard/internal/profilecache"
	"github.com/matthias/cv-wizard/internal/render"
	"github.com/matthias/cv-wizard/internal/session"
)

// DefaultSessionTTL bounds how long an idle wizard session stays resumable.
const DefaultSessionTTL = 24 * time.Hour

// Importer turns an uploaded resume file into a prefill document.
type Importer interface {
	Import(ctx context.Context, data []byte, language string) (*cvdata.Document, error)
}

// PostingAnalyzer distills raw posting text into a job reference.
type PostingAnalyzer interface {
	Analyze(ctx context.Context, text, source, language string) (*jobposting.Analysis, error)
}

// PostingFetcher loads the visible text behind a job posting URL.
type PostingFetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}

// FetcherFunc adapts a plain function to the PostingFetcher interface.
type FetcherFunc func(ctx context.Context, url string) (string, error)

func (f FetcherFunc) FetchText(ctx context.Context, url string) (string, error) {
	return f(ctx, url)
}

// Config wires the engine's collaborators. Store, Completions, Renderer and
// Themes are required; the rest degrade gracefully when nil.
type Config struct {
	Store       session.Store
	Profiles    profilecache.Store
	Completions *completion.Client
	Importer    Importer
	Analyzer    PostingAnalyzer
	Fetcher     PostingFetcher
	Renderer    render.Renderer
	Themes      render.ThemeStore
	Limits      layout.Limits
	SessionTTL  time.Duration
}

// Engine executes one chat turn at a time against a session.
type Engine struct {
	store       session.Store
	profiles    profilecache.Store
	completions *completion.Client
	importer    Importer
	analyzer    PostingAnalyzer
	fetcher     PostingFetcher
	renderer    render.Renderer
	themes      render.ThemeStore
	limits      layout.Limits
	ttl         time.Duration
	now         func() time.Time
}

// NewEngine builds an engine from cfg, filling in default limits and TTL.
func NewEngine(cfg Config) *Engine {
	limits := cfg.Limits
	if limits.MaxPages == 0 {
		limits = layout.DefaultLimits()
	}
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Engine{
		store:       cfg.Store,
		profiles:    cfg.Profiles,
		completions: cfg.Completions,
		importer:    cfg.Importer,
		analyzer:    cfg.Analyzer,
		fetcher:     cfg.Fetcher,
		renderer:    cfg.Renderer,
		themes:      cfg.Themes,
		limits:      limits,
		ttl:         ttl,
		now:         time.Now,
	}
}

// HandleMessage runs one turn: load or create the session, dispatch the
// request, persist the session once, and reply. The single save at the end
// keeps each turn all-or-nothing against the store.
func (e *Engine) HandleMessage(ctx context.Context, ownerID uuid.UUID, req *ChatRequest) *ChatResponse {
	if req == nil {
		req = &ChatRequest{}
	}
	if req.SessionID == "" {
		return e.createSession(ctx, ownerID, req)
	}

	id, err := uuid.Parse(req.SessionID)
	if err != nil {
		return lostSessionReply()
	}
	s, err := e.store.Get(ctx, id)
	if err != nil {
		if err == session.ErrNotFound {
			return lostSessionReply()
		}
		log.Printf("wizard: failed to load session %s: %v", id, err)
		return internalReply(nil)
	}
	if s.OwnerID != ownerID {
		return lostSessionReply()
	}
	if s.Expired(e.now()) {
		if err := e.store.Delete(ctx, s.ID); err != nil && err != session.ErrNotFound {
			log.Printf("wizard: failed to delete expired session %s: %v", s.ID, err)
		}
		return lostSessionReply()
	}

	resp := e.dispatch(ctx, s, req)

	s.Touch(e.now())
	if err := e.store.Save(ctx, s); err != nil {
		log.Printf("wizard: failed to save session %s: %v", s.ID, err)
		return storageReply(s)
	}
	return resp
}

// createSession starts a fresh wizard run. An uploaded file is imported
// right away so the result is waiting once the language is chosen; import
// failure is reported but never blocks the conversation.
func (e *Engine) createSession(ctx context.Context, ownerID uuid.UUID, req *ChatRequest) *ChatResponse {
	s := session.New(ownerID, e.ttl, e.now())
	if req.ClientContext != nil && req.ClientContext.FastPathProfile {
		s.FastPathRequested = true
	}

	importNote := ""
	if req.DocxBase64 != "" && e.importer != nil {
		raw, err := base64.StdEncoding.DecodeString(req.DocxBase64)
		if err != nil {
			importNote = msg("de", "import.failed")
		} else if doc, err := e.importer.Import(ctx, raw, "de"); err != nil {
			log.Printf("wizard: import failed for session %s: %v", s.ID, err)
			importNote = msg("de", "import.failed")
		} else {
			s.Prefill = doc
		}
	}

	if err := e.store.Create(ctx, s); err != nil {
		log.Printf("wizard: failed to create session: %v", err)
		return &ChatResponse{
			Success:  false,
			Error:    msg("de", "error.internal"),
			Metadata: map[string]any{"error_code": "storage_error"},
		}
	}

	text := msg("de", "language.welcome")
	if importNote != "" {
		text = importNote + "\n\n" + text
	}
	return e.reply(s, text)
}

// dispatch routes one request to the matching handler: button actions go
// through the transition table, URLs and pasted text through the posting
// path, and anything typed through the stage's free-text handler.
func (e *Engine) dispatch(ctx context.Context, s *session.Session, req *ChatRequest) *ChatResponse {
	if req.UserAction != nil && req.UserAction.ID != "" {
		if fn, ok := transitions[s.Stage][req.UserAction.ID]; ok {
			return fn(e, ctx, s, req.UserAction.Payload)
		}
		if knownAction(req.UserAction.ID) {
			return e.guardReply(s, GuardStageMismatch, msg(langOf(s), "guard.stage_mismatch"))
		}
		return e.guardReply(s, GuardInvalidAction, msg(langOf(s), "guard.invalid_action"))
	}
	if req.JobPostingURL != "" {
		return e.handlePostingURL(ctx, s, req.JobPostingURL)
	}
	if req.JobPostingText != "" {
		if s.JobRef != nil {
			return e.guardReply(s, GuardAlreadyAnalyzed, msgf(langOf(s), "posting.already", s.JobRef.Label()))
		}
		if s.Stage != session.StageJobPosting && s.Stage != session.StageJobPostingPaste {
			return e.guardReply(s, GuardStageMismatch, msg(langOf(s), "guard.stage_mismatch"))
		}
		return e.postingFreeText(ctx, s, req.JobPostingText)
	}
	if text := strings.TrimSpace(req.Message); text != "" {
		if fn, ok := freeTextHandlers[s.Stage]; ok {
			return fn(e, ctx, s, text)
		}
		return e.reply(s, msg(langOf(s), "freetext.disabled"))
	}
	return e.reply(s, e.directiveFor(s).Text)
}

// reply builds a successful response carrying the current stage's directive.
func (e *Engine) reply(s *session.Session, text string) *ChatResponse {
	return &ChatResponse{
		Success:   true,
		Response:  text,
		SessionID: s.ID.String(),
		UIAction:  e.directiveFor(s),
	}
}

func (e *Engine) replyWithMeta(s *session.Session, text string, meta map[string]any) *ChatResponse {
	resp := e.reply(s, text)
	resp.Metadata = meta
	return resp
}

// advanceReply replies after a stage transition, voicing the new stage's
// prompt as the chat message.
func (e *Engine) advanceReply(s *session.Session) *ChatResponse {
	return e.reply(s, e.directiveFor(s).Text)
}

// guardReply rejects a request. The stage's directive rides along so the
// client can re-render the screen the user is actually on.
func (e *Engine) guardReply(s *session.Session, code, text string) *ChatResponse {
	return &ChatResponse{
		Success:   false,
		Error:     text,
		SessionID: s.ID.String(),
		UIAction:  e.directiveFor(s),
		Metadata:  map[string]any{"error_code": code},
	}
}

// statusReply passes a status_update envelope through as plain text. No
// directive is attached and nothing from the envelope touches the session.
func (e *Engine) statusReply(s *session.Session, text string) *ChatResponse {
	return &ChatResponse{
		Success:   true,
		Response:  textOr(text, msg(langOf(s), "model.status")),
		SessionID: s.ID.String(),
	}
}

// modelFailReply reports a failed model call. The session stays on its
// current stage so the user can retry or move on.
func (e *Engine) modelFailReply(s *session.Session, err error) *ChatResponse {
	log.Printf("wizard: model call failed for session %s: %v", s.ID, err)
	return &ChatResponse{
		Success:   false,
		Error:     msg(langOf(s), "model.failed"),
		SessionID: s.ID.String(),
		UIAction:  e.directiveFor(s),
		Metadata:  map[string]any{"error_code": "model_error"},
	}
}

func lostSessionReply() *ChatResponse {
	return &ChatResponse{
		Success:  false,
		Error:    msg("de", "session.lost"),
		Metadata: map[string]any{"error_code": "session_not_found"},
	}
}

func internalReply(s *session.Session) *ChatResponse {
	resp := &ChatResponse{
		Success:  false,
		Error:    msg("de", "error.internal"),
		Metadata: map[string]any{"error_code": "internal_error"},
	}
	if s != nil {
		resp.SessionID = s.ID.String()
		resp.Error = msg(langOf(s), "error.internal")
	}
	return resp
}

func storageReply(s *session.Session) *ChatResponse {
	return &ChatResponse{
		Success:   false,
		Error:     msg(langOf(s), "error.internal"),
		SessionID: s.ID.String(),
		Metadata:  map[string]any{"error_code": "storage_error"},
	}
}
