package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/matthias/cv-wizard/internal/jobposting"
	"github.com/matthias/cv-wizard/internal/session"
)

func (e *Engine) startPostingPaste(ctx context.Context, s *session.Session, _ json.RawMessage) *ChatResponse {
	s.Stage = session.StageJobPostingPaste
	return e.advanceReply(s)
}

// skipPosting continues without a posting. Without a job reference the
// tailoring stages later fall through automatically.
func (e *Engine) skipPosting(ctx context.Context, s *session.Session, _ json.RawMessage) *ChatResponse {
	s.PendingPostingText = ""
	s.Stage = session.StageWorkExperience
	return e.advanceReply(s)
}

func (e *Engine) discardPosting(ctx context.Context, s *session.Session, _ json.RawMessage) *ChatResponse {
	s.PendingPostingText = ""
	return e.reply(s, msg(langOf(s), "posting.discarded"))
}

// postingFreeText receives pasted posting text. The text is stored
// verbatim even when it is too short, so the user can extend it in place
// instead of pasting again.
func (e *Engine) postingFreeText(ctx context.Context, s *session.Session, text string) *ChatResponse {
	lang := langOf(s)
	if s.JobRef != nil {
		return e.guardReply(s, GuardAlreadyAnalyzed, msgf(lang, "posting.already", s.JobRef.Label()))
	}

	s.PendingPostingText = text
	s.Stage = session.StageJobPostingPaste

	if err := jobposting.CheckPostingText(text); err != nil {
		return e.guardReply(s, GuardPostingTooShort, msgf(lang, "posting.too_short", jobposting.MinPostingChars))
	}
	return e.reply(s, msgf(lang, "posting.received", len([]rune(strings.TrimSpace(text)))))
}

// analyzePendingPosting runs the stored paste through the analyzer.
func (e *Engine) analyzePendingPosting(ctx context.Context, s *session.Session, _ json.RawMessage) *ChatResponse {
	lang := langOf(s)
	if s.JobRef != nil {
		return e.guardReply(s, GuardAlreadyAnalyzed, msgf(lang, "posting.already", s.JobRef.Label()))
	}
	if err := jobposting.CheckPostingText(s.PendingPostingText); err != nil {
		return e.guardReply(s, GuardPostingTooShort, msgf(lang, "posting.too_short", jobposting.MinPostingChars))
	}
	return e.analyzePosting(ctx, s, s.PendingPostingText, "pasted")
}

// handlePostingURL fetches a posting page and analyzes its text. Only valid
// while the wizard is actually asking for a posting.
func (e *Engine) handlePostingURL(ctx context.Context, s *session.Session, url string) *ChatResponse {
	lang := langOf(s)
	if s.JobRef != nil {
		return e.guardReply(s, GuardAlreadyAnalyzed, msgf(lang, "posting.already", s.JobRef.Label()))
	}
	if s.Stage != session.StageJobPosting && s.Stage != session.StageJobPostingPaste {
		return e.guardReply(s, GuardStageMismatch, msg(lang, "guard.stage_mismatch"))
	}

	// Fetching is best-effort: the paste path always works.
	if e.fetcher == nil {
		s.Stage = session.StageJobPostingPaste
		return e.guardReply(s, "fetch_failed", msg(lang, "posting.fetch_failed"))
	}
	text, err := e.fetcher.FetchText(ctx, url)
	if err != nil {
		s.Stage = session.StageJobPostingPaste
		return e.guardReply(s, "fetch_failed", msg(lang, "posting.fetch_failed"))
	}
	return e.analyzePosting(ctx, s, text, url)
}

// analyzePosting is the single funnel into the analyzer. On success the
// reference is attached write-once and the flow moves on to tailoring
// guidance.
func (e *Engine) analyzePosting(ctx context.Context, s *session.Session, text, source string) *ChatResponse {
	lang := langOf(s)
	if e.analyzer == nil {
		return internalReply(s)
	}

	analysis, err := e.analyzer.Analyze(ctx, text, source, languageName(lang))
	if err != nil {
		var tooShort *jobposting.TooShortError
		if errors.As(err, &tooShort) {
			s.PendingPostingText = text
			s.Stage = session.StageJobPostingPaste
			return e.guardReply(s, GuardPostingTooShort, msgf(lang, "posting.too_short", jobposting.MinPostingChars))
		}
		var notPosting *jobposting.NotPostingError
		if errors.As(err, &notPosting) {
			s.PendingPostingText = text
			s.Stage = session.StageJobPostingPaste
			return e.guardReply(s, GuardInvalidAction, msg(lang, "posting.not_posting"))
		}
		return e.modelFailReply(s, err)
	}

	if err := s.AttachJobReference(analysis.Reference); err != nil {
		return e.guardReply(s, GuardAlreadyAnalyzed, msgf(lang, "posting.already", s.JobRef.Label()))
	}
	s.PendingPostingText = ""
	s.Stage = session.StageWorkNotesEdit

	if analysis.Message != "" {
		return e.reply(s, analysis.Message)
	}
	return e.reply(s, msgf(lang, "posting.analyzed", s.JobRef.Label()))
}
