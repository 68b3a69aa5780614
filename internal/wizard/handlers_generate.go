package wizard

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log"
	"strings"

	"github.com/matthias/cv-wizard/internal/completion"
	"github.com/matthias/cv-wizard/internal/layout"
	"github.com/matthias/cv-wizard/internal/render"
	"github.com/matthias/cv-wizard/internal/session"
)

// The edit_* actions hop back into a collection stage; the section's
// confirm action then returns straight to the review screen.

func (e *Engine) editContact(ctx context.Context, s *session.Session, _ json.RawMessage) *ChatResponse {
	return e.editSection(s, session.StageContact)
}

func (e *Engine) editEducation(ctx context.Context, s *session.Session, _ json.RawMessage) *ChatResponse {
	return e.editSection(s, session.StageEducation)
}

func (e *Engine) editWork(ctx context.Context, s *session.Session, _ json.RawMessage) *ChatResponse {
	return e.editSection(s, session.StageWorkExperience)
}

func (e *Engine) editFurther(ctx context.Context, s *session.Session, _ json.RawMessage) *ChatResponse {
	return e.editSection(s, session.StageFurtherExperience)
}

func (e *Engine) editSkills(ctx context.Context, s *session.Session, _ json.RawMessage) *ChatResponse {
	return e.editSection(s, session.StageITAISkills)
}

func (e *Engine) editSection(s *session.Session, target session.Stage) *ChatResponse {
	s.ReturnToReview = true
	s.Stage = target
	return e.reply(s, msg(langOf(s), "review.edit_hint"))
}

type profilePayload struct {
	Profile string `json:"profile"`
}

func (e *Engine) updateProfile(ctx context.Context, s *session.Session, payload json.RawMessage) *ChatResponse {
	var p profilePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return e.guardReply(s, GuardInvalidAction, msg(langOf(s), "guard.payload"))
	}
	s.Canonical.Profile = strings.TrimSpace(p.Profile)
	return e.reply(s, msg(langOf(s), "review.profile_updated"))
}

type themePayload struct {
	ThemeID string `json:"theme_id"`
}

// selectTheme validates the id against the theme store before storing it,
// so generation can never fail on a theme the review screen accepted.
func (e *Engine) selectTheme(ctx context.Context, s *session.Session, payload json.RawMessage) *ChatResponse {
	var p themePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return e.guardReply(s, GuardInvalidAction, msg(langOf(s), "guard.payload"))
	}
	if e.themes == nil {
		return e.guardReply(s, GuardInvalidAction, msg(langOf(s), "review.theme_unknown"))
	}
	if _, err := e.themes.Load(p.ThemeID); err != nil {
		return e.guardReply(s, GuardInvalidAction, msg(langOf(s), "review.theme_unknown"))
	}
	s.Canonical.ThemeID = p.ThemeID
	return e.reply(s, msg(langOf(s), "review.theme_set"))
}

type consentPayload struct {
	Text string `json:"text"`
}

func (e *Engine) updateConsent(ctx context.Context, s *session.Session, payload json.RawMessage) *ChatResponse {
	var p consentPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return e.guardReply(s, GuardInvalidAction, msg(langOf(s), "guard.payload"))
	}
	s.Canonical.ConsentText = strings.TrimSpace(p.Text)
	return e.reply(s, msg(langOf(s), "review.consent_updated"))
}

// requestGenerate gates the PDF behind readiness and a passing layout
// check. Only a fully valid document reaches the confirmation screen.
func (e *Engine) requestGenerate(ctx context.Context, s *session.Session, _ json.RawMessage) *ChatResponse {
	if !readinessMet(s.Confirmed.ContactConfirmed, s.Confirmed.EducationConfirmed) {
		return e.guardReply(s, GuardReadinessNotMet, msg(langOf(s), "guard.readiness"))
	}
	res := layout.Validate(s.Canonical, e.limits)
	if !res.IsValid {
		return e.layoutInvalidReply(s, res)
	}
	s.Stage = session.StageGenerateConfirm
	return e.advanceReply(s)
}

func (e *Engine) cancelGenerate(ctx context.Context, s *session.Session, _ json.RawMessage) *ChatResponse {
	s.Stage = session.StageReviewFinal
	return e.advanceReply(s)
}

// generatePDF re-checks readiness and layout, renders, and only on a
// successful render flips the session to done and ships the PDF bytes.
// No failure path carries PDF data.
func (e *Engine) generatePDF(ctx context.Context, s *session.Session, _ json.RawMessage) *ChatResponse {
	lang := langOf(s)
	if !readinessMet(s.Confirmed.ContactConfirmed, s.Confirmed.EducationConfirmed) {
		return e.guardReply(s, GuardReadinessNotMet, msg(lang, "guard.readiness"))
	}
	res := layout.Validate(s.Canonical, e.limits)
	if !res.IsValid {
		s.Stage = session.StageReviewFinal
		return e.layoutInvalidReply(s, res)
	}
	if e.renderer == nil {
		return internalReply(s)
	}

	doc := s.Canonical.Clone()
	pdf, err := e.renderer.Render(ctx, &doc, doc.ThemeID)
	if err != nil {
		var unknown *render.UnknownThemeError
		if errors.As(err, &unknown) {
			s.Stage = session.StageReviewFinal
			return e.guardReply(s, GuardInvalidAction, msg(lang, "review.theme_unknown"))
		}
		log.Printf("wizard: pdf render failed for session %s: %v", s.ID, err)
		return &ChatResponse{
			Success:   false,
			Error:     msg(lang, "generate.failed"),
			SessionID: s.ID.String(),
			UIAction:  e.directiveFor(s),
			Metadata:  map[string]any{"error_code": "render_error"},
		}
	}

	s.MarkPDFGenerated()
	s.Stage = session.StageDone
	resp := e.replyWithMeta(s, msg(lang, "generate.done"), map[string]any{
		"estimated_pages": res.EstimatedPages,
	})
	resp.PDFBase64 = base64.StdEncoding.EncodeToString(pdf)
	return resp
}

// layoutInvalidReply rejects generation and lists every violated limit with
// its remedy.
func (e *Engine) layoutInvalidReply(s *session.Session, res layout.Result) *ChatResponse {
	lang := langOf(s)
	var b strings.Builder
	b.WriteString(msgf(lang, "review.invalid", len(res.Errors)))
	for _, issue := range res.Errors {
		b.WriteString("\n- ")
		b.WriteString(issue.Remedy)
	}
	return &ChatResponse{
		Success:   false,
		Error:     b.String(),
		SessionID: s.ID.String(),
		UIAction:  e.directiveFor(s),
		Metadata:  map[string]any{"error_code": "layout_invalid"},
	}
}

func (e *Engine) generateLetter(ctx context.Context, s *session.Session, _ json.RawMessage) *ChatResponse {
	return e.runLetter(ctx, s)
}

func (e *Engine) retryLetter(ctx context.Context, s *session.Session, _ json.RawMessage) *ChatResponse {
	return e.runLetter(ctx, s)
}

// runLetter drafts a cover letter from the final document, the job
// reference and the collected guidance. Like the tailoring runs it stages
// a proposal; nothing lands in the session until the user accepts.
func (e *Engine) runLetter(ctx context.Context, s *session.Session) *ChatResponse {
	lang := langOf(s)
	s.Stage = session.StageCoverLetterReview
	s.Counters.CoverLetterRuns++

	cvJSON, err := json.Marshal(s.Canonical)
	if err != nil {
		return internalReply(s)
	}
	refText := "none"
	if s.JobRef != nil {
		refJSON, err := json.Marshal(s.JobRef)
		if err != nil {
			return internalReply(s)
		}
		refText = string(refJSON)
	}

	env, err := e.completions.Complete(ctx, completion.OpCoverLetter, map[string]string{
		"CvData":       string(cvJSON),
		"JobReference": refText,
		"Guidance":     s.TailoringNotes,
		"Language":     languageName(lang),
	})
	if err != nil {
		return e.modelFailReply(s, err)
	}
	if env.ResponseType == completion.TypeStatusUpdate {
		return e.statusReply(s, env.UserMessage.Text)
	}
	var p completion.LetterPayload
	if err := completion.DecodePayload(env, &p); err != nil {
		return e.modelFailReply(s, err)
	}

	s.StageProposal(&session.Proposal{
		Kind:          session.ProposalLetter,
		Note:          env.UserMessage.Text,
		LetterSubject: p.Letter.Subject,
		LetterBody:    p.Letter.Body,
	})
	return e.reply(s, textOr(env.UserMessage.Text, msg(lang, "letter.text")))
}

// acceptLetter prints the letter before storing the draft, so a failed
// print leaves the proposal staged and the accept retryable.
func (e *Engine) acceptLetter(ctx context.Context, s *session.Session, _ json.RawMessage) *ChatResponse {
	lang := langOf(s)
	if s.Proposal == nil || s.Proposal.Kind != session.ProposalLetter {
		return e.guardReply(s, GuardInvalidAction, msg(lang, "tailor.none"))
	}
	if e.renderer == nil {
		return internalReply(s)
	}

	doc := s.Canonical.Clone()
	letter := &render.Letter{Subject: s.Proposal.LetterSubject, Body: s.Proposal.LetterBody}
	pdf, err := e.renderer.RenderLetter(ctx, &doc, letter, doc.ThemeID)
	if err != nil {
		log.Printf("wizard: letter render failed for session %s: %v", s.ID, err)
		return &ChatResponse{
			Success:   false,
			Error:     msg(lang, "generate.failed"),
			SessionID: s.ID.String(),
			UIAction:  e.directiveFor(s),
			Metadata:  map[string]any{"error_code": "render_error"},
		}
	}

	if err := s.AcceptProposal(session.ProposalLetter); err != nil {
		return e.guardReply(s, GuardInvalidAction, msg(lang, "tailor.none"))
	}
	s.Stage = session.StageDone
	resp := e.replyWithMeta(s, msg(lang, "letter.accepted"), map[string]any{
		"letter_subject": s.CoverLetter.Subject,
		"letter_body":    s.CoverLetter.Body,
	})
	resp.PDFBase64 = base64.StdEncoding.EncodeToString(pdf)
	return resp
}

func (e *Engine) rejectLetter(ctx context.Context, s *session.Session, _ json.RawMessage) *ChatResponse {
	s.RejectProposal()
	s.Stage = session.StageDone
	return e.reply(s, msg(langOf(s), "letter.rejected"))
}

func (e *Engine) editMore(ctx context.Context, s *session.Session, _ json.RawMessage) *ChatResponse {
	s.Stage = session.StageReviewFinal
	return e.advanceReply(s)
}

func (e *Engine) finish(ctx context.Context, s *session.Session, _ json.RawMessage) *ChatResponse {
	return e.reply(s, msg(langOf(s), "done.farewell"))
}
