package wizard

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/matthias/cv-wizard/internal/completion"
	"github.com/matthias/cv-wizard/internal/cvdata"
	"github.com/matthias/cv-wizard/internal/session"
)

// notesFreeText collects tailoring guidance. More text extends the notes,
// it never overwrites them.
func (e *Engine) notesFreeText(ctx context.Context, s *session.Session, text string) *ChatResponse {
	if s.TailoringNotes == "" {
		s.TailoringNotes = text
	} else {
		s.TailoringNotes += "\n" + text
	}
	return e.reply(s, msg(langOf(s), "notes.saved"))
}

func (e *Engine) continueFromNotes(ctx context.Context, s *session.Session, _ json.RawMessage) *ChatResponse {
	s.Stage = session.StageWorkExperience
	return e.advanceReply(s)
}

type workPayload struct {
	Work []cvdata.WorkEntry `json:"work"`
}

func (e *Engine) updateWork(ctx context.Context, s *session.Session, payload json.RawMessage) *ChatResponse {
	var p workPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return e.guardReply(s, GuardInvalidAction, msg(langOf(s), "guard.payload"))
	}
	s.Canonical.MergeWork(p.Work)
	return e.reply(s, msg(langOf(s), "work.updated"))
}

// confirmWork locks the work section in. With an analyzed posting on file
// the tailoring proposal runs right away; without one the flow moves on.
func (e *Engine) confirmWork(ctx context.Context, s *session.Session, _ json.RawMessage) *ChatResponse {
	s.ConfirmWork()
	if s.ReturnToReview {
		s.ReturnToReview = false
		s.Stage = session.StageReviewFinal
		return e.advanceReply(s)
	}
	if s.JobRef != nil {
		return e.runWorkTailor(ctx, s)
	}
	s.Stage = session.StageFurtherExperience
	return e.advanceReply(s)
}

// runWorkTailor asks the model for a tailored work section and parks the
// result as a proposal. The run counter moves per attempt, failed ones
// included. The stage switches before the call so a failure lands the user
// on the review screen in its retry/skip form.
func (e *Engine) runWorkTailor(ctx context.Context, s *session.Session) *ChatResponse {
	lang := langOf(s)
	if s.JobRef == nil {
		return e.guardReply(s, GuardTailoringUnavailable, msg(lang, "guard.tailoring"))
	}
	s.Stage = session.StageWorkTailorReview
	s.Counters.WorkTailorRuns++

	refJSON, err := json.Marshal(s.JobRef)
	if err != nil {
		return internalReply(s)
	}
	workJSON, err := json.Marshal(s.Canonical.Work)
	if err != nil {
		return internalReply(s)
	}

	env, err := e.completions.Complete(ctx, completion.OpTailorWork, map[string]string{
		"JobReference":   string(refJSON),
		"Work":           string(workJSON),
		"Notes":          s.TailoringNotes,
		"MaxBullets":     strconv.Itoa(e.limits.Work.MaxBulletsPerEntry),
		"MaxBulletChars": strconv.Itoa(e.limits.Work.MaxBulletChars),
		"Language":       languageName(lang),
	})
	if err != nil {
		return e.modelFailReply(s, err)
	}
	if env.ResponseType == completion.TypeStatusUpdate {
		return e.statusReply(s, env.UserMessage.Text)
	}
	var p completion.WorkTailorPayload
	if err := completion.DecodePayload(env, &p); err != nil {
		return e.modelFailReply(s, err)
	}

	s.StageProposal(&session.Proposal{
		Kind: session.ProposalWork,
		Note: env.UserMessage.Text,
		Work: p.Work,
	})
	return e.reply(s, textOr(env.UserMessage.Text, msg(lang, "tailor.text")))
}

func (e *Engine) acceptWorkTailor(ctx context.Context, s *session.Session, _ json.RawMessage) *ChatResponse {
	if err := s.AcceptProposal(session.ProposalWork); err != nil {
		return e.guardReply(s, GuardInvalidAction, msg(langOf(s), "tailor.none"))
	}
	s.Stage = session.StageFurtherExperience
	return e.reply(s, msg(langOf(s), "tailor.accepted"))
}

func (e *Engine) rejectWorkTailor(ctx context.Context, s *session.Session, _ json.RawMessage) *ChatResponse {
	s.RejectProposal()
	s.Stage = session.StageFurtherExperience
	return e.reply(s, msg(langOf(s), "tailor.rejected"))
}

func (e *Engine) retryWorkTailor(ctx context.Context, s *session.Session, _ json.RawMessage) *ChatResponse {
	return e.runWorkTailor(ctx, s)
}

func (e *Engine) skipWorkTailor(ctx context.Context, s *session.Session, _ json.RawMessage) *ChatResponse {
	s.RejectProposal()
	s.Stage = session.StageFurtherExperience
	return e.advanceReply(s)
}

type furtherPayload struct {
	Further []cvdata.WorkEntry `json:"further"`
}

func (e *Engine) updateFurther(ctx context.Context, s *session.Session, payload json.RawMessage) *ChatResponse {
	var p furtherPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return e.guardReply(s, GuardInvalidAction, msg(langOf(s), "guard.payload"))
	}
	s.Canonical.MergeFurther(p.Further)
	return e.reply(s, msg(langOf(s), "further.updated"))
}

func (e *Engine) confirmFurther(ctx context.Context, s *session.Session, _ json.RawMessage) *ChatResponse {
	if s.ReturnToReview {
		s.ReturnToReview = false
		s.Stage = session.StageReviewFinal
		return e.advanceReply(s)
	}
	s.Stage = session.StageITAISkills
	return e.advanceReply(s)
}

func (e *Engine) skipFurther(ctx context.Context, s *session.Session, _ json.RawMessage) *ChatResponse {
	if s.ReturnToReview {
		s.ReturnToReview = false
		s.Stage = session.StageReviewFinal
		return e.advanceReply(s)
	}
	s.Stage = session.StageITAISkills
	return e.advanceReply(s)
}

type skillsPayload struct {
	Skills []string `json:"skills"`
}

func (e *Engine) updateSkills(ctx context.Context, s *session.Session, payload json.RawMessage) *ChatResponse {
	var p skillsPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return e.guardReply(s, GuardInvalidAction, msg(langOf(s), "guard.payload"))
	}
	s.Canonical.ReplaceSkills(p.Skills)
	return e.reply(s, msg(langOf(s), "skills.updated"))
}

// skillsFreeText takes plain typed skills, split on commas and line breaks.
func (e *Engine) skillsFreeText(ctx context.Context, s *session.Session, text string) *ChatResponse {
	skills := splitSkills(text)
	if len(skills) == 0 {
		return e.reply(s, msg(langOf(s), "skills.text"))
	}
	s.Canonical.ReplaceSkills(skills)
	return e.reply(s, msg(langOf(s), "skills.updated"))
}

func splitSkills(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '\n' || r == ';'
	})
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			skills = append(skills, t)
		}
	}
	return skills
}

func (e *Engine) confirmSkills(ctx context.Context, s *session.Session, _ json.RawMessage) *ChatResponse {
	s.ConfirmSkills()
	if s.ReturnToReview {
		s.ReturnToReview = false
		s.Stage = session.StageReviewFinal
		return e.advanceReply(s)
	}
	if s.JobRef != nil {
		return e.runSkillsTailor(ctx, s)
	}
	s.Stage = session.StageReviewFinal
	return e.advanceReply(s)
}

func (e *Engine) skipSkills(ctx context.Context, s *session.Session, _ json.RawMessage) *ChatResponse {
	s.Stage = session.StageReviewFinal
	return e.advanceReply(s)
}

// runSkillsTailor mirrors runWorkTailor for the skills list.
func (e *Engine) runSkillsTailor(ctx context.Context, s *session.Session) *ChatResponse {
	lang := langOf(s)
	if s.JobRef == nil {
		return e.guardReply(s, GuardTailoringUnavailable, msg(lang, "guard.tailoring"))
	}
	s.Stage = session.StageSkillsTailorRev
	s.Counters.SkillsTailorRuns++

	refJSON, err := json.Marshal(s.JobRef)
	if err != nil {
		return internalReply(s)
	}
	skillsJSON, err := json.Marshal(s.Canonical.Skills)
	if err != nil {
		return internalReply(s)
	}

	env, err := e.completions.Complete(ctx, completion.OpTailorSkills, map[string]string{
		"JobReference": string(refJSON),
		"Skills":       string(skillsJSON),
		"MaxItems":     strconv.Itoa(e.limits.Skills.MaxItems),
		"MaxItemChars": strconv.Itoa(e.limits.Skills.MaxItemChars),
		"Language":     languageName(lang),
	})
	if err != nil {
		return e.modelFailReply(s, err)
	}
	if env.ResponseType == completion.TypeStatusUpdate {
		return e.statusReply(s, env.UserMessage.Text)
	}
	var p completion.SkillsTailorPayload
	if err := completion.DecodePayload(env, &p); err != nil {
		return e.modelFailReply(s, err)
	}

	s.StageProposal(&session.Proposal{
		Kind:   session.ProposalSkills,
		Note:   env.UserMessage.Text,
		Skills: p.Skills,
	})
	return e.reply(s, textOr(env.UserMessage.Text, msg(lang, "tailor.text")))
}

func (e *Engine) acceptSkillsTailor(ctx context.Context, s *session.Session, _ json.RawMessage) *ChatResponse {
	if err := s.AcceptProposal(session.ProposalSkills); err != nil {
		return e.guardReply(s, GuardInvalidAction, msg(langOf(s), "tailor.none"))
	}
	s.Stage = session.StageReviewFinal
	return e.reply(s, msg(langOf(s), "tailor.accepted"))
}

func (e *Engine) rejectSkillsTailor(ctx context.Context, s *session.Session, _ json.RawMessage) *ChatResponse {
	s.RejectProposal()
	s.Stage = session.StageReviewFinal
	return e.reply(s, msg(langOf(s), "tailor.rejected"))
}

func (e *Engine) retrySkillsTailor(ctx context.Context, s *session.Session, _ json.RawMessage) *ChatResponse {
	return e.runSkillsTailor(ctx, s)
}

func (e *Engine) skipSkillsTailor(ctx context.Context, s *session.Session, _ json.RawMessage) *ChatResponse {
	s.RejectProposal()
	s.Stage = session.StageReviewFinal
	return e.advanceReply(s)
}

func textOr(text, fallback string) string {
	if strings.TrimSpace(text) != "" {
		return text
	}
	return fallback
}
