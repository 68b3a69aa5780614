package wizard

import (
	"context"
	"encoding/json"

	"github.com/matthias/cv-wizard/internal/session"
)

// actionFunc handles one button action for one stage. Handlers mutate the
// session in memory; the engine persists it once per request after the
// handler returns.
type actionFunc func(e *Engine, ctx context.Context, s *session.Session, payload json.RawMessage) *ChatResponse

// freeTextFunc handles typed input for stages that accept it.
type freeTextFunc func(e *Engine, ctx context.Context, s *session.Session, text string) *ChatResponse

// transitions is the full stage/action table. Every reachable transition of
// the wizard is a row here; dispatch never switches on stage names anywhere
// else. An action id missing from the current stage's row but present in
// another row is a stage mismatch, anything else is unknown.
var transitions = map[session.Stage]map[string]actionFunc{
	session.StageLanguageSelection: {
		"lang_de": func(e *Engine, ctx context.Context, s *session.Session, _ json.RawMessage) *ChatResponse {
			return e.selectLanguage(ctx, s, "de")
		},
		"lang_en": func(e *Engine, ctx context.Context, s *session.Session, _ json.RawMessage) *ChatResponse {
			return e.selectLanguage(ctx, s, "en")
		},
	},
	session.StageImportGate: {
		"import_confirm": (*Engine).confirmImport,
		"import_decline": (*Engine).declineImport,
	},
	session.StageContact: {
		"contact_update":  (*Engine).updateContact,
		"contact_confirm": (*Engine).confirmContact,
	},
	session.StageEducation: {
		"education_update":  (*Engine).updateEducation,
		"education_confirm": (*Engine).confirmEducation,
	},
	session.StageJobPosting: {
		"posting_paste": (*Engine).startPostingPaste,
		"posting_skip":  (*Engine).skipPosting,
	},
	session.StageJobPostingPaste: {
		"analyze_posting": (*Engine).analyzePendingPosting,
		"posting_discard": (*Engine).discardPosting,
		"posting_skip":    (*Engine).skipPosting,
	},
	session.StageWorkNotesEdit: {
		"notes_continue": (*Engine).continueFromNotes,
	},
	session.StageWorkExperience: {
		"work_update":  (*Engine).updateWork,
		"work_confirm": (*Engine).confirmWork,
	},
	session.StageWorkTailorReview: {
		"tailor_accept": (*Engine).acceptWorkTailor,
		"tailor_reject": (*Engine).rejectWorkTailor,
		"tailor_retry":  (*Engine).retryWorkTailor,
		"tailor_skip":   (*Engine).skipWorkTailor,
	},
	session.StageFurtherExperience: {
		"further_update":  (*Engine).updateFurther,
		"further_confirm": (*Engine).confirmFurther,
		"further_skip":    (*Engine).skipFurther,
	},
	session.StageITAISkills: {
		"skills_update":  (*Engine).updateSkills,
		"skills_confirm": (*Engine).confirmSkills,
		"skills_skip":    (*Engine).skipSkills,
	},
	session.StageSkillsTailorRev: {
		"tailor_accept": (*Engine).acceptSkillsTailor,
		"tailor_reject": (*Engine).rejectSkillsTailor,
		"tailor_retry":  (*Engine).retrySkillsTailor,
		"tailor_skip":   (*Engine).skipSkillsTailor,
	},
	session.StageReviewFinal: {
		"edit_contact":     (*Engine).editContact,
		"edit_education":   (*Engine).editEducation,
		"edit_work":        (*Engine).editWork,
		"edit_further":     (*Engine).editFurther,
		"edit_skills":      (*Engine).editSkills,
		"profile_update":   (*Engine).updateProfile,
		"theme_select":     (*Engine).selectTheme,
		"consent_update":   (*Engine).updateConsent,
		"request_generate": (*Engine).requestGenerate,
	},
	session.StageGenerateConfirm: {
		"generate_confirm_yes": (*Engine).generatePDF,
		"generate_cancel":      (*Engine).cancelGenerate,
	},
	session.StageDone: {
		"letter_generate": (*Engine).generateLetter,
		"edit_more":       (*Engine).editMore,
		"finish":          (*Engine).finish,
	},
	session.StageCoverLetterReview: {
		"letter_accept": (*Engine).acceptLetter,
		"letter_reject": (*Engine).rejectLetter,
		"letter_retry":  (*Engine).retryLetter,
	},
}

// freeTextHandlers maps the stages that accept typed input to their handler.
// Stages absent here reply with a hint pointing at the buttons instead.
var freeTextHandlers = map[session.Stage]freeTextFunc{
	session.StageLanguageSelection: (*Engine).languageFreeText,
	session.StageContact:           (*Engine).contactFreeText,
	session.StageEducation:         (*Engine).educationFreeText,
	session.StageJobPosting:        (*Engine).postingFreeText,
	session.StageJobPostingPaste:   (*Engine).postingFreeText,
	session.StageWorkNotesEdit:     (*Engine).notesFreeText,
	session.StageWorkExperience:    (*Engine).notesFreeText,
	session.StageITAISkills:        (*Engine).skillsFreeText,
}

// knownAction reports whether id appears in any stage's row, to tell a stage
// mismatch from a made-up action id.
func knownAction(id string) bool {
	for _, row := range transitions {
		if _, ok := row[id]; ok {
			return true
		}
	}
	return false
}
