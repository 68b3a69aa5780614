// Package session defines the wizard's root aggregate and its persistence.
// A Session accumulates the resume draft across the staged conversation;
// its invariants (immutable language, write-once job reference, monotonic
// confirmations) are enforced here, not by callers.
package session

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/matthias/cv-wizard/internal/cvdata"
	"github.com/matthias/cv-wizard/internal/jobposting"
)

// Stage is the wizard stage a session currently renders.
type Stage string

// Wizard stages in their linear order. Review stages interleave after
// their tailoring runs; Done is terminal except for the cover letter offer.
const (
	StageLanguageSelection Stage = "language_selection"
	StageImportGate        Stage = "import_gate_pending"
	StageContact           Stage = "contact"
	StageEducation         Stage = "education"
	StageJobPosting        Stage = "job_posting"
	StageJobPostingPaste   Stage = "job_posting_paste"
	StageWorkNotesEdit     Stage = "work_notes_edit"
	StageWorkExperience    Stage = "work_experience"
	StageWorkTailorReview  Stage = "work_tailor_review"
	StageFurtherExperience Stage = "further_experience"
	StageITAISkills        Stage = "it_ai_skills"
	StageSkillsTailorRev   Stage = "skills_tailor_review"
	StageReviewFinal       Stage = "review_final"
	StageGenerateConfirm   Stage = "generate_confirm"
	StageDone              Stage = "done"
	StageCoverLetterReview Stage = "cover_letter_review"
)

// Flags are the per-section confirmations. They only ever flip to true.
type Flags struct {
	ContactConfirmed   bool `json:"contact_confirmed"`
	EducationConfirmed bool `json:"education_confirmed"`
	WorkConfirmed      bool `json:"work_confirmed"`
	SkillsConfirmed    bool `json:"skills_confirmed"`
}

// Counters tracks per-operation invocation counts for one-shot guards and
// diagnostics.
type Counters struct {
	JobAnalyses      int `json:"job_offer_analyze"`
	WorkTailorRuns   int `json:"work_tailor_runs"`
	SkillsTailorRuns int `json:"skills_tailor_runs"`
	PDFGenerations   int `json:"pdf_generations"`
	CoverLetterRuns  int `json:"cover_letter_runs"`
}

// ProposalKind names what a pending proposal would change on acceptance.
type ProposalKind string

const (
	ProposalWork   ProposalKind = "work"
	ProposalSkills ProposalKind = "skills"
	ProposalLetter ProposalKind = "cover_letter"
)

// Proposal is model-generated content awaiting an explicit accept or
// reject. It never touches canonical data until accepted.
type Proposal struct {
	Kind          ProposalKind       `json:"kind"`
	Note          string             `json:"note,omitempty"`
	Work          []cvdata.WorkEntry `json:"work,omitempty"`
	Skills        []string           `json:"skills,omitempty"`
	LetterSubject string             `json:"letter_subject,omitempty"`
	LetterBody    string             `json:"letter_body,omitempty"`
}

// LetterDraft is an accepted cover letter.
type LetterDraft struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Invariant violations reported by the mutating methods.
var (
	ErrLanguageSet    = errors.New("target language already set")
	ErrLanguageEmpty  = errors.New("target language empty")
	ErrJobRefExists   = errors.New("job reference already stored")
	ErrNoProposal     = errors.New("no pending proposal")
	ErrWrongProposal  = errors.New("pending proposal has a different kind")
)

// Session is the root aggregate, identified by a server-generated id that
// stays stable for the life of one resume build.
type Session struct {
	ID                 uuid.UUID             `json:"id"`
	OwnerID            uuid.UUID             `json:"owner_id"`
	Stage              Stage                 `json:"stage"`
	TargetLanguage     string                `json:"target_language,omitempty"`
	Canonical          cvdata.Document       `json:"canonical_data"`
	Prefill            *cvdata.Document      `json:"unconfirmed_prefill,omitempty"`
	Confirmed          Flags                 `json:"confirmed_flags"`
	JobRef             *jobposting.Reference `json:"job_reference,omitempty"`
	TailoringNotes     string                `json:"tailoring_notes,omitempty"`
	PendingPostingText string                `json:"pending_posting_text,omitempty"`
	Proposal           *Proposal             `json:"pending_proposal,omitempty"`
	CoverLetter        *LetterDraft          `json:"cover_letter,omitempty"`
	ReturnToReview     bool                  `json:"return_to_review,omitempty"`
	FastPathRequested  bool                  `json:"fast_path_requested,omitempty"`
	Counters           Counters              `json:"counters"`
	PDFGenerated       bool                  `json:"pdf_generated"`
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at"`
	ExpiresAt          time.Time             `json:"expires_at"`
}

// New creates a session at the language-selection stage.
func New(ownerID uuid.UUID, ttl time.Duration, now time.Time) *Session {
	return &Session{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Stage:     StageLanguageSelection,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// SetTargetLanguage fixes the output language. It is immutable once set.
// The canonical document inherits it so the renderer knows which section
// headings to use.
func (s *Session) SetTargetLanguage(lang string) error {
	if lang == "" {
		return ErrLanguageEmpty
	}
	if s.TargetLanguage != "" && s.TargetLanguage != lang {
		return ErrLanguageSet
	}
	s.TargetLanguage = lang
	s.Canonical.Language = lang
	return nil
}

// AttachJobReference stores the analyzed posting. Write-once: a second call
// fails and leaves the stored reference untouched. The analysis counter
// moves in the same step, so JobRef != nil implies JobAnalyses >= 1.
func (s *Session) AttachJobReference(ref *jobposting.Reference) error {
	if s.JobRef != nil {
		return ErrJobRefExists
	}
	s.JobRef = ref
	s.Counters.JobAnalyses++
	return nil
}

// ConfirmContact marks the contact block confirmed. Never unset.
func (s *Session) ConfirmContact() { s.Confirmed.ContactConfirmed = true }

// ConfirmEducation marks the education section confirmed. Never unset.
func (s *Session) ConfirmEducation() { s.Confirmed.EducationConfirmed = true }

// ConfirmWork marks the work section confirmed. Never unset.
func (s *Session) ConfirmWork() { s.Confirmed.WorkConfirmed = true }

// ConfirmSkills marks the skills section confirmed. Never unset.
func (s *Session) ConfirmSkills() { s.Confirmed.SkillsConfirmed = true }

// StageProposal parks model-generated content for review. Any previous
// pending proposal is superseded.
func (s *Session) StageProposal(p *Proposal) {
	s.Proposal = p
}

// AcceptProposal merges the pending proposal of the given kind into the
// session and clears it. Merging is all-or-nothing per call.
func (s *Session) AcceptProposal(kind ProposalKind) error {
	if s.Proposal == nil {
		return ErrNoProposal
	}
	if s.Proposal.Kind != kind {
		return ErrWrongProposal
	}

	switch kind {
	case ProposalWork:
		s.Canonical.MergeWork(s.Proposal.Work)
	case ProposalSkills:
		s.Canonical.ReplaceSkills(s.Proposal.Skills)
	case ProposalLetter:
		s.CoverLetter = &LetterDraft{Subject: s.Proposal.LetterSubject, Body: s.Proposal.LetterBody}
	}
	s.Proposal = nil
	return nil
}

// RejectProposal discards the pending proposal without touching canonical
// data.
func (s *Session) RejectProposal() {
	s.Proposal = nil
}

// MarkPDFGenerated records a successful render.
func (s *Session) MarkPDFGenerated() {
	s.PDFGenerated = true
	s.Counters.PDFGenerations++
}

// Expired reports whether the session passed its expiry time.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Touch bumps the update timestamp.
func (s *Session) Touch(now time.Time) {
	s.UpdatedAt = now
}
