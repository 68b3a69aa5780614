package session

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthias/cv-wizard/internal/cvdata"
	"github.com/matthias/cv-wizard/internal/jobposting"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return New(uuid.New(), 24*time.Hour, now)
}

func TestNewSessionStartsAtLanguageSelection(t *testing.T) {
	owner := uuid.New()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	s := New(owner, 24*time.Hour, now)

	assert.Equal(t, owner, s.OwnerID)
	assert.Equal(t, StageLanguageSelection, s.Stage)
	assert.Equal(t, now, s.CreatedAt)
	assert.Equal(t, now.Add(24*time.Hour), s.ExpiresAt)
	assert.Empty(t, s.TargetLanguage)
	assert.Nil(t, s.JobRef)
	assert.False(t, s.PDFGenerated)
}

func TestSetTargetLanguage(t *testing.T) {
	s := newTestSession(t)

	require.NoError(t, s.SetTargetLanguage("de"))
	assert.Equal(t, "de", s.TargetLanguage)

	// Repeating the same choice is a no-op.
	require.NoError(t, s.SetTargetLanguage("de"))
	assert.Equal(t, "de", s.TargetLanguage)

	// Switching is rejected and the stored value survives.
	err := s.SetTargetLanguage("en")
	assert.ErrorIs(t, err, ErrLanguageSet)
	assert.Equal(t, "de", s.TargetLanguage)
}

func TestSetTargetLanguageRejectsEmpty(t *testing.T) {
	s := newTestSession(t)

	err := s.SetTargetLanguage("")
	assert.ErrorIs(t, err, ErrLanguageEmpty)
	assert.Empty(t, s.TargetLanguage)
}

func TestAttachJobReferenceIsWriteOnce(t *testing.T) {
	s := newTestSession(t)
	first := &jobposting.Reference{Company: "Acme", Title: "Backend Engineer"}

	require.NoError(t, s.AttachJobReference(first))
	require.NotNil(t, s.JobRef)
	assert.Equal(t, "Acme", s.JobRef.Company)
	assert.Equal(t, 1, s.Counters.JobAnalyses)

	err := s.AttachJobReference(&jobposting.Reference{Company: "Globex"})
	assert.ErrorIs(t, err, ErrJobRefExists)
	assert.Equal(t, "Acme", s.JobRef.Company)
	assert.Equal(t, 1, s.Counters.JobAnalyses)
}

func TestConfirmFlagsAreMonotonic(t *testing.T) {
	s := newTestSession(t)

	s.ConfirmContact()
	s.ConfirmEducation()
	s.ConfirmWork()
	s.ConfirmSkills()

	assert.True(t, s.Confirmed.ContactConfirmed)
	assert.True(t, s.Confirmed.EducationConfirmed)
	assert.True(t, s.Confirmed.WorkConfirmed)
	assert.True(t, s.Confirmed.SkillsConfirmed)

	// A second confirmation changes nothing.
	s.ConfirmContact()
	assert.True(t, s.Confirmed.ContactConfirmed)
}

func TestAcceptProposalWork(t *testing.T) {
	s := newTestSession(t)
	s.Canonical.Work = []cvdata.WorkEntry{{Company: "Old Corp", Role: "Clerk"}}

	s.StageProposal(&Proposal{
		Kind: ProposalWork,
		Work: []cvdata.WorkEntry{{Company: "Acme", Role: "Engineer", Bullets: []string{"Built the thing"}}},
	})
	require.NoError(t, s.AcceptProposal(ProposalWork))

	require.Len(t, s.Canonical.Work, 1)
	assert.Equal(t, "Acme", s.Canonical.Work[0].Company)
	assert.Nil(t, s.Proposal)
}

func TestAcceptProposalSkills(t *testing.T) {
	s := newTestSession(t)
	s.Canonical.Skills = []string{"Excel"}

	s.StageProposal(&Proposal{Kind: ProposalSkills, Skills: []string{"Go", "PostgreSQL"}})
	require.NoError(t, s.AcceptProposal(ProposalSkills))

	assert.Equal(t, []string{"Go", "PostgreSQL"}, s.Canonical.Skills)
	assert.Nil(t, s.Proposal)
}

func TestAcceptProposalLetter(t *testing.T) {
	s := newTestSession(t)

	s.StageProposal(&Proposal{
		Kind:          ProposalLetter,
		LetterSubject: "Application for Backend Engineer",
		LetterBody:    "Dear hiring team,",
	})
	require.NoError(t, s.AcceptProposal(ProposalLetter))

	require.NotNil(t, s.CoverLetter)
	assert.Equal(t, "Application for Backend Engineer", s.CoverLetter.Subject)
	assert.Nil(t, s.Proposal)
}

func TestAcceptProposalKindMismatch(t *testing.T) {
	s := newTestSession(t)
	s.Canonical.Skills = []string{"Excel"}
	s.StageProposal(&Proposal{Kind: ProposalWork, Work: []cvdata.WorkEntry{{Company: "Acme", Role: "Engineer"}}})

	err := s.AcceptProposal(ProposalSkills)

	assert.ErrorIs(t, err, ErrWrongProposal)
	// Nothing merged, proposal still pending.
	assert.Equal(t, []string{"Excel"}, s.Canonical.Skills)
	assert.Empty(t, s.Canonical.Work)
	assert.NotNil(t, s.Proposal)
}

func TestAcceptProposalWithoutPending(t *testing.T) {
	s := newTestSession(t)

	err := s.AcceptProposal(ProposalWork)
	assert.ErrorIs(t, err, ErrNoProposal)
}

func TestRejectProposalKeepsCanonicalData(t *testing.T) {
	s := newTestSession(t)
	s.Canonical.Work = []cvdata.WorkEntry{{Company: "Old Corp", Role: "Clerk"}}
	s.StageProposal(&Proposal{Kind: ProposalWork, Work: []cvdata.WorkEntry{{Company: "Acme", Role: "Engineer"}}})

	s.RejectProposal()

	assert.Nil(t, s.Proposal)
	require.Len(t, s.Canonical.Work, 1)
	assert.Equal(t, "Old Corp", s.Canonical.Work[0].Company)
}

func TestMarkPDFGenerated(t *testing.T) {
	s := newTestSession(t)

	s.MarkPDFGenerated()
	s.MarkPDFGenerated()

	assert.True(t, s.PDFGenerated)
	assert.Equal(t, 2, s.Counters.PDFGenerations)
}

func TestExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s := New(uuid.New(), time.Hour, now)

	assert.False(t, s.Expired(now))
	assert.False(t, s.Expired(now.Add(time.Hour)))
	assert.True(t, s.Expired(now.Add(time.Hour+time.Second)))
}

func TestTouch(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s := New(uuid.New(), time.Hour, now)

	later := now.Add(10 * time.Minute)
	s.Touch(later)

	assert.Equal(t, later, s.UpdatedAt)
	assert.Equal(t, now, s.CreatedAt)
}
