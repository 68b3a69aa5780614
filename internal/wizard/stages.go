package wizard

import (
	"fmt"
	"strings"

	"github.com/matthias/cv-wizard/internal/cvdata"
	"github.com/matthias/cv-wizard/internal/layout"
	"github.com/matthias/cv-wizard/internal/render"
	"github.com/matthias/cv-wizard/internal/session"
)

// langOf returns the session's display language, defaulting to German while
// the language has not been picked yet.
func langOf(s *session.Session) string {
	if s.TargetLanguage != "" {
		return s.TargetLanguage
	}
	return "de"
}

// directiveFor builds the canonical UI directive for the session's current
// stage. Every reply goes through here so the client always sees one
// consistent screen per stage, no matter which path led to it.
func (e *Engine) directiveFor(s *session.Session) *Directive {
	switch s.Stage {
	case session.StageLanguageSelection:
		return languageDirective(s)
	case session.StageImportGate:
		return importGateDirective(s)
	case session.StageContact:
		return contactDirective(s)
	case session.StageEducation:
		return educationDirective(s)
	case session.StageJobPosting:
		return postingDirective(s)
	case session.StageJobPostingPaste:
		return postingPasteDirective(s)
	case session.StageWorkNotesEdit:
		return notesDirective(s)
	case session.StageWorkExperience:
		return workDirective(s)
	case session.StageWorkTailorReview:
		return tailorReviewDirective(s, session.ProposalWork)
	case session.StageFurtherExperience:
		return furtherDirective(s)
	case session.StageITAISkills:
		return skillsDirective(s)
	case session.StageSkillsTailorRev:
		return tailorReviewDirective(s, session.ProposalSkills)
	case session.StageReviewFinal:
		return e.reviewDirective(s)
	case session.StageGenerateConfirm:
		return e.generateDirective(s)
	case session.StageDone:
		return doneDirective(s)
	case session.StageCoverLetterReview:
		return letterReviewDirective(s)
	default:
		return languageDirective(s)
	}
}

func languageDirective(s *session.Session) *Directive {
	lang := langOf(s)
	return &Directive{
		Kind:  KindReviewForm,
		Stage: s.Stage,
		Title: msg(lang, "language.title"),
		Text:  msg(lang, "language.welcome"),
		Actions: []Action{
			{ID: "lang_de", Label: msg(lang, "language.de"), Style: "primary"},
			{ID: "lang_en", Label: msg(lang, "language.en"), Style: "primary"},
		},
	}
}

func importGateDirective(s *session.Session) *Directive {
	lang := langOf(s)
	d := &Directive{
		Kind:            KindReviewForm,
		Stage:           s.Stage,
		Title:           msg(lang, "import.title"),
		Text:            msg(lang, "import.text"),
		DisableFreeText: true,
		Actions: []Action{
			{ID: "import_confirm", Label: msg(lang, "import.confirm"), Style: "primary"},
			{ID: "import_decline", Label: msg(lang, "import.decline"), Style: "secondary"},
		},
	}
	if p := s.Prefill; p != nil {
		d.Fields = []Field{
			{Key: "name", Label: msg(lang, "field.name"), Value: p.Contact.Name},
			{Key: "email", Label: msg(lang, "field.email"), Value: p.Contact.Email},
			{Key: "phone", Label: msg(lang, "field.phone"), Value: p.Contact.Phone},
			{Key: "address", Label: msg(lang, "field.address"), Value: p.Contact.Address},
			{Key: "work", Label: msg(lang, "review.edit_work"), Value: formatWorkEntries(p.Work)},
			{Key: "education", Label: msg(lang, "education.title"), Value: formatEducationEntries(p.Education)},
			{Key: "skills", Label: msg(lang, "field.skills"), Value: strings.Join(p.Skills, ", ")},
		}
	}
	return d
}

func contactDirective(s *session.Session) *Directive {
	lang := langOf(s)
	c := s.Canonical.Contact
	return &Directive{
		Kind:  KindEditForm,
		Stage: s.Stage,
		Title: msg(lang, "contact.title"),
		Text:  msg(lang, "contact.text"),
		Fields: []Field{
			{Key: "name", Label: msg(lang, "field.name"), Value: c.Name},
			{Key: "email", Label: msg(lang, "field.email"), Value: c.Email},
			{Key: "phone", Label: msg(lang, "field.phone"), Value: c.Phone},
			{Key: "address", Label: msg(lang, "field.address"), Value: c.Address},
			{Key: "links", Label: msg(lang, "field.links"), Value: strings.Join(c.Links, "\n")},
		},
		Actions: []Action{
			{ID: "contact_confirm", Label: msg(lang, "contact.confirm"), Style: "primary"},
		},
	}
}

func educationDirective(s *session.Session) *Directive {
	lang := langOf(s)
	return &Directive{
		Kind:  KindEditForm,
		Stage: s.Stage,
		Title: msg(lang, "education.title"),
		Text:  msg(lang, "education.text"),
		Fields: []Field{
			{Key: "education", Label: msg(lang, "education.title"), Value: formatEducationEntries(s.Canonical.Education)},
		},
		Actions: []Action{
			{ID: "education_confirm", Label: msg(lang, "education.confirm"), Style: "primary"},
		},
	}
}

func postingDirective(s *session.Session) *Directive {
	lang := langOf(s)
	return &Directive{
		Kind:  KindReviewForm,
		Stage: s.Stage,
		Title: msg(lang, "posting.title"),
		Text:  msg(lang, "posting.text"),
		Actions: []Action{
			{ID: "posting_paste", Label: msg(lang, "posting.paste"), Style: "primary"},
			{ID: "posting_skip", Label: msg(lang, "posting.skip"), Style: "secondary"},
		},
	}
}

func postingPasteDirective(s *session.Session) *Directive {
	lang := langOf(s)
	return &Directive{
		Kind:  KindEditForm,
		Stage: s.Stage,
		Title: msg(lang, "posting.paste_title"),
		Text:  msg(lang, "posting.paste_text"),
		Fields: []Field{
			{Key: "posting_text", Label: msg(lang, "field.posting"), Value: s.PendingPostingText},
		},
		Actions: []Action{
			{ID: "analyze_posting", Label: msg(lang, "posting.analyze"), Style: "primary"},
			{ID: "posting_discard", Label: msg(lang, "posting.discard"), Style: "danger"},
			{ID: "posting_skip", Label: msg(lang, "posting.skip"), Style: "secondary"},
		},
	}
}

func notesDirective(s *session.Session) *Directive {
	lang := langOf(s)
	return &Directive{
		Kind:  KindEditForm,
		Stage: s.Stage,
		Title: msg(lang, "notes.title"),
		Text:  msg(lang, "notes.text"),
		Fields: []Field{
			{Key: "notes", Label: msg(lang, "field.notes"), Value: s.TailoringNotes},
		},
		Actions: []Action{
			{ID: "notes_continue", Label: msg(lang, "notes.continue"), Style: "primary"},
		},
	}
}

func workDirective(s *session.Session) *Directive {
	lang := langOf(s)
	return &Directive{
		Kind:  KindEditForm,
		Stage: s.Stage,
		Title: msg(lang, "work.title"),
		Text:  msg(lang, "work.text"),
		Fields: []Field{
			{Key: "work", Label: msg(lang, "work.title"), Value: formatWorkEntries(s.Canonical.Work)},
		},
		Actions: []Action{
			{ID: "work_confirm", Label: msg(lang, "work.confirm"), Style: "primary"},
		},
	}
}

// tailorReviewDirective covers both tailoring review stages. With no pending
// proposal (a retry after a model failure) it degrades to retry/skip only.
func tailorReviewDirective(s *session.Session, kind session.ProposalKind) *Directive {
	lang := langOf(s)
	d := &Directive{
		Kind:            KindReviewForm,
		Stage:           s.Stage,
		Title:           msg(lang, "tailor.title"),
		Text:            msg(lang, "tailor.text"),
		DisableFreeText: true,
	}
	p := s.Proposal
	if p == nil || p.Kind != kind {
		d.Text = msg(lang, "tailor.none") + " " + msg(lang, "model.failed")
		d.Actions = []Action{
			{ID: "tailor_retry", Label: msg(lang, "tailor.retry"), Style: "primary"},
			{ID: "tailor_skip", Label: msg(lang, "tailor.skip"), Style: "secondary"},
		}
		return d
	}
	if p.Note != "" {
		d.Text = p.Note
	}
	switch kind {
	case session.ProposalWork:
		d.Fields = []Field{
			{Key: "proposal", Label: msg(lang, "work.title"), Value: formatWorkEntries(p.Work)},
			{Key: "current", Label: msg(lang, "tailor.reject"), Value: formatWorkEntries(s.Canonical.Work)},
		}
	case session.ProposalSkills:
		d.Fields = []Field{
			{Key: "proposal", Label: msg(lang, "field.skills"), Value: strings.Join(p.Skills, ", ")},
			{Key: "current", Label: msg(lang, "tailor.reject"), Value: strings.Join(s.Canonical.Skills, ", ")},
		}
	}
	d.Actions = []Action{
		{ID: "tailor_accept", Label: msg(lang, "tailor.accept"), Style: "primary"},
		{ID: "tailor_reject", Label: msg(lang, "tailor.reject"), Style: "secondary"},
		{ID: "tailor_retry", Label: msg(lang, "tailor.retry"), Style: "secondary"},
	}
	return d
}

func furtherDirective(s *session.Session) *Directive {
	lang := langOf(s)
	return &Directive{
		Kind:            KindEditForm,
		Stage:           s.Stage,
		Title:           msg(lang, "further.title"),
		Text:            msg(lang, "further.text"),
		DisableFreeText: true,
		Fields: []Field{
			{Key: "further", Label: msg(lang, "further.title"), Value: formatWorkEntries(s.Canonical.Further)},
		},
		Actions: []Action{
			{ID: "further_confirm", Label: msg(lang, "further.confirm"), Style: "primary"},
			{ID: "further_skip", Label: msg(lang, "further.skip"), Style: "secondary"},
		},
	}
}

func skillsDirective(s *session.Session) *Directive {
	lang := langOf(s)
	return &Directive{
		Kind:  KindEditForm,
		Stage: s.Stage,
		Title: msg(lang, "skills.title"),
		Text:  msg(lang, "skills.text"),
		Fields: []Field{
			{Key: "skills", Label: msg(lang, "field.skills"), Value: strings.Join(s.Canonical.Skills, ", ")},
		},
		Actions: []Action{
			{ID: "skills_confirm", Label: msg(lang, "skills.confirm"), Style: "primary"},
			{ID: "skills_skip", Label: msg(lang, "skills.skip"), Style: "secondary"},
		},
	}
}

// reviewDirective shows the full document summary together with the current
// layout verdict, so oversized sections surface before the user asks for a
// PDF.
func (e *Engine) reviewDirective(s *session.Session) *Directive {
	lang := langOf(s)
	res := layout.Validate(s.Canonical, e.limits)

	var text strings.Builder
	if res.IsValid {
		text.WriteString(msgf(lang, "review.valid", res.EstimatedPages))
	} else {
		text.WriteString(msgf(lang, "review.invalid", len(res.Errors)))
		for _, issue := range res.Errors {
			text.WriteString("\n- ")
			text.WriteString(issue.Remedy)
		}
	}

	d := &Directive{
		Kind:            KindReviewForm,
		Stage:           s.Stage,
		Title:           msg(lang, "review.title"),
		Text:            msg(lang, "review.text") + "\n\n" + text.String(),
		DisableFreeText: true,
		Fields: []Field{
			{Key: "summary", Label: msg(lang, "review.title"), Value: documentSummary(s, lang)},
			{Key: "profile", Label: msg(lang, "field.profile"), Value: s.Canonical.Profile},
			{Key: "theme", Label: msg(lang, "field.theme"), Value: themeOf(s)},
			{Key: "consent", Label: msg(lang, "field.consent"), Value: s.Canonical.ConsentText},
			{Key: "pages", Label: msg(lang, "field.pages"), Value: fmt.Sprintf("%.1f", res.EstimatedPages)},
		},
		Actions: []Action{
			{ID: "request_generate", Label: msg(lang, "review.generate"), Style: "primary"},
			{ID: "edit_contact", Label: msg(lang, "review.edit_contact"), Style: "secondary"},
			{ID: "edit_education", Label: msg(lang, "review.edit_education"), Style: "secondary"},
			{ID: "edit_work", Label: msg(lang, "review.edit_work"), Style: "secondary"},
			{ID: "edit_further", Label: msg(lang, "review.edit_further"), Style: "secondary"},
			{ID: "edit_skills", Label: msg(lang, "review.edit_skills"), Style: "secondary"},
		},
	}
	return d
}

func (e *Engine) generateDirective(s *session.Session) *Directive {
	lang := langOf(s)
	res := layout.Validate(s.Canonical, e.limits)
	return &Directive{
		Kind:            KindReviewForm,
		Stage:           s.Stage,
		Title:           msg(lang, "generate.title"),
		Text:            msgf(lang, "generate.text", res.EstimatedPages),
		DisableFreeText: true,
		Actions: []Action{
			{ID: "generate_confirm_yes", Label: msg(lang, "generate.yes"), Style: "primary"},
			{ID: "generate_cancel", Label: msg(lang, "generate.cancel"), Style: "secondary"},
		},
	}
}

func doneDirective(s *session.Session) *Directive {
	lang := langOf(s)
	return &Directive{
		Kind:            KindReviewForm,
		Stage:           s.Stage,
		Title:           msg(lang, "done.title"),
		Text:            msg(lang, "done.text"),
		DisableFreeText: true,
		Actions: []Action{
			{ID: "letter_generate", Label: msg(lang, "done.letter"), Style: "primary"},
			{ID: "edit_more", Label: msg(lang, "done.edit"), Style: "secondary"},
			{ID: "finish", Label: msg(lang, "done.finish"), Style: "secondary"},
		},
	}
}

func letterReviewDirective(s *session.Session) *Directive {
	lang := langOf(s)
	d := &Directive{
		Kind:            KindReviewForm,
		Stage:           s.Stage,
		Title:           msg(lang, "letter.title"),
		Text:            msg(lang, "letter.text"),
		DisableFreeText: true,
	}
	p := s.Proposal
	if p == nil || p.Kind != session.ProposalLetter {
		d.Text = msg(lang, "tailor.none") + " " + msg(lang, "model.failed")
		d.Actions = []Action{
			{ID: "letter_retry", Label: msg(lang, "letter.retry"), Style: "primary"},
			{ID: "letter_reject", Label: msg(lang, "letter.reject"), Style: "secondary"},
		}
		return d
	}
	d.Fields = []Field{
		{Key: "subject", Label: msg(lang, "field.subject"), Value: p.LetterSubject},
		{Key: "body", Label: msg(lang, "field.body"), Value: p.LetterBody},
	}
	d.Actions = []Action{
		{ID: "letter_accept", Label: msg(lang, "letter.accept"), Style: "primary"},
		{ID: "letter_reject", Label: msg(lang, "letter.reject"), Style: "secondary"},
		{ID: "letter_retry", Label: msg(lang, "letter.retry"), Style: "secondary"},
	}
	return d
}

func themeOf(s *session.Session) string {
	if s.Canonical.ThemeID != "" {
		return s.Canonical.ThemeID
	}
	return render.DefaultThemeID
}

func formatWorkEntries(entries []cvdata.WorkEntry) string {
	var b strings.Builder
	for i, w := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(w.Role)
		if w.Company != "" {
			b.WriteString(", " + w.Company)
		}
		if w.Start != "" || w.End != "" {
			b.WriteString(" (" + w.Start + " - " + w.End + ")")
		}
		for _, bullet := range w.Bullets {
			b.WriteString("\n  - " + bullet)
		}
	}
	return b.String()
}

func formatEducationEntries(entries []cvdata.EducationEntry) string {
	var b strings.Builder
	for i, ed := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(ed.Degree)
		if ed.Institution != "" {
			b.WriteString(", " + ed.Institution)
		}
		if ed.Start != "" || ed.End != "" {
			b.WriteString(" (" + ed.Start + " - " + ed.End + ")")
		}
		if ed.Note != "" {
			b.WriteString("\n  " + ed.Note)
		}
	}
	return b.String()
}

// documentSummary condenses the canonical document for the review screen.
func documentSummary(s *session.Session, lang string) string {
	d := s.Canonical
	lines := []string{
		msg(lang, "field.name") + ": " + d.Contact.Name,
		msg(lang, "field.email") + ": " + d.Contact.Email,
		fmt.Sprintf("%s: %d", msg(lang, "work.title"), len(d.Work)),
		fmt.Sprintf("%s: %d", msg(lang, "further.title"), len(d.Further)),
		fmt.Sprintf("%s: %d", msg(lang, "education.title"), len(d.Education)),
		msg(lang, "field.skills") + ": " + strings.Join(d.Skills, ", "),
	}
	if len(d.Languages) > 0 {
		lines = append(lines, msg(lang, "field.languages")+": "+strings.Join(d.Languages, ", "))
	}
	if len(d.Interests) > 0 {
		lines = append(lines, msg(lang, "field.interests")+": "+strings.Join(d.Interests, ", "))
	}
	if s.JobRef != nil {
		lines = append(lines, msg(lang, "field.posting")+": "+s.JobRef.Label())
	}
	return strings.Join(lines, "\n")
}
