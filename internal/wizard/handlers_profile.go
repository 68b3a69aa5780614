package wizard

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/matthias/cv-wizard/internal/completion"
	"github.com/matthias/cv-wizard/internal/cvdata"
	"github.com/matthias/cv-wizard/internal/profilecache"
	"github.com/matthias/cv-wizard/internal/session"
)

// selectLanguage locks the output language and routes to the next stage:
// the import gate when an upload is waiting, straight to the job posting
// when the fast path can restore a stored profile, the contact form
// otherwise.
func (e *Engine) selectLanguage(ctx context.Context, s *session.Session, lang string) *ChatResponse {
	if err := s.SetTargetLanguage(lang); err != nil {
		return e.guardReply(s, GuardInvalidAction, msg(langOf(s), "language.locked"))
	}

	if s.Prefill != nil {
		s.Stage = session.StageImportGate
		return e.reply(s, msg(lang, "import.intro"))
	}

	if s.FastPathRequested {
		if entry := e.cachedProfile(ctx, s, lang); entry != nil {
			s.Canonical.Contact = entry.Contact
			s.Canonical.Education = entry.Education
			s.ConfirmContact()
			s.ConfirmEducation()
			s.Stage = session.StageJobPosting
			return e.reply(s, msg(lang, "fastpath.applied"))
		}
	}

	s.Stage = session.StageContact
	return e.reply(s, msg(lang, "contact.intro"))
}

// cachedProfile looks the owner's profile up for exactly the chosen
// language. A cache miss or error just means the slow path.
func (e *Engine) cachedProfile(ctx context.Context, s *session.Session, lang string) *profilecache.Entry {
	if e.profiles == nil {
		return nil
	}
	entry, err := e.profiles.Get(ctx, s.OwnerID, lang)
	if err != nil {
		if err != profilecache.ErrNotFound {
			log.Printf("wizard: profile cache lookup failed for session %s: %v", s.ID, err)
		}
		return nil
	}
	return entry
}

func (e *Engine) languageFreeText(ctx context.Context, s *session.Session, text string) *ChatResponse {
	switch normalizeLanguage(text) {
	case "de":
		return e.selectLanguage(ctx, s, "de")
	case "en":
		return e.selectLanguage(ctx, s, "en")
	default:
		return e.reply(s, msg(langOf(s), "language.hint"))
	}
}

func normalizeLanguage(text string) string {
	t := strings.ToLower(strings.TrimSpace(text))
	switch {
	case t == "de" || strings.Contains(t, "deutsch") || strings.Contains(t, "german"):
		return "de"
	case t == "en" || strings.Contains(t, "english") || strings.Contains(t, "englisch"):
		return "en"
	default:
		return ""
	}
}

// confirmImport adopts the extracted prefill into the canonical document.
// Nothing is confirmed by it: the user still walks through every section.
func (e *Engine) confirmImport(ctx context.Context, s *session.Session, _ json.RawMessage) *ChatResponse {
	if s.Prefill == nil {
		return e.guardReply(s, GuardInvalidAction, msg(langOf(s), "guard.invalid_action"))
	}
	s.Canonical.AdoptPrefill(*s.Prefill)
	s.Prefill = nil
	s.Stage = session.StageContact
	return e.reply(s, msg(langOf(s), "import.confirmed"))
}

func (e *Engine) declineImport(ctx context.Context, s *session.Session, _ json.RawMessage) *ChatResponse {
	s.Prefill = nil
	s.Stage = session.StageContact
	return e.reply(s, msg(langOf(s), "import.declined"))
}

type contactPayload struct {
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Phone   string   `json:"phone"`
	Address string   `json:"address"`
	Links   []string `json:"links"`
}

// updateContact replaces the contact block with the submitted form state.
func (e *Engine) updateContact(ctx context.Context, s *session.Session, payload json.RawMessage) *ChatResponse {
	var p contactPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return e.guardReply(s, GuardInvalidAction, msg(langOf(s), "guard.payload"))
	}
	s.Canonical.Contact = cvdata.Contact{
		Name:    strings.TrimSpace(p.Name),
		Email:   strings.TrimSpace(p.Email),
		Phone:   strings.TrimSpace(p.Phone),
		Address: strings.TrimSpace(p.Address),
		Links:   p.Links,
	}
	return e.reply(s, msg(langOf(s), "contact.updated"))
}

func (e *Engine) confirmContact(ctx context.Context, s *session.Session, _ json.RawMessage) *ChatResponse {
	if !s.Canonical.Contact.IsComplete() {
		return e.guardReply(s, GuardMissingFields, msg(langOf(s), "contact.missing"))
	}
	s.ConfirmContact()
	if s.ReturnToReview {
		s.ReturnToReview = false
		s.Stage = session.StageReviewFinal
		return e.advanceReply(s)
	}
	s.Stage = session.StageEducation
	return e.advanceReply(s)
}

// contactFreeText lets the user describe contact changes in prose; the
// model applies them to the current block and returns the full new state.
func (e *Engine) contactFreeText(ctx context.Context, s *session.Session, text string) *ChatResponse {
	lang := langOf(s)
	current, err := json.Marshal(s.Canonical.Contact)
	if err != nil {
		return internalReply(s)
	}
	env, err := e.completions.Complete(ctx, completion.OpExtractContact, map[string]string{
		"Message":  text,
		"Current":  string(current),
		"Language": languageName(lang),
	})
	if err != nil {
		return e.modelFailReply(s, err)
	}
	if env.ResponseType == completion.TypeStatusUpdate {
		return e.statusReply(s, env.UserMessage.Text)
	}
	var p completion.ContactPayload
	if err := completion.DecodePayload(env, &p); err != nil {
		return e.modelFailReply(s, err)
	}
	s.Canonical.Contact = p.Contact
	if env.UserMessage.Text != "" {
		return e.reply(s, env.UserMessage.Text)
	}
	return e.reply(s, msg(lang, "contact.updated"))
}

type educationPayload struct {
	Education []cvdata.EducationEntry `json:"education"`
}

func (e *Engine) updateEducation(ctx context.Context, s *session.Session, payload json.RawMessage) *ChatResponse {
	var p educationPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return e.guardReply(s, GuardInvalidAction, msg(langOf(s), "guard.payload"))
	}
	s.Canonical.Education = p.Education
	return e.reply(s, msg(langOf(s), "education.updated"))
}

// confirmEducation also refreshes the profile cache: contact plus education
// under the session's language, so the next run can skip both sections.
func (e *Engine) confirmEducation(ctx context.Context, s *session.Session, _ json.RawMessage) *ChatResponse {
	s.ConfirmEducation()
	e.storeProfile(ctx, s)
	if s.ReturnToReview {
		s.ReturnToReview = false
		s.Stage = session.StageReviewFinal
		return e.advanceReply(s)
	}
	s.Stage = session.StageJobPosting
	return e.advanceReply(s)
}

func (e *Engine) storeProfile(ctx context.Context, s *session.Session) {
	if e.profiles == nil || s.TargetLanguage == "" {
		return
	}
	entry := &profilecache.Entry{
		OwnerID:   s.OwnerID,
		Language:  s.TargetLanguage,
		Contact:   s.Canonical.Contact,
		Education: s.Canonical.Education,
		UpdatedAt: e.now(),
	}
	if err := e.profiles.Put(ctx, entry); err != nil {
		log.Printf("wizard: profile cache write failed for session %s: %v", s.ID, err)
	}
}

func (e *Engine) educationFreeText(ctx context.Context, s *session.Session, text string) *ChatResponse {
	lang := langOf(s)
	current, err := json.Marshal(s.Canonical.Education)
	if err != nil {
		return internalReply(s)
	}
	env, err := e.completions.Complete(ctx, completion.OpExtractEducation, map[string]string{
		"Message":  text,
		"Current":  string(current),
		"Language": languageName(lang),
	})
	if err != nil {
		return e.modelFailReply(s, err)
	}
	if env.ResponseType == completion.TypeStatusUpdate {
		return e.statusReply(s, env.UserMessage.Text)
	}
	var p completion.EducationPayload
	if err := completion.DecodePayload(env, &p); err != nil {
		return e.modelFailReply(s, err)
	}
	s.Canonical.Education = p.Education
	if env.UserMessage.Text != "" {
		return e.reply(s, env.UserMessage.Text)
	}
	return e.reply(s, msg(lang, "education.updated"))
}
