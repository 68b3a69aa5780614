package wizard

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthias/cv-wizard/internal/completion"
	"github.com/matthias/cv-wizard/internal/cvdata"
	"github.com/matthias/cv-wizard/internal/jobposting"
	"github.com/matthias/cv-wizard/internal/llm"
	"github.com/matthias/cv-wizard/internal/profilecache"
	"github.com/matthias/cv-wizard/internal/render"
	"github.com/matthias/cv-wizard/internal/session"
)

// scriptedLLM replays canned model output; an empty slot is a transport
// error.
type scriptedLLM struct {
	replies []string
	errs    []error
	calls   int
}

func (f *scriptedLLM) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return f.GenerateJSON(ctx, prompt, tier)
}

func (f *scriptedLLM) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if i < len(f.replies) {
		return f.replies[i], nil
	}
	return "", fmt.Errorf("no scripted reply for call %d", i)
}

func (f *scriptedLLM) GetModel(tier llm.ModelTier) string { return "fake-model" }
func (f *scriptedLLM) Close() error                       { return nil }

type fakeImporter struct {
	doc   *cvdata.Document
	err   error
	calls int
}

func (f *fakeImporter) Import(ctx context.Context, data []byte, language string) (*cvdata.Document, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	doc := f.doc.Clone()
	return &doc, nil
}

type fakeAnalyzer struct {
	analysis *jobposting.Analysis
	err      error
	calls    int
	lastText string
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, text, source, language string) (*jobposting.Analysis, error) {
	f.calls++
	f.lastText = text
	if f.err != nil {
		return nil, f.err
	}
	ref := *f.analysis.Reference
	ref.Source = source
	return &jobposting.Analysis{Reference: &ref, Message: f.analysis.Message}, nil
}

type fakeFetcher struct {
	text    string
	err     error
	lastURL string
}

func (f *fakeFetcher) FetchText(ctx context.Context, url string) (string, error) {
	f.lastURL = url
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type fakeRenderer struct {
	pdf         []byte
	err         error
	calls       int
	lastTheme   string
	letterErr   error
	letterCalls int
	lastLetter  *render.Letter
}

func (f *fakeRenderer) Render(ctx context.Context, doc *cvdata.Document, themeID string) ([]byte, error) {
	f.calls++
	f.lastTheme = themeID
	if f.err != nil {
		return nil, f.err
	}
	return f.pdf, nil
}

func (f *fakeRenderer) RenderLetter(ctx context.Context, doc *cvdata.Document, letter *render.Letter, themeID string) ([]byte, error) {
	f.letterCalls++
	f.lastLetter = letter
	if f.letterErr != nil {
		return nil, f.letterErr
	}
	return f.pdf, nil
}

// Scripted envelopes, shaped exactly like real schema-valid model output.
const (
	contactExtractReply = `{"response_type": "completion", "user_message": {"text": "Ich habe die E-Mail aktualisiert."}, "payload": {"contact": {"name": "Maria Muster", "email": "maria@example.org", "phone": "+49 30 1234567"}}, "metadata": {"confidence": 0.9, "validation_status": "ok"}}`

	educationExtractReply = `{"response_type": "completion", "user_message": {"text": "Ausbildung ergänzt."}, "payload": {"education": [{"institution": "TU Berlin", "degree": "B.Sc. Informatik", "start": "2015", "end": "2018"}]}, "metadata": {"confidence": 0.9, "validation_status": "ok"}}`

	workTailorReply = `{"response_type": "proposal", "user_message": {"text": "Hier ist mein Vorschlag für deine Berufserfahrung."}, "payload": {"work": [{"company": "Acme GmbH", "role": "Backend Engineer", "start": "2019", "end": "2024", "bullets": ["Migrated the billing stack to Go"]}]}, "metadata": {"confidence": 0.85, "validation_status": "ok"}}`

	skillsTailorReply = `{"response_type": "proposal", "user_message": {"text": "Vorschlag für die Kenntnisse."}, "payload": {"skills": ["Go", "PostgreSQL", "Kubernetes"]}, "metadata": {"confidence": 0.85, "validation_status": "ok"}}`

	letterReply = `{"response_type": "proposal", "user_message": {"text": "Ein Entwurf für dein Anschreiben."}, "payload": {"letter": {"subject": "Bewerbung als Backend Engineer", "body": "Sehr geehrte Damen und Herren, hiermit bewerbe ich mich."}}, "metadata": {"confidence": 0.8, "validation_status": "ok"}}`
)

type fixture struct {
	owner    uuid.UUID
	engine   *Engine
	store    *session.MemoryStore
	profiles *profilecache.MemoryStore
	llm      *scriptedLLM
	importer *fakeImporter
	analyzer *fakeAnalyzer
	fetcher  *fakeFetcher
	renderer *fakeRenderer
}

func newFixture(t *testing.T, replies ...string) *fixture {
	t.Helper()
	f := &fixture{
		owner:    uuid.New(),
		store:    session.NewMemoryStore(),
		profiles: profilecache.NewMemoryStore(),
		llm:      &scriptedLLM{replies: replies},
		importer: &fakeImporter{doc: &cvdata.Document{
			Contact: cvdata.Contact{Name: "Maria Muster", Email: "maria@example.org"},
			Work:    []cvdata.WorkEntry{{Company: "Acme GmbH", Role: "Engineer"}},
			Skills:  []string{"Go"},
		}},
		analyzer: &fakeAnalyzer{analysis: &jobposting.Analysis{
			Reference: &jobposting.Reference{Company: "Initech", Title: "Platform Engineer"},
			Message:   "Analysiert: Platform Engineer bei Initech.",
		}},
		fetcher:  &fakeFetcher{text: longPosting()},
		renderer: &fakeRenderer{pdf: []byte("%PDF-1.4 fake")},
	}
	f.engine = NewEngine(Config{
		Store:       f.store,
		Profiles:    f.profiles,
		Completions: completion.NewClient(f.llm, 1),
		Importer:    f.importer,
		Analyzer:    f.analyzer,
		Fetcher:     f.fetcher,
		Renderer:    f.renderer,
		Themes:      render.NewEmbeddedThemeStore(),
	})
	return f
}

func longPosting() string {
	return "Initech sucht eine:n Platform Engineer (m/w/d) für unser Team in Berlin. " +
		"Du baust unsere Go-Services aus, betreibst PostgreSQL und Kubernetes und arbeitest eng mit dem Produktteam."
}

func (f *fixture) handle(t *testing.T, req *ChatRequest) *ChatResponse {
	t.Helper()
	return f.engine.HandleMessage(context.Background(), f.owner, req)
}

// start creates a session and returns its id.
func (f *fixture) start(t *testing.T) string {
	t.Helper()
	resp := f.handle(t, &ChatRequest{})
	require.True(t, resp.Success)
	require.NotEmpty(t, resp.SessionID)
	return resp.SessionID
}

func (f *fixture) act(t *testing.T, sid, actionID string, payload any) *ChatResponse {
	t.Helper()
	action := &UserAction{ID: actionID}
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		action.Payload = raw
	}
	return f.handle(t, &ChatRequest{SessionID: sid, UserAction: action})
}

func (f *fixture) say(t *testing.T, sid, text string) *ChatResponse {
	t.Helper()
	return f.handle(t, &ChatRequest{SessionID: sid, Message: text})
}

func (f *fixture) session(t *testing.T, sid string) *session.Session {
	t.Helper()
	s, err := f.store.Get(context.Background(), uuid.MustParse(sid))
	require.NoError(t, err)
	return s
}

func errorCode(resp *ChatResponse) string {
	code, _ := resp.Metadata["error_code"].(string)
	return code
}

func TestHandleMessage_NewSessionAsksForLanguage(t *testing.T) {
	f := newFixture(t)

	resp := f.handle(t, &ChatRequest{})

	require.True(t, resp.Success)
	require.NotNil(t, resp.UIAction)
	assert.Equal(t, session.StageLanguageSelection, resp.UIAction.Stage)
	assert.Equal(t, KindReviewForm, resp.UIAction.Kind)
	assert.False(t, resp.UIAction.DisableFreeText)

	ids := actionIDs(resp.UIAction)
	assert.Equal(t, []string{"lang_de", "lang_en"}, ids)

	_, err := uuid.Parse(resp.SessionID)
	assert.NoError(t, err, "session id must be a uuid")
}

func actionIDs(d *Directive) []string {
	ids := make([]string, 0, len(d.Actions))
	for _, a := range d.Actions {
		ids = append(ids, a.ID)
	}
	return ids
}

func TestHandleMessage_UnknownSession(t *testing.T) {
	f := newFixture(t)

	resp := f.handle(t, &ChatRequest{SessionID: uuid.NewString()})

	assert.False(t, resp.Success)
	assert.Equal(t, "session_not_found", errorCode(resp))
	assert.Empty(t, resp.SessionID)
}

func TestHandleMessage_MalformedSessionID(t *testing.T) {
	f := newFixture(t)

	resp := f.handle(t, &ChatRequest{SessionID: "not-a-uuid"})

	assert.False(t, resp.Success)
	assert.Equal(t, "session_not_found", errorCode(resp))
}

func TestHandleMessage_ExpiredSessionIsDeleted(t *testing.T) {
	f := newFixture(t)
	sid := f.start(t)

	f.engine.now = func() time.Time { return time.Now().Add(DefaultSessionTTL + time.Hour) }
	resp := f.handle(t, &ChatRequest{SessionID: sid, Message: "hallo"})

	assert.False(t, resp.Success)
	assert.Equal(t, "session_not_found", errorCode(resp))

	_, err := f.store.Get(context.Background(), uuid.MustParse(sid))
	assert.Equal(t, session.ErrNotFound, err)
}

func TestHandleMessage_ForeignSessionStaysHidden(t *testing.T) {
	f := newFixture(t)
	sid := f.start(t)

	resp := f.engine.HandleMessage(context.Background(), uuid.New(), &ChatRequest{SessionID: sid, Message: "hi"})

	assert.False(t, resp.Success)
	assert.Equal(t, "session_not_found", errorCode(resp))
}

func TestHandleMessage_EmptyRequestRepeatsStage(t *testing.T) {
	f := newFixture(t)
	sid := f.start(t)

	resp := f.handle(t, &ChatRequest{SessionID: sid})

	require.True(t, resp.Success)
	assert.Equal(t, session.StageLanguageSelection, resp.UIAction.Stage)
}

func TestLanguageSelection_ActionMovesToContact(t *testing.T) {
	f := newFixture(t)
	sid := f.start(t)

	resp := f.act(t, sid, "lang_de", nil)

	require.True(t, resp.Success)
	assert.Equal(t, session.StageContact, resp.UIAction.Stage)
	assert.Equal(t, KindEditForm, resp.UIAction.Kind)

	s := f.session(t, sid)
	assert.Equal(t, "de", s.TargetLanguage)
	assert.Equal(t, "de", s.Canonical.Language)
}

func TestLanguageSelection_FreeTextIsUnderstood(t *testing.T) {
	f := newFixture(t)
	sid := f.start(t)

	resp := f.say(t, sid, "English, please")

	require.True(t, resp.Success)
	assert.Equal(t, "en", f.session(t, sid).TargetLanguage)
	assert.Equal(t, session.StageContact, resp.UIAction.Stage)
}

func TestLanguageSelection_GibberishReasksBilingually(t *testing.T) {
	f := newFixture(t)
	sid := f.start(t)

	resp := f.say(t, sid, "purple")

	require.True(t, resp.Success)
	assert.Equal(t, session.StageLanguageSelection, resp.UIAction.Stage)
	assert.Empty(t, f.session(t, sid).TargetLanguage)
}

func TestLanguage_CannotBeChangedLater(t *testing.T) {
	f := newFixture(t)
	sid := f.start(t)
	f.act(t, sid, "lang_de", nil)

	resp := f.act(t, sid, "lang_en", nil)

	assert.False(t, resp.Success)
	assert.Equal(t, GuardStageMismatch, errorCode(resp))
	assert.Equal(t, "de", f.session(t, sid).TargetLanguage)
}

func TestUpload_RoutesThroughImportGate(t *testing.T) {
	f := newFixture(t)
	upload := base64.StdEncoding.EncodeToString([]byte("fake docx"))

	created := f.handle(t, &ChatRequest{DocxBase64: upload})
	require.True(t, created.Success)
	assert.Equal(t, 1, f.importer.calls, "upload is imported at session creation")

	resp := f.act(t, created.SessionID, "lang_de", nil)

	require.True(t, resp.Success)
	require.NotNil(t, resp.UIAction)
	assert.Equal(t, session.StageImportGate, resp.UIAction.Stage)
	assert.True(t, resp.UIAction.DisableFreeText)
	assert.Equal(t, []string{"import_confirm", "import_decline"}, actionIDs(resp.UIAction))

	// The gate previews the extracted data.
	var name string
	for _, field := range resp.UIAction.Fields {
		if field.Key == "name" {
			name = field.Value
		}
	}
	assert.Equal(t, "Maria Muster", name)
}

func TestImportGate_ConfirmAdoptsPrefill(t *testing.T) {
	f := newFixture(t)
	upload := base64.StdEncoding.EncodeToString([]byte("fake docx"))
	created := f.handle(t, &ChatRequest{DocxBase64: upload})
	sid := created.SessionID
	f.act(t, sid, "lang_de", nil)

	resp := f.act(t, sid, "import_confirm", nil)

	require.True(t, resp.Success)
	assert.Equal(t, session.StageContact, resp.UIAction.Stage)

	s := f.session(t, sid)
	assert.Nil(t, s.Prefill)
	assert.Equal(t, "Maria Muster", s.Canonical.Contact.Name)
	assert.Equal(t, []string{"Go"}, s.Canonical.Skills)
	assert.Equal(t, "de", s.Canonical.Language, "adoption keeps the chosen language")
	assert.False(t, s.Confirmed.ContactConfirmed, "import confirms nothing")
}

func TestImportGate_DeclineStartsBlank(t *testing.T) {
	f := newFixture(t)
	upload := base64.StdEncoding.EncodeToString([]byte("fake docx"))
	created := f.handle(t, &ChatRequest{DocxBase64: upload})
	sid := created.SessionID
	f.act(t, sid, "lang_de", nil)

	resp := f.act(t, sid, "import_decline", nil)

	require.True(t, resp.Success)
	assert.Equal(t, session.StageContact, resp.UIAction.Stage)

	s := f.session(t, sid)
	assert.Nil(t, s.Prefill)
	assert.Empty(t, s.Canonical.Contact.Name)
}

func TestUpload_UnreadableFileDoesNotBlockCreation(t *testing.T) {
	f := newFixture(t)
	f.importer.err = fmt.Errorf("garbled file")

	created := f.handle(t, &ChatRequest{DocxBase64: base64.StdEncoding.EncodeToString([]byte("x"))})
	require.True(t, created.Success)
	assert.Contains(t, created.Response, msg("de", "import.failed"))

	resp := f.act(t, created.SessionID, "lang_de", nil)
	assert.Equal(t, session.StageContact, resp.UIAction.Stage, "no prefill, no import gate")
}

func TestFastPath_RestoresProfileForLanguage(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.profiles.Put(context.Background(), &profilecache.Entry{
		OwnerID:   f.owner,
		Language:  "en",
		Contact:   cvdata.Contact{Name: "Maria Muster", Email: "maria@example.org"},
		Education: []cvdata.EducationEntry{{Institution: "TU Berlin", Degree: "B.Sc."}},
		UpdatedAt: time.Now(),
	}))

	created := f.handle(t, &ChatRequest{ClientContext: &ClientContext{FastPathProfile: true}})
	sid := created.SessionID

	resp := f.act(t, sid, "lang_en", nil)

	require.True(t, resp.Success)
	assert.Equal(t, session.StageJobPosting, resp.UIAction.Stage, "contact and education are skipped")

	s := f.session(t, sid)
	assert.Equal(t, "Maria Muster", s.Canonical.Contact.Name)
	assert.Len(t, s.Canonical.Education, 1)
	assert.True(t, s.Confirmed.ContactConfirmed)
	assert.True(t, s.Confirmed.EducationConfirmed)
}

func TestFastPath_LanguageMismatchFallsBack(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.profiles.Put(context.Background(), &profilecache.Entry{
		OwnerID:  f.owner,
		Language: "de",
		Contact:  cvdata.Contact{Name: "Maria Muster", Email: "maria@example.org"},
	}))

	created := f.handle(t, &ChatRequest{ClientContext: &ClientContext{FastPathProfile: true}})
	resp := f.act(t, created.SessionID, "lang_en", nil)

	require.True(t, resp.Success)
	assert.Equal(t, session.StageContact, resp.UIAction.Stage, "a de profile must not leak into an en resume")
	s := f.session(t, created.SessionID)
	assert.False(t, s.Confirmed.ContactConfirmed)
	assert.Empty(t, s.Canonical.Contact.Name)
}

func TestFastPath_UploadTakesPrecedence(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.profiles.Put(context.Background(), &profilecache.Entry{
		OwnerID:  f.owner,
		Language: "de",
		Contact:  cvdata.Contact{Name: "Cached Name", Email: "cached@example.org"},
	}))

	created := f.handle(t, &ChatRequest{
		DocxBase64:    base64.StdEncoding.EncodeToString([]byte("fake docx")),
		ClientContext: &ClientContext{FastPathProfile: true},
	})
	resp := f.act(t, created.SessionID, "lang_de", nil)

	require.True(t, resp.Success)
	assert.Equal(t, session.StageImportGate, resp.UIAction.Stage, "fresh upload outranks the cached profile")
}

func TestDispatch_UnknownActionID(t *testing.T) {
	f := newFixture(t)
	sid := f.start(t)

	resp := f.act(t, sid, "warp_drive", nil)

	assert.False(t, resp.Success)
	assert.Equal(t, GuardInvalidAction, errorCode(resp))
	assert.Equal(t, session.StageLanguageSelection, resp.UIAction.Stage)
}

func TestDispatch_ActionFromAnotherStage(t *testing.T) {
	f := newFixture(t)
	sid := f.start(t)

	resp := f.act(t, sid, "work_confirm", nil)

	assert.False(t, resp.Success)
	assert.Equal(t, GuardStageMismatch, errorCode(resp))
	assert.Equal(t, session.StageLanguageSelection, resp.UIAction.Stage, "session stays where it was")
}
