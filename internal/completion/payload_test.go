package completion

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envelopeWithPayload(t *testing.T, payload string) *Envelope {
	t.Helper()
	return &Envelope{
		ResponseType: TypeProposal,
		UserMessage:  UserMessage{Text: "here"},
		Payload:      json.RawMessage(payload),
	}
}

func TestDecodePayload_WorkProposal(t *testing.T) {
	env := envelopeWithPayload(t, `{"work": [{"company": "Acme", "role": "Engineer", "bullets": ["did a thing"]}]}`)

	var payload WorkTailorPayload
	require.NoError(t, DecodePayload(env, &payload))
	require.Len(t, payload.Work, 1)
	assert.Equal(t, "Acme", payload.Work[0].Company)
}

func TestDecodePayload_MissingPayload(t *testing.T) {
	env := &Envelope{ResponseType: TypeProposal, UserMessage: UserMessage{Text: "x"}}

	var payload WorkTailorPayload
	err := DecodePayload(env, &payload)
	assert.ErrorContains(t, err, "payload missing")
}

func TestDecodePayload_NullPayload(t *testing.T) {
	env := envelopeWithPayload(t, `null`)

	var payload SkillsTailorPayload
	assert.Error(t, DecodePayload(env, &payload))
}

func TestDecodePayload_ValidationRuns(t *testing.T) {
	env := envelopeWithPayload(t, `{"work": []}`)

	var payload WorkTailorPayload
	assert.ErrorContains(t, DecodePayload(env, &payload), "empty")
}

func TestJobAnalysisPayloadValidate(t *testing.T) {
	assert.Error(t, (&JobAnalysisPayload{}).Validate())
	assert.NoError(t, (&JobAnalysisPayload{Title: "Engineer"}).Validate())
	assert.NoError(t, (&JobAnalysisPayload{Company: "Acme"}).Validate())
}

func TestWorkTailorPayloadValidate(t *testing.T) {
	payload := &WorkTailorPayload{}
	require.NoError(t, json.Unmarshal([]byte(`{"work": [{"company": "Acme", "role": ""}]}`), payload))
	assert.ErrorContains(t, payload.Validate(), "work[0]")
}

func TestEducationPayloadValidate(t *testing.T) {
	var payload EducationPayload
	require.NoError(t, json.Unmarshal([]byte(`{"education": [{"institution": "", "degree": "BSc"}]}`), &payload))
	assert.ErrorContains(t, payload.Validate(), "education[0]")
}

func TestPrefillPayloadToDocumentRoundTrip(t *testing.T) {
	raw := `{
		"contact": {"name": "Ada Lovelace", "email": "ada@example.com", "phone": "+44 1", "links": ["example.com/ada"]},
		"profile": "Engineer with a long view.",
		"work": [{"company": "Analytical Engines Ltd", "role": "Engineer", "start": "1840", "end": "1843", "bullets": ["designed the loop"]}],
		"education": [{"institution": "Home tutoring", "degree": "Mathematics"}],
		"skills": ["Analysis"],
		"languages": ["English (native)"]
	}`
	env := envelopeWithPayload(t, raw)

	var payload PrefillPayload
	require.NoError(t, DecodePayload(env, &payload))

	doc := payload.ToDocument()
	assert.Equal(t, "Ada Lovelace", doc.Contact.Name)
	assert.Equal(t, "ada@example.com", doc.Contact.Email)
	assert.Equal(t, []string{"example.com/ada"}, doc.Contact.Links)
	require.Len(t, doc.Work, 1)
	assert.Equal(t, "designed the loop", doc.Work[0].Bullets[0])
	assert.Equal(t, []string{"English (native)"}, doc.Languages)
}

func TestLetterPayloadValidate(t *testing.T) {
	assert.Error(t, (&LetterPayload{}).Validate())
	assert.NoError(t, (&LetterPayload{Letter: Letter{Subject: "Application", Body: "Dear team,"}}).Validate())
}

func TestRefused(t *testing.T) {
	assert.False(t, (&Envelope{}).Refused())
	assert.True(t, (&Envelope{Refusal: "no"}).Refused())

	var nilEnv *Envelope
	assert.False(t, nilEnv.Refused())
}
