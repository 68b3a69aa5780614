package docimport

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthias/cv-wizard/internal/completion"
	"github.com/matthias/cv-wizard/internal/llm"
)

type scriptedLLM struct {
	replies []string
	calls   int
}

func (s *scriptedLLM) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return s.GenerateJSON(ctx, prompt, tier)
}

func (s *scriptedLLM) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	if s.calls >= len(s.replies) {
		return "", errors.New("no scripted reply")
	}
	reply := s.replies[s.calls]
	s.calls++
	return reply, nil
}

func (s *scriptedLLM) GetModel(tier llm.ModelTier) string { return "fake-model" }
func (s *scriptedLLM) Close() error                       { return nil }

func importerWith(replies ...string) (*Importer, *scriptedLLM) {
	fake := &scriptedLLM{replies: replies}
	return NewImporter(completion.NewClient(fake, 2)), fake
}

func resumeDocx(t *testing.T, media map[string][]byte) []byte {
	t.Helper()
	return buildDocx(t, []string{
		"Maria Muster",
		"Software developer with eight years of backend experience.",
		"Acme GmbH, Backend Engineer, 2019 to 2024.",
	}, media)
}

const prefillReply = `{
	"response_type": "completion",
	"user_message": {"text": "I read your resume."},
	"payload": {
		"contact": {"name": "Maria Muster", "email": "maria@example.com"},
		"profile": "Backend developer.",
		"work": [{"company": "Acme GmbH", "role": "Backend Engineer", "start": "2019", "end": "2024"}],
		"education": [{"institution": "TU Berlin", "degree": "B.Sc."}],
		"skills": ["Go", "PostgreSQL"]
	}
}`

func TestImportBuildsPrefill(t *testing.T) {
	importer, fake := importerWith(prefillReply)
	data := resumeDocx(t, map[string][]byte{"image1.png": fakePNG})

	doc, err := importer.Import(context.Background(), data, "German")
	require.NoError(t, err)

	assert.Equal(t, "Maria Muster", doc.Contact.Name)
	assert.Equal(t, "maria@example.com", doc.Contact.Email)
	require.Len(t, doc.Work, 1)
	assert.Equal(t, "Acme GmbH", doc.Work[0].Company)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, doc.Skills)
	assert.True(t, strings.HasPrefix(doc.PhotoDataURI, "data:image/png;base64,"))
	assert.Equal(t, 1, fake.calls)
}

func TestImportWithoutPhoto(t *testing.T) {
	importer, _ := importerWith(prefillReply)

	doc, err := importer.Import(context.Background(), resumeDocx(t, nil), "German")
	require.NoError(t, err)
	assert.Empty(t, doc.PhotoDataURI)
}

func TestImportUnreadableUpload(t *testing.T) {
	importer, fake := importerWith(prefillReply)

	_, err := importer.Import(context.Background(), []byte("not a document"), "German")
	require.Error(t, err)

	var unreadable *UnreadableError
	assert.True(t, errors.As(err, &unreadable))
	assert.Equal(t, 0, fake.calls, "unreadable uploads never reach the model")
}

func TestImportModelFailure(t *testing.T) {
	importer, _ := importerWith("garbage", "still garbage")

	_, err := importer.Import(context.Background(), resumeDocx(t, nil), "German")
	require.Error(t, err)

	var modelErr *completion.ModelError
	assert.True(t, errors.As(err, &modelErr))
}
