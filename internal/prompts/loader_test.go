package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get("tailoring.json", "analyze-job-posting")
	require.NoError(t, err)
	assert.NotEmpty(t, prompt)
	assert.Contains(t, prompt, "job posting")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get("tailoring.json", "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestAllWizardPromptsPresent(t *testing.T) {
	ClearCache()

	wanted := map[string][]string{
		"extraction.json": {"extract-prefill", "extract-contact", "extract-education"},
		"tailoring.json":  {"analyze-job-posting", "tailor-work", "tailor-skills"},
		"letter.json":     {"cover-letter"},
	}
	for filename, keys := range wanted {
		for _, key := range keys {
			assert.NotPanics(t, func() { MustGet(filename, key) }, "%s %s", filename, key)
		}
	}
}

func TestFormat(t *testing.T) {
	template := "Hello {{.Name}}, welcome to {{.Company}}!"
	data := map[string]string{
		"Name":    "Alice",
		"Company": "Acme Corp",
	}

	result := Format(template, data)
	assert.Equal(t, "Hello Alice, welcome to Acme Corp!", result)
}

func TestFormat_EmptyData(t *testing.T) {
	template := "Hello {{.Name}}"
	data := map[string]string{}

	result := Format(template, data)
	assert.Equal(t, template, result) // Placeholder remains
}

func TestRender(t *testing.T) {
	ClearCache()

	prompt, err := Render("tailoring.json", "tailor-skills", map[string]string{
		"Language": "German",
		"MaxItems": "8",
	})
	require.NoError(t, err)
	assert.Contains(t, prompt, "German")
	assert.Contains(t, prompt, "8 items")
	assert.NotContains(t, prompt, "{{.Language}}")
}

func TestList(t *testing.T) {
	ClearCache()

	keys, err := List("extraction.json")
	require.NoError(t, err)
	assert.Contains(t, keys, "extract-prefill")
}

func TestCaching(t *testing.T) {
	ClearCache()

	prompt1, err := Get("letter.json", "cover-letter")
	require.NoError(t, err)

	prompt2, err := Get("letter.json", "cover-letter")
	require.NoError(t, err)

	assert.Equal(t, prompt1, prompt2)
}
