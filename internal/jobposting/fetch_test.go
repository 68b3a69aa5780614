package jobposting

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPostingText_PrefersJobSelectors(t *testing.T) {
	html := `<html><body>
		<nav>Jobs Home Login</nav>
		<div class="job-description">We are hiring a Go engineer to build backend services.</div>
		<footer>Imprint</footer>
	</body></html>`

	text, err := extractPostingText(html)
	require.NoError(t, err)
	assert.Equal(t, "We are hiring a Go engineer to build backend services.", text)
}

func TestExtractPostingText_StripsNoise(t *testing.T) {
	html := `<html><body>
		<script>tracking()</script>
		<div class="cookie-banner">Accept cookies</div>
		<p>First line.</p>
		<p>Second line.</p>
	</body></html>`

	text, err := extractPostingText(html)
	require.NoError(t, err)
	assert.NotContains(t, text, "tracking")
	assert.NotContains(t, text, "cookies")
	assert.Contains(t, text, "First line.")
	assert.Contains(t, text, "Second line.")
}

func TestFetchText_Success(t *testing.T) {
	posting := strings.Repeat("Backend engineer wanted. ", 10)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`<html><body><main>` + posting + `</main></body></html>`))
	}))
	defer server.Close()

	text, err := FetchText(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Contains(t, text, "Backend engineer wanted.")
}

func TestFetchText_InvalidURL(t *testing.T) {
	_, err := FetchText(context.Background(), "not a url", nil)
	require.Error(t, err)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Contains(t, fetchErr.Message, "invalid URL")
}

func TestFetchText_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	_, err := FetchText(context.Background(), server.URL, nil)
	require.Error(t, err)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Contains(t, fetchErr.Message, "404")
}

func TestFetchText_TooLittleText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><main>JS required</main></body></html>`))
	}))
	defer server.Close()

	_, err := FetchText(context.Background(), server.URL, nil)
	require.Error(t, err)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))

	var tooShort *TooShortError
	assert.True(t, errors.As(err, &tooShort), "cause preserved for callers")
}
