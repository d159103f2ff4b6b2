package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanJSON(t *testing.T) {
	cases := map[string]struct {
		input    string
		expected string
	}{
		"plain":           {`{"a":1}`, `{"a":1}`},
		"json fence":      {"```json\n{\"a\":1}\n```", `{"a":1}`},
		"bare fence":      {"```\n{\"a\":1}\n```", `{"a":1}`},
		"surrounding ws":  {"  \n{\"a\":1}\n  ", `{"a":1}`},
		"fence no newline": {"```json{\"a\":1}```", `{"a":1}`},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, CleanJSON(tc.input))
		})
	}
}

func TestStripHTML(t *testing.T) {
	html := `<html><head><style>body { color: red; }</style>` +
		`<script type="text/javascript">alert("hi")</script></head>` +
		`<body><h1>Jane Doe</h1><p>Backend   engineer</p></body></html>`

	text := StripHTML(html)

	assert.Equal(t, "Jane Doe Backend engineer", text)
	assert.NotContains(t, text, "alert")
	assert.NotContains(t, text, "color: red")
}

func TestPageTextTruncatesLongPages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "<body>%s</body>", strings.Repeat("x", 20000))
	}))
	defer server.Close()

	fetcher := NewFetcher(5 * time.Second)
	text, err := fetcher.PageText(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Len(t, []rune(text), maxPageTextLen)
}

func TestPageTextFailsOnErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	fetcher := NewFetcher(5 * time.Second)
	_, err := fetcher.PageText(context.Background(), server.URL)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestGitHubUsername(t *testing.T) {
	assert.Equal(t, "octocat", GitHubUsername("https://github.com/octocat"))
	assert.Equal(t, "octocat", GitHubUsername("https://github.com/octocat/some-repo"))
	assert.Empty(t, GitHubUsername("https://example.com/octocat"))
	assert.Empty(t, GitHubUsername("https://github.com/"))
	assert.Empty(t, GitHubUsername("::not a url::"))
}

func TestGitHubCodeSamples(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/users/octocat/repos":
			fmt.Fprint(w, `[{"name":"alpha"},{"name":"broken"}]`)
		case r.URL.Path == "/repos/octocat/alpha/contents":
			entries := []map[string]string{
				{"type": "file", "name": "main.go", "download_url": server.URL + "/raw/main.go", "html_url": "https://github.com/octocat/alpha/blob/main/main.go"},
				{"type": "dir", "name": "docs", "download_url": "", "html_url": ""},
				{"type": "file", "name": "README.md", "download_url": server.URL + "/raw/README.md", "html_url": ""},
				{"type": "file", "name": "app.py", "download_url": server.URL + "/raw/app.py", "html_url": "https://github.com/octocat/alpha/blob/main/app.py"},
			}
			_ = json.NewEncoder(w).Encode(entries)
		case r.URL.Path == "/repos/octocat/broken/contents":
			w.WriteHeader(http.StatusNotFound)
		case r.URL.Path == "/raw/main.go":
			fmt.Fprint(w, strings.Repeat("package main\n", 500))
		case r.URL.Path == "/raw/app.py":
			fmt.Fprint(w, "print('hello')")
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	fetcher := NewFetcher(5 * time.Second)
	fetcher.githubAPIBase = server.URL

	files := fetcher.GitHubCodeSamples(context.Background(), "octocat")

	require.Len(t, files, 2, "non-code files are filtered and broken repos are skipped")
	assert.Equal(t, "main.go", files[0].Name)
	assert.Equal(t, "alpha/main.go", files[0].Path)
	assert.Equal(t, "go", files[0].Language)
	assert.Equal(t, "alpha", files[0].Repo)
	assert.LessOrEqual(t, len([]rune(files[0].Content)), maxFileContentLen)
	assert.Equal(t, "app.py", files[1].Name)
	assert.Equal(t, "py", files[1].Language)
}

func TestExtractTextPlain(t *testing.T) {
	text, err := ExtractText("text/plain", []byte("hello resume"))

	require.NoError(t, err)
	assert.Equal(t, "hello resume", text)
}

func TestExtractTextUnsupportedType(t *testing.T) {
	_, err := ExtractText("image/png", []byte{0x89})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFileType)
}

func TestExtractTextCorruptPDF(t *testing.T) {
	_, err := ExtractText("application/pdf", []byte("not a pdf"))

	assert.Error(t, err)
}

func TestGenerateJSONUnconfigured(t *testing.T) {
	gemini, err := NewGemini(context.Background(), "", "gemini-2.0-flash")
	require.NoError(t, err)
	assert.False(t, gemini.Configured())

	_, err = gemini.GenerateJSON(context.Background(), "instruction", nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestIsValidHTTPURL(t *testing.T) {
	assert.True(t, isValidHTTPURL("https://example.com/portfolio"))
	assert.True(t, isValidHTTPURL("http://example.com"))
	assert.False(t, isValidHTTPURL("ftp://example.com"))
	assert.False(t, isValidHTTPURL("example.com"))
	assert.False(t, isValidHTTPURL(""))
}

func TestInlineImagePart(t *testing.T) {
	part, err := inlineImagePart("data:image/png;base64,aGVsbG8=")

	require.NoError(t, err)
	require.NotNil(t, part.InlineData)
	assert.Equal(t, "image/png", part.InlineData.MIMEType)
	assert.Equal(t, []byte("hello"), part.InlineData.Data)

	_, err = inlineImagePart("not-a-data-url")
	assert.Error(t, err)
}
