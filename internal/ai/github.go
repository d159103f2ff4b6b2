package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"path"
	"strings"

	"careercard/internal/logging"
)

// CodeFile is one source file sampled from a GitHub profile.
type CodeFile struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Language string `json:"language"`
	Content  string `json:"content"`
	Repo     string `json:"repo"`
	URL      string `json:"url"`
}

const (
	repoPageSize      = 10
	maxReposToScan    = 5
	maxFilesPerRepo   = 3
	maxFileContentLen = 2000
)

var codeFileExtensions = []string{
	".ts", ".tsx", ".js", ".jsx", ".py", ".go", ".rs", ".java", ".kt", ".swift", ".cs",
}

// GitHubUsername extracts the username from a github.com URL, or ""
// when the URL is not a GitHub profile.
func GitHubUsername(portfolioURL string) string {
	parsed, err := url.Parse(portfolioURL)
	if err != nil {
		return ""
	}
	if !strings.Contains(parsed.Hostname(), "github.com") {
		return ""
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) == 0 {
		return ""
	}
	return segments[0]
}

type githubRepo struct {
	Name string `json:"name"`
}

type githubContent struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	DownloadURL string `json:"download_url"`
	HTMLURL     string `json:"html_url"`
}

// GitHubCodeSamples fetches up to three code files from each of the
// user's five most recently updated repositories. Every failure is
// soft: the affected repo or file is skipped and whatever was
// collected so far is returned.
func (f *Fetcher) GitHubCodeSamples(ctx context.Context, username string) []CodeFile {
	logger := logging.GetLoggerFromContext(ctx)
	codeFiles := make([]CodeFile, 0)

	var repos []githubRepo
	listURL := fmt.Sprintf("%s/users/%s/repos?sort=updated&per_page=%d", f.githubAPIBase, url.PathEscape(username), repoPageSize)
	if err := f.getJSON(ctx, listURL, &repos); err != nil {
		logger.Warn("failed to list github repositories", "username", username, "error", err.Error())
		return codeFiles
	}

	if len(repos) > maxReposToScan {
		repos = repos[:maxReposToScan]
	}

	for _, repo := range repos {
		var contents []githubContent
		contentsURL := fmt.Sprintf("%s/repos/%s/%s/contents", f.githubAPIBase, url.PathEscape(username), url.PathEscape(repo.Name))
		if err := f.getJSON(ctx, contentsURL, &contents); err != nil {
			logger.Warn("failed to list repository contents", "repo", repo.Name, "error", err.Error())
			continue
		}

		for _, entry := range pickCodeEntries(contents) {
			body, err := f.getBody(ctx, entry.DownloadURL)
			if err != nil {
				logger.Warn("failed to download file", "repo", repo.Name, "file", entry.Name, "error", err.Error())
				continue
			}

			content := string(body)
			if runes := []rune(content); len(runes) > maxFileContentLen {
				content = string(runes[:maxFileContentLen])
			}

			codeFiles = append(codeFiles, CodeFile{
				Name:     entry.Name,
				Path:     repo.Name + "/" + entry.Name,
				Language: fileLanguage(entry.Name),
				Content:  content,
				Repo:     repo.Name,
				URL:      entry.HTMLURL,
			})
		}
	}

	return codeFiles
}

// pickCodeEntries selects the first few code files from a directory
// listing; download failures later on do not backfill the selection.
func pickCodeEntries(contents []githubContent) []githubContent {
	picked := make([]githubContent, 0, maxFilesPerRepo)
	for _, entry := range contents {
		if len(picked) >= maxFilesPerRepo {
			break
		}
		if entry.Type != "file" || !hasCodeExtension(entry.Name) {
			continue
		}
		picked = append(picked, entry)
	}
	return picked
}

func hasCodeExtension(name string) bool {
	for _, ext := range codeFileExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

func fileLanguage(name string) string {
	ext := strings.TrimPrefix(path.Ext(name), ".")
	if ext == "" {
		return "text"
	}
	return ext
}

func (f *Fetcher) getJSON(ctx context.Context, url string, target any) error {
	body, err := f.getBody(ctx, url)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, target)
}
