package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

const DefaultBaseURL = "https://api.github.com"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	ErrFetchFailed = errors.New("commit fetch failed")
	ErrRateLimited = errors.New("rate limited")
)

// GitHubClient is a simple client for interacting with GitHub's API
type GitHubClient struct {
	HTTPClient *http.Client
	BaseURL    string
	Token      string
}

// NewGitHubClient creates a new instance of GitHubClient with a timeout
func NewGitHubClient(baseURL, token string, timeout time.Duration) *GitHubClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &GitHubClient{
		HTTPClient: &http.Client{Timeout: timeout},
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Token:      token,
	}
}

// commitEnvelope is the single-commit response; the commit document sits under "commit"
type commitEnvelope struct {
	Commit jsoniter.RawMessage `json:"commit"`
}

// GetCommit fetches the raw commit document for owner/repo at sha.
// Any non-200 response is reported as ErrFetchFailed.
func (c *GitHubClient) GetCommit(ctx context.Context, owner, repo, sha string) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/commits/%s",
		c.baseURL(), url.PathEscape(owner), url.PathEscape(repo), url.PathEscape(sha))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.Token))
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, ErrRateLimited)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: received status code %d", ErrFetchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", ErrFetchFailed, err)
	}

	var envelope commitEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: failed to decode commit response: %w", ErrFetchFailed, err)
	}

	if len(envelope.Commit) == 0 || string(envelope.Commit) == "null" {
		return body, nil
	}
	return envelope.Commit, nil
}

func (c *GitHubClient) baseURL() string {
	if c.BaseURL == "" {
		return DefaultBaseURL
	}
	return c.BaseURL
}
