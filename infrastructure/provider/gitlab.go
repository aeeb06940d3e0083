// Package provider implements VCS hosting provider API clients.
package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gitschema/gitschema/domain/vcs"
)

// Default client settings.
const (
	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 3
	defaultRetryDelay = 500 * time.Millisecond
)

// GitLabClient fetches raw file content through the GitLab REST API. It
// implements vcs.ContentFetcher.
type GitLabClient struct {
	httpClient *http.Client
	maxRetries int
	retryDelay time.Duration
}

// GitLabOption is a functional option for GitLabClient.
type GitLabOption func(*GitLabClient)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) GitLabOption {
	return func(c *GitLabClient) {
		c.httpClient.Timeout = d
	}
}

// WithMaxRetries sets the retry budget for transient failures.
func WithMaxRetries(n int) GitLabOption {
	return func(c *GitLabClient) {
		c.maxRetries = n
	}
}

// WithHTTPClient replaces the underlying HTTP client (used in tests).
func WithHTTPClient(hc *http.Client) GitLabOption {
	return func(c *GitLabClient) {
		c.httpClient = hc
	}
}

// NewGitLabClient creates a GitLabClient.
func NewGitLabClient(opts ...GitLabOption) *GitLabClient {
	c := &GitLabClient{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		maxRetries: DefaultMaxRetries,
		retryDelay: defaultRetryDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchFileContent returns the raw content of path at ref in the provider
// project the repository configuration is bound to. Retries with linear
// backoff on 5xx responses and transport errors; 4xx responses fail
// immediately.
func (c *GitLabClient) FetchFileContent(ctx context.Context, repo vcs.Repository, path, ref string) ([]byte, error) {
	endpoint := fmt.Sprintf(
		"%s/api/v4/projects/%s/repository/files/%s/raw?ref=%s",
		strings.TrimSuffix(repo.InstanceURL(), "/"),
		url.PathEscape(repo.ExternalID()),
		url.PathEscape(path),
		url.QueryEscape(ref),
	)

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * c.retryDelay):
			}
		}

		content, retryable, err := c.fetchOnce(ctx, endpoint, repo.AccessToken())
		if err == nil {
			return content, nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}
	return nil, fmt.Errorf("fetch %s@%s: %w", path, ref, lastErr)
}

func (c *GitLabClient) fetchOnce(ctx context.Context, endpoint, token string) (content []byte, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Private-Token", token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status %d", resp.StatusCode)
		return nil, resp.StatusCode >= http.StatusInternalServerError, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, err
	}
	return body, false, nil
}
