package publish

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/preston-bernstein/nhl-schedule-pressure/internal/providers"
)

type contentsFile struct {
	SHA string `json:"sha"`
}

type putRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	Branch  string `json:"branch"`
	SHA     string `json:"sha,omitempty"`
}

func (p *Publisher) contentsURL(repoPath string) string {
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s", p.cfg.APIURL, p.cfg.Owner, p.cfg.Repo, repoPath)
}

func (p *Publisher) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "token "+p.cfg.Token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", p.cfg.UserAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// fileSHA returns the blob SHA of an existing file, or "" when absent.
func (p *Publisher) fileSHA(ctx context.Context, repoPath string) (string, error) {
	req, err := p.newRequest(ctx, http.MethodGet, p.contentsURL(repoPath)+"?ref="+p.cfg.Branch, nil)
	if err != nil {
		return "", err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("publish: lookup %s: %w", repoPath, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var file contentsFile
		if err := json.NewDecoder(resp.Body).Decode(&file); err != nil {
			return "", fmt.Errorf("publish: decode %s: %w", repoPath, err)
		}
		return file.SHA, nil
	case http.StatusNotFound:
		return "", nil
	default:
		return "", statusError(resp, "lookup "+repoPath)
	}
}

func (p *Publisher) putFile(ctx context.Context, repoPath string, content []byte, message string) error {
	sha, err := p.fileSHA(ctx, repoPath)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(putRequest{
		Message: message,
		Content: base64.StdEncoding.EncodeToString(content),
		Branch:  p.cfg.Branch,
		SHA:     sha,
	})
	if err != nil {
		return err
	}
	req, err := p.newRequest(ctx, http.MethodPut, p.contentsURL(repoPath), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("publish: put %s: %w", repoPath, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return statusError(resp, "put "+repoPath)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func statusError(resp *http.Response, op string) error {
	if resp.StatusCode == http.StatusTooManyRequests {
		return &providers.RateLimitError{
			Provider:   "github",
			StatusCode: resp.StatusCode,
			RetryAfter: providers.ParseRetryAfter(resp.Header.Get("Retry-After"), time.Now()),
			Remaining:  resp.Header.Get("X-RateLimit-Remaining"),
			Message:    "publish: github rate limited",
		}
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
	return fmt.Errorf("publish: %s: unexpected status %d: %s", op, resp.StatusCode, strings.TrimSpace(string(body)))
}
