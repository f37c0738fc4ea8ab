// Package publish uploads rendered slides to a GitHub Pages repository
// through the GitHub Contents API.
package publish

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/preston-bernstein/nhl-schedule-pressure/internal/logging"
)

const (
	defaultAPIURL      = "https://api.github.com"
	defaultBranch      = "main"
	defaultPagesDir    = "docs"
	defaultSubdir      = "ig_pressure"
	defaultUserAgent   = "Mozilla/5.0 (compatible; GitHubPublisher/1.0)"
	defaultHTTPTimeout = 30 * time.Second
	errorBodyLimit     = 512
)

// ErrNotConfigured is returned when token, owner or repo are missing.
var ErrNotConfigured = errors.New("publish: github token, owner and repo are required")

// Config identifies the target repository and credentials.
type Config struct {
	Token      string
	Owner      string
	Repo       string
	Branch     string
	PagesDir   string
	Subdir     string
	UserAgent  string
	APIURL     string
	HTTPClient *http.Client
}

// Configured reports whether the minimum credentials are present.
func (c Config) Configured() bool {
	return strings.TrimSpace(c.Token) != "" && strings.TrimSpace(c.Owner) != "" && strings.TrimSpace(c.Repo) != ""
}

// Publisher commits files into the configured repository.
type Publisher struct {
	cfg    Config
	client httpDoer
	logger *slog.Logger
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// New validates cfg and fills defaults.
func New(cfg Config, logger *slog.Logger) (*Publisher, error) {
	if !cfg.Configured() {
		return nil, ErrNotConfigured
	}
	if cfg.Branch == "" {
		cfg.Branch = defaultBranch
	}
	if cfg.PagesDir == "" {
		cfg.PagesDir = defaultPagesDir
	}
	if cfg.Subdir == "" {
		cfg.Subdir = defaultSubdir
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	cfg.APIURL = strings.TrimSuffix(strings.TrimSpace(cfg.APIURL), "/")
	if cfg.APIURL == "" {
		cfg.APIURL = defaultAPIURL
	}
	var client httpDoer = cfg.HTTPClient
	if cfg.HTTPClient == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &Publisher{cfg: cfg, client: client, logger: logger}, nil
}

// RepoPath is the path of file name inside the repository.
func (p *Publisher) RepoPath(name string) string {
	return path.Join(p.cfg.PagesDir, p.cfg.Subdir, name)
}

// PagesURL is the public GitHub Pages URL of file name.
func (p *Publisher) PagesURL(name string) string {
	return fmt.Sprintf("https://%s.github.io/%s/%s", p.cfg.Owner, p.cfg.Repo, path.Join(p.cfg.Subdir, name))
}

// CommitMessage is the message used when publishing file name for date.
func CommitMessage(date, name string) string {
	return fmt.Sprintf("Publish schedule pressure images (%s): %s", date, name)
}

// PublishImages uploads each file and returns the Pages URLs in input order.
// It stops at the first failure, returning the URLs published so far.
func (p *Publisher) PublishImages(ctx context.Context, date string, files []string) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, file := range files {
		name := filepath.Base(file)
		content, err := os.ReadFile(file)
		if err != nil {
			return urls, fmt.Errorf("publish: read %s: %w", file, err)
		}
		if err := p.putFile(ctx, p.RepoPath(name), content, CommitMessage(date, name)); err != nil {
			return urls, err
		}
		url := p.PagesURL(name)
		logging.Info(p.logger, "image published", logging.FieldDate, date, logging.FieldFile, name, "url", url)
		urls = append(urls, url)
	}
	return urls, nil
}
