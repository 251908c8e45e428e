package webtext

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"

	"github.com/yildizm/textlens/internal/logger"
)

const (
	DefaultMaxBodyBytes = 10 * 1024 * 1024
	DefaultTimeout      = 30 * time.Second
	DefaultUserAgent    = "Mozilla/5.0 (compatible; textlens)"
)

// ErrTooLarge is returned when a page exceeds the configured size limit
var ErrTooLarge = errors.New("page exceeds size limit")

// ErrNoText is returned when readability finds no article text
var ErrNoText = errors.New("no readable text found")

// Config configures page fetching
type Config struct {
	Timeout      time.Duration
	MaxBodyBytes int64
	UserAgent    string
}

// Article is the readable content of a web page
type Article struct {
	URL   string
	Title string
	Text  string
}

// Fetcher downloads pages and extracts their main text
type Fetcher struct {
	client    *http.Client
	maxBody   int64
	userAgent string
	log       *logger.Logger
}

// New creates a fetcher. Zero config values fall back to the defaults.
func New(cfg Config, log *logger.Logger) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Fetcher{
		client:    &http.Client{Timeout: cfg.Timeout},
		maxBody:   cfg.MaxBodyBytes,
		userAgent: cfg.UserAgent,
		log:       log.WithComponent("webtext"),
	}
}

// Fetch downloads rawURL and returns its readable text
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Article, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid URL %q", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", u, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: status %d", u, resp.StatusCode)
	}
	if resp.ContentLength > f.maxBody {
		return nil, fmt.Errorf("%w: content length %d > %d", ErrTooLarge, resp.ContentLength, f.maxBody)
	}

	// one extra byte distinguishes "exactly the limit" from "truncated"
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", u, err)
	}
	if int64(len(body)) > f.maxBody {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, f.maxBody)
	}

	f.log.DebugWithFields("page fetched", []logger.Field{
		logger.F("url", u.String()),
		logger.F("bytes", len(body)),
		logger.Duration(time.Since(start)),
	})

	return Extract(bytes.NewReader(body), u)
}

// Extract runs readability over an HTML document
func Extract(r io.Reader, pageURL *url.URL) (*Article, error) {
	article, err := readability.FromReader(r, pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to extract article: %w", err)
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return nil, ErrNoText
	}

	out := &Article{Title: strings.TrimSpace(article.Title), Text: text}
	if pageURL != nil {
		out.URL = pageURL.String()
	}
	return out, nil
}
