package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/yildizm/textlens/internal/logger"
	"github.com/yildizm/textlens/internal/stats"
)

const (
	analyzeTextPath = "/analyze"
	analyzeFilePath = "/analyze_file"

	// RequestIDHeader carries the per-request correlation ID
	RequestIDHeader = "X-Request-ID"

	maxErrorBodyBytes = 1 << 20
)

// Kind distinguishes the two analysis request types
type Kind int

const (
	KindText Kind = iota
	KindFile
)

// String returns the lowercase name of the kind
func (k Kind) String() string {
	if k == KindFile {
		return "file"
	}
	return "text"
}

// File is an upload source. Name is sent as the multipart filename.
type File struct {
	Name   string
	Reader io.Reader
}

// Client talks to the text analysis service
type Client struct {
	config  *Config
	http    *http.Client
	baseURL *url.URL
	log     *logger.Logger
}

// New creates a client. A nil config uses DefaultConfig.
func New(config *Config, log *logger.Logger) (*Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	baseURL, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	if log == nil {
		log = logger.Discard()
	}

	return &Client{
		config:  config,
		http:    &http.Client{Timeout: config.Timeout},
		baseURL: baseURL,
		log:     log.WithComponent("client"),
	}, nil
}

// BaseURL returns the configured service address
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// AnalyzeText submits raw text for analysis. The text is sent unmodified,
// empty strings included.
func (c *Client) AnalyzeText(ctx context.Context, requestID, text string) (*stats.AnalysisResult, error) {
	body, err := json.Marshal(struct {
		Text string `json:"text"`
	}{Text: text})
	if err != nil {
		return nil, NewAnalysisErrorWithCause(ErrKindServerRejected, MsgTextFailed, err)
	}

	endpoint := c.baseURL.JoinPath(analyzeTextPath)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, c.networkError(requestID, err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.send(req, KindText, requestID)
}

// AnalyzeFile uploads a file as multipart form data under the field "file"
func (c *Client) AnalyzeFile(ctx context.Context, requestID string, file *File) (*stats.AnalysisResult, error) {
	if file == nil || file.Reader == nil {
		return nil, NoFileSelected()
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filepath.Base(file.Name))
	if err != nil {
		return nil, NewAnalysisErrorWithCause(ErrKindFileUnreadable, fileUnreadableMessage(err), err)
	}
	if _, err := io.Copy(part, file.Reader); err != nil {
		return nil, NewAnalysisErrorWithCause(ErrKindFileUnreadable, fileUnreadableMessage(err), err)
	}
	if err := writer.Close(); err != nil {
		return nil, NewAnalysisErrorWithCause(ErrKindFileUnreadable, fileUnreadableMessage(err), err)
	}

	endpoint := c.baseURL.JoinPath(analyzeFilePath)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), &buf)
	if err != nil {
		return nil, c.networkError(requestID, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.send(req, KindFile, requestID)
}

func (c *Client) send(req *http.Request, kind Kind, requestID string) (*stats.AnalysisResult, error) {
	if requestID != "" {
		req.Header.Set(RequestIDHeader, requestID)
	}
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	c.log.DebugWithFields("sending analysis request", []logger.Field{
		logger.F("kind", kind.String()),
		logger.F("request_id", requestID),
		logger.F("url", req.URL.String()),
	})

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.networkError(requestID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.DebugWithFields("analysis response received", []logger.Field{
		logger.F("request_id", requestID),
		logger.F("status", resp.StatusCode),
		logger.Duration(time.Since(start)),
	})

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.handleErrorResponse(resp, kind, requestID)
	}

	result, err := stats.Decode(resp.Body)
	if err != nil {
		return nil, &AnalysisError{
			Kind:       ErrKindMalformedResponse,
			Message:    MsgMalformedResponse,
			StatusCode: resp.StatusCode,
			RequestID:  requestID,
			Cause:      err,
		}
	}

	return result, nil
}

func (c *Client) networkError(requestID string, cause error) *AnalysisError {
	return &AnalysisError{
		Kind:      ErrKindNetworkUnavailable,
		Message:   MsgNetworkUnavailable,
		RequestID: requestID,
		Cause:     cause,
	}
}

func (c *Client) handleErrorResponse(resp *http.Response, kind Kind, requestID string) *AnalysisError {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if err != nil {
		c.log.Debug("failed to read error body: %v", err)
	}

	message := ParseDetail(body)
	if message == "" {
		message = FallbackMessage(kind)
	}

	return &AnalysisError{
		Kind:       ErrKindServerRejected,
		Message:    message,
		StatusCode: resp.StatusCode,
		RequestID:  requestID,
		Cause:      fmt.Errorf("HTTP %d", resp.StatusCode),
	}
}

// ParseDetail extracts the "detail" field of an error body. A string detail
// is returned as-is; a list of validation entries has their "msg" values
// joined with "; ". Anything else yields "".
func ParseDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if len(body) == 0 || json.Unmarshal(body, &envelope) != nil || len(envelope.Detail) == 0 {
		return ""
	}

	var detail string
	if err := json.Unmarshal(envelope.Detail, &detail); err == nil {
		return strings.TrimSpace(detail)
	}

	var entries []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &entries); err == nil {
		msgs := make([]string, 0, len(entries))
		for _, e := range entries {
			if m := strings.TrimSpace(e.Msg); m != "" {
				msgs = append(msgs, m)
			}
		}
		return strings.Join(msgs, "; ")
	}

	return ""
}

func fileUnreadableMessage(err error) string {
	return fmt.Sprintf("%s: %v", msgFileUnreadable, err)
}
