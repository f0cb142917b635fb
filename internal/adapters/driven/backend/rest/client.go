// Package rest provides the Backend adapter for the document service's JSON API.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/documind/internal/core/domain"
	"github.com/custodia-labs/documind/internal/core/ports/driven"
	"github.com/custodia-labs/documind/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.Backend = (*Client)(nil)

// RequestIDHeader carries a per-request UUID so service logs can be correlated.
const RequestIDHeader = "X-Request-ID"

// maxErrorBody caps how much of an error response is read for its detail.
const maxErrorBody = 1 << 20

// ProgressFunc receives upload progress for one file.
// total is the file size; sent never exceeds it.
type ProgressFunc func(name string, sent, total int64)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

// WithProgress reports bytes sent while uploading.
func WithProgress(fn ProgressFunc) Option {
	return func(c *Client) {
		c.progress = fn
	}
}

// Client talks to the document service.
// No timeout is set; requests end when their context does.
type Client struct {
	client   *http.Client
	baseURL  string
	progress ProgressFunc
}

// askRequest is the /chat request format.
type askRequest struct {
	Question string `json:"question"`
}

// errorResponse is the error body format. FastAPI sends detail as a string
// for handled errors and as a list of objects for validation errors.
type errorResponse struct {
	Detail json.RawMessage `json:"detail"`
}

// NewClient creates a client for the API rooted at baseURL
// (e.g. http://localhost:8000/api).
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		client:  &http.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListDocuments fetches the indexed documents.
func (c *Client) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	const op = "list documents"

	req, err := c.newRequest(ctx, http.MethodGet, "/documents", nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var docs []domain.Document
	if err := c.do(op, req, &docs); err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []domain.Document{}
	}
	return docs, nil
}

// UploadDocument sends a file as the multipart field "file".
// The body is streamed from disk. A file that cannot be opened fails
// with the wrapped os error before any request is sent.
func (c *Client) UploadDocument(ctx context.Context, file domain.File) error {
	const op = "upload document"

	f, err := os.Open(file.Path)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		defer f.Close()
		part, err := mw.CreateFormFile("file", file.Name)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		var src io.Reader = f
		if c.progress != nil {
			src = &progressReader{r: f, name: file.Name, total: file.Size, report: c.progress}
		}
		if _, err := io.Copy(part, src); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	req, err := c.newRequest(ctx, http.MethodPost, "/upload", pr)
	if err != nil {
		pr.Close()
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return c.do(op, req, nil)
}

// DeleteDocument removes a document by name. The name is escaped as one
// path segment so spaces and slashes survive.
func (c *Client) DeleteDocument(ctx context.Context, name string) error {
	const op = "delete document"

	req, err := c.newRequest(ctx, http.MethodDelete, "/documents/"+url.PathEscape(name), nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return c.do(op, req, nil)
}

// Ask sends a question and returns the answer with its sources.
func (c *Client) Ask(ctx context.Context, question string) (domain.Answer, error) {
	const op = "ask"

	body, err := json.Marshal(askRequest{Question: question})
	if err != nil {
		return domain.Answer{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/chat", bytes.NewReader(body))
	if err != nil {
		return domain.Answer{}, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	var answer domain.Answer
	if err := c.do(op, req, &answer); err != nil {
		return domain.Answer{}, err
	}
	if answer.Sources == nil {
		answer.Sources = []string{}
	}
	return answer, nil
}

// newRequest builds a request against the API root with a fresh request ID.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, uuid.NewString())
	return req, nil
}

// do sends req and decodes a 2xx body into out when out is non-nil.
// Failures without a response become TransportError, all others ServiceError.
func (c *Client) do(op string, req *http.Request, out any) error {
	logger.Debug("%s %s (%s)", req.Method, req.URL.Redacted(), req.Header.Get(RequestIDHeader))

	resp, err := c.client.Do(req)
	if err != nil {
		return &domain.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &domain.ServiceError{Op: op, Status: resp.StatusCode, Detail: parseDetail(body)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.TransportError{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		logger.Warn("%s: decoding response: %v", op, err)
		return &domain.ServiceError{Op: op, Status: resp.StatusCode}
	}
	return nil
}

// parseDetail extracts the human-readable detail from an error body.
// Validation errors are joined by "; ".
func parseDetail(body []byte) string {
	var resp errorResponse
	if err := json.Unmarshal(body, &resp); err != nil || len(resp.Detail) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(resp.Detail, &text); err == nil {
		return text
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(resp.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, item := range items {
			if item.Msg != "" {
				msgs = append(msgs, item.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}

// progressReader reports cumulative bytes read.
type progressReader struct {
	r      io.Reader
	name   string
	sent   int64
	total  int64
	report ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.sent += int64(n)
		total := p.total
		if total < p.sent {
			total = p.sent
		}
		p.report(p.name, p.sent, total)
	}
	return n, err
}
