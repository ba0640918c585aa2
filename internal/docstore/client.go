// Package docstore is the HTTP client for the external document and
// submission store. Persistence is not this service's concern; the store
// owns documents, versioning, and submission history.
package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/jinkoo2/DocuForms/internal/form"
)

// Client communicates with the document store HTTP API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Document is a stored hybrid document.
type Document struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Version int    `json:"version"`
}

// DocumentUpdate is the body for PUT /api/documents/{id}.
type DocumentUpdate struct {
	Title   string `json:"title,omitempty"`
	Content string `json:"content"`
}

// Submission is a stored answer set for one document.
type Submission struct {
	ID          string        `json:"id"`
	DocumentID  string        `json:"document_id"`
	UserID      string        `json:"user_id,omitempty"`
	Answers     []form.Answer `json:"answers"`
	SubmittedAt time.Time     `json:"submitted_at"`
}

// GetDocument retrieves a document by ID. A missing document returns
// (nil, nil).
func (c *Client) GetDocument(ctx context.Context, id string) (*Document, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/documents/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, statusError("get document "+id, resp)
	}

	var doc Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &doc, nil
}

// PutDocument stores or updates a document. The store bumps the version on
// content changes.
func (c *Client) PutDocument(ctx context.Context, id string, update DocumentUpdate) (*Document, error) {
	body, err := json.Marshal(update)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPut, "/api/documents/"+url.PathEscape(id), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("put document: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, statusError("put document "+id, resp)
	}

	var doc Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &doc, nil
}

// CreateSubmission stores a new submission.
func (c *Client) CreateSubmission(ctx context.Context, sub Submission) error {
	body, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("marshal submission: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/api/submissions", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("create submission: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return statusError("create submission", resp)
	}
	return nil
}

// ListSubmissions returns submissions for a document.
func (c *Client) ListSubmissions(ctx context.Context, documentID string) ([]Submission, error) {
	path := "/api/submissions?document_id=" + url.QueryEscape(documentID)
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, statusError("list submissions", resp)
	}

	var subs []Submission
	if err := json.NewDecoder(resp.Body).Decode(&subs); err != nil {
		return nil, fmt.Errorf("decode submissions: %w", err)
	}
	return subs, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	return req, nil
}

func statusError(op string, resp *http.Response) error {
	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	return fmt.Errorf("%s: status %d: %s", op, resp.StatusCode, string(respBody))
}

// Close releases any resources (currently idle connections).
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
