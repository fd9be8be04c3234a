// Package publishingapi is a client for the downstream content API that
// stores and serves published content items.
package publishingapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Linkable is one entry of the linkables listing.
type Linkable struct {
	ContentID        string `json:"content_id"`
	InternalName     string `json:"internal_name"`
	PublicationState string `json:"publication_state"`
	BasePath         string `json:"base_path"`
	Title            string `json:"title"`
}

// Error is returned for non-2xx responses.
type Error struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("publishing api %s %s returned %d: %s", e.Method, e.Path, e.Status, e.Body)
}

// IsNotFound reports whether err is a 404 from the publishing API.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// Client talks to the publishing API over HTTP JSON.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	tracer     trace.Tracer
}

type Option func(*Client)

// WithHTTPClient replaces the default client, e.g. with httptest's.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

// New creates a client for baseURL authenticating with a bearer token.
func New(baseURL, bearerToken string, timeout time.Duration, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("publishing api url is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parse publishing api url: %w", err)
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      bearerToken,
		httpClient: &http.Client{Timeout: timeout},
		tracer:     otel.Tracer("govpub/publishingapi"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// PutContent creates or replaces the draft content item for contentID.
func (c *Client) PutContent(ctx context.Context, contentID string, payload any) error {
	return c.do(ctx, http.MethodPut, "/v2/content/"+url.PathEscape(contentID), payload, nil)
}

// Publish publishes the current draft of contentID.
func (c *Client) Publish(ctx context.Context, contentID, updateType, locale string) error {
	body := map[string]string{"update_type": updateType, "locale": locale}
	return c.do(ctx, http.MethodPost, "/v2/content/"+url.PathEscape(contentID)+"/publish", body, nil)
}

// GetLinkables lists every content item of documentType.
func (c *Client) GetLinkables(ctx context.Context, documentType string) ([]Linkable, error) {
	var out []Linkable
	path := "/v2/linkables?document_type=" + url.QueryEscape(documentType)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) (err error) {
	ctx, span := c.tracer.Start(ctx, "publishingapi "+method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode publishing api request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build publishing api request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("publishing api request: %w", err)
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &Error{Method: method, Path: path, Status: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode publishing api response: %w", err)
	}
	return nil
}
