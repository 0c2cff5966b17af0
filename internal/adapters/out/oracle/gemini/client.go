// Package gemini implements the assignment and co-pilot oracles on top of the
// Gemini generateContent REST endpoint.
//
// Calls are never retried. Every failure, including non-2xx answers and
// payloads that do not match the expected shape, is returned as
// errs.OracleUnavailableError; the caller decides what to tell the user.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-2.5-flash"
)

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Client is safe for concurrent use.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	session *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		session: &http.Client{Timeout: cfg.Timeout},
	}
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

func (c *Client) generate(ctx context.Context, in generateRequest) (generateResponse, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return generateResponse{}, fmt.Errorf("encode request: %w", err)
	}

	req, err := c.newRequest(ctx, bytes.NewReader(payload))
	if err != nil {
		return generateResponse{}, err
	}

	resp, err := c.do(req)
	if err != nil {
		return generateResponse{}, err
	}
	defer resp.Body.Close()

	var out generateResponse
	if err = json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return generateResponse{}, fmt.Errorf("decode response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return generateResponse{}, errEmptyAnswer
	}
	return out, nil
}

func (c *Client) newRequest(ctx context.Context, body io.Reader) (*http.Request, error) {
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("x-goog-api-key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}
