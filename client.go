package islgloss

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client handles HTTP communication with the Stanza service. It implements
// both Annotator and Parser.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new HTTP client for the Stanza service
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// ServiceResponse is the common response structure from all endpoints
type ServiceResponse struct {
	Data     json.RawMessage        `json:"data"`
	Metadata map[string]interface{} `json:"metadata"`
	Error    *ServiceError          `json:"error"`
}

// doRequest performs an HTTP request and handles the response
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}) (*ServiceResponse, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var serviceResp ServiceResponse
	if err := json.Unmarshal(respBody, &serviceResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response (status %d): %w", resp.StatusCode, err)
	}

	if serviceResp.Error != nil {
		return nil, serviceResp.Error
	}

	return &serviceResp, nil
}

// Health checks the service health status
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	// Health endpoint returns plain JSON, not wrapped
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var health HealthResponse
	if err := json.Unmarshal(body, &health); err != nil {
		return nil, fmt.Errorf("failed to parse health response: %w", err)
	}

	return &health, nil
}

// Annotate segments text into sentences and annotates every word with its
// lemma and universal POS tag
func (c *Client) Annotate(ctx context.Context, text string) ([]Sentence, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/annotate", &AnnotateRequest{Text: text})
	if err != nil {
		return nil, err
	}

	var data struct {
		Sentences []Sentence `json:"sentences"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse annotate response: %w", err)
	}

	return data.Sentences, nil
}

// Parse returns the constituency parse of an already tokenized sentence
func (c *Client) Parse(ctx context.Context, words []string) (*Tree, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: nothing to parse", ErrMalformedTree)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/parse", &ParseRequest{Words: words})
	if err != nil {
		return nil, err
	}

	var data struct {
		Tree string `json:"tree"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse parse response: %w", err)
	}

	return ParseTree(data.Tree)
}

// Request types

// AnnotateRequest represents a segmentation and annotation request
type AnnotateRequest struct {
	Text string `json:"text"`
}

// ParseRequest represents a constituency parse request for one sentence
type ParseRequest struct {
	Words []string `json:"words"`
}

// Response types

// HealthResponse represents the health check response
type HealthResponse struct {
	Status     string   `json:"status"`
	Version    string   `json:"version"`
	Processors []string `json:"processors"`
}

var (
	_ Annotator = (*Client)(nil)
	_ Parser    = (*Client)(nil)
)
