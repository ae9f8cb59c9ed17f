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

	"github.com/karnakar5511/query-insights/internal/domain/ai"
)

const (
	providerName   = "gemini"
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-2.0-flash"
	defaultTimeout = 30 * time.Second

	// cap on how much of the upstream body we read
	maxResponseBytes = 4 << 20
)

type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey, model, baseURL string, timeout time.Duration) *Client {
	if model == "" {
		model = defaultModel
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		apiKey:     apiKey,
		model:      model,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type generateRequest struct {
	Contents []requestContent `json:"contents"`
}

type requestContent struct {
	Parts []requestPart `json:"parts"`
}

type requestPart struct {
	Text string `json:"text"`
}

// Response envelope. Every level is optional; extraction collapses to
// ai.FallbackText when any level is absent.
type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content *candidateContent `json:"content"`
}

type candidateContent struct {
	Parts []contentPart `json:"parts"`
}

type contentPart struct {
	Text *string `json:"text"`
}

func (r generateResponse) firstText() string {
	if len(r.Candidates) == 0 {
		return ai.FallbackText
	}
	content := r.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return ai.FallbackText
	}
	text := content.Parts[0].Text
	if text == nil {
		return ai.FallbackText
	}
	return *text
}

// Generate sends the prompt verbatim to the generateContent endpoint.
func (c *Client) Generate(ctx context.Context, prompt string) (ai.Generation, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []requestContent{{Parts: []requestPart{{Text: prompt}}}},
	})
	if err != nil {
		return ai.Generation{}, &ai.UpstreamError{Provider: providerName, Err: fmt.Errorf("encoding request: %w", err)}
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return ai.Generation{}, &ai.UpstreamError{Provider: providerName, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	// key goes in a header so it never shows up in request logs
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ai.Generation{}, &ai.UpstreamError{Provider: providerName, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return ai.Generation{}, &ai.UpstreamError{Provider: providerName, Err: fmt.Errorf("reading response: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ai.Generation{}, &ai.UpstreamError{Provider: providerName, Status: resp.StatusCode, Detail: snippet(raw)}
	}

	var out generateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return ai.Generation{}, &ai.UpstreamError{Provider: providerName, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return ai.Generation{Text: out.firstText(), Raw: raw}, nil
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 512 {
		s = s[:512]
	}
	return s
}
