// internal/providers/ollama/provider.go
// Package ollama provides a providers.Runtime backed by Ollama-compatible HTTP endpoints.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mwiater/modelbench/internal/appconfig"
	"github.com/mwiater/modelbench/internal/logging"
	"github.com/mwiater/modelbench/internal/providers"
)

// Provider implements the providers.Runtime interface using Ollama HTTP APIs.
type Provider struct {
	client  *http.Client
	host    string
	timeout time.Duration
}

// New constructs a Provider configured with the application's host and request timeout.
func New(cfg *appconfig.Config) *Provider {
	timeout := cfg.RequestTimeout()
	return &Provider{
		client: &http.Client{
			Timeout:   timeout,
			Transport: &http.Transport{ForceAttemptHTTP2: false},
		},
		host:    cfg.HostURL(),
		timeout: timeout,
	}
}

// tagsResponse defines the structure of the response from the /api/tags endpoint.
type tagsResponse struct {
	Models []tagModel `json:"models"`
}

// tagModel keeps the display-only fields raw so a malformed size, digest or
// date never fails the listing. Only name is validated.
type tagModel struct {
	Name       string          `json:"name"`
	Size       json.RawMessage `json:"size"`
	Digest     json.RawMessage `json:"digest"`
	ModifiedAt json.RawMessage `json:"modified_at"`
}

var modifiedAtLayouts = []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02"}

func (m tagModel) info() providers.ModelInfo {
	info := providers.ModelInfo{Name: m.Name}

	var size float64
	if json.Unmarshal(m.Size, &size) == nil && size > 0 {
		info.Size = int64(size)
	}
	var digest string
	if json.Unmarshal(m.Digest, &digest) == nil {
		info.Digest = digest
	}
	var modified string
	if json.Unmarshal(m.ModifiedAt, &modified) == nil {
		for _, layout := range modifiedAtLayouts {
			if t, err := time.Parse(layout, modified); err == nil {
				info.ModifiedAt = t
				break
			}
		}
	}
	return info
}

// psResponse defines the structure of the response from the /api/ps endpoint.
type psResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Model              string `json:"model"`
	Response           string `json:"response"`
	Done               bool   `json:"done"`
	DoneReason         string `json:"done_reason,omitempty"`
	TotalDuration      int64  `json:"total_duration"`
	LoadDuration       int64  `json:"load_duration"`
	PromptEvalCount    int    `json:"prompt_eval_count"`
	PromptEvalDuration int64  `json:"prompt_eval_duration"`
	EvalCount          int    `json:"eval_count"`
	EvalDuration       int64  `json:"eval_duration"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Host returns the base URL requests are sent to.
func (p *Provider) Host() string {
	return p.host
}

// ListModels returns every model installed on the host. Any failure is
// reported as providers.ErrModelSourceUnavailable.
func (p *Provider) ListModels(ctx context.Context) ([]providers.ModelInfo, error) {
	body, err := p.get(ctx, "/api/tags")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", providers.ErrModelSourceUnavailable, err)
	}
	if err := validateTags(body); err != nil {
		return nil, fmt.Errorf("%w: %w", providers.ErrModelSourceUnavailable, err)
	}

	var tags tagsResponse
	if err := json.Unmarshal(body, &tags); err != nil {
		return nil, fmt.Errorf("%w: %w: %v", providers.ErrModelSourceUnavailable, providers.ErrInvalidResponse, err)
	}
	records := make([]providers.ModelInfo, 0, len(tags.Models))
	for _, m := range tags.Models {
		records = append(records, m.info())
	}
	return records, nil
}

// LoadedModels returns the models currently loaded in memory on the host.
func (p *Provider) LoadedModels(ctx context.Context) ([]string, error) {
	body, err := p.get(ctx, "/api/ps")
	if err != nil {
		return nil, err
	}

	var ps psResponse
	if err := json.Unmarshal(body, &ps); err != nil {
		return nil, fmt.Errorf("%w: %v", providers.ErrInvalidResponse, err)
	}

	names := make([]string, len(ps.Models))
	for i, m := range ps.Models {
		names[i] = m.Name
	}
	return names, nil
}

// Generate issues a single non-streaming /api/generate request and returns the
// generated text. The request carries no sampling options.
func (p *Provider) Generate(ctx context.Context, model, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{Model: model, Prompt: prompt, Stream: false})
	if err != nil {
		return "", err
	}
	logging.LogRequest("MODELBENCH->LLM", p.host, model, body)

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.host+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	logging.LogRequest("LLM->MODELBENCH", p.host, model, respBody)

	if resp.StatusCode != http.StatusOK {
		return "", statusError("/api/generate", resp.Status, respBody)
	}
	if err := validateGenerate(respBody); err != nil {
		return "", err
	}

	var result generateResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("%w: %v", providers.ErrInvalidResponse, err)
	}
	return result.Response, nil
}

// Close releases any resources held by the provider.
func (p *Provider) Close() error {
	p.client.CloseIdleConnections()
	return nil
}

// get performs a GET against path and returns the body of a 200 response.
func (p *Provider) get(ctx context.Context, path string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	endpoint := p.host + path
	logging.LogRequest("MODELBENCH->LLM", p.host, "", map[string]string{"method": http.MethodGet, "url": endpoint})
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	logging.LogRequest("LLM->MODELBENCH", p.host, "", body)

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(path, resp.Status, body)
	}
	return body, nil
}

// statusError builds an error for a non-200 response, preferring the
// runtime's own error message when the body carries one.
func statusError(path, status string, body []byte) error {
	var e errorResponse
	if err := json.Unmarshal(body, &e); err == nil && strings.TrimSpace(e.Error) != "" {
		return fmt.Errorf("ollama: %s returned %s: %s", path, status, e.Error)
	}
	return fmt.Errorf("ollama: %s returned %s: %s", path, status, strings.TrimSpace(string(body)))
}
