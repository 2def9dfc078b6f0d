// Package openai provides an extraction adapter using the OpenAI Responses API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/papersmith/papersmith/internal/core/domain"
	"github.com/papersmith/papersmith/internal/core/ports/driven"
	"github.com/papersmith/papersmith/internal/logger"
)

// Ensure ExtractionService implements the interfaces.
var (
	_ driven.Extractor        = (*ExtractionService)(nil)
	_ driven.PromptStoreAware = (*ExtractionService)(nil)
)

// Default configuration values.
const (
	DefaultBaseURL           = "https://api.openai.com/v1"
	DefaultModel             = "gpt-4o-mini"
	DefaultTimeout           = 120 * time.Second
	DefaultRequestsPerSecond = 1.0

	// maxOutputTokens bounds the reply; three short fields need little room.
	maxOutputTokens = 300
)

// Config holds configuration for the OpenAI extraction service.
type Config struct {
	// APIKey is the OpenAI API key (required).
	APIKey string

	// BaseURL is the API base URL (default: https://api.openai.com/v1).
	// Can be changed for Azure OpenAI or compatible APIs.
	BaseURL string

	// Model is the model to use (default: gpt-4o-mini).
	Model string

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration

	// RequestsPerSecond throttles inference calls (default: 1).
	RequestsPerSecond float64
}

// ExtractionService extracts date/category/title from a document by
// sending it to the /responses endpoint.
type ExtractionService struct {
	client      *http.Client
	baseURL     string
	apiKey      string
	model       string
	bucket      *rate.Limiter
	promptStore driven.PromptStore
}

// responsesRequest is the OpenAI /responses request format.
type responsesRequest struct {
	Model           string         `json:"model"`
	Input           []inputMessage `json:"input"`
	MaxOutputTokens int            `json:"max_output_tokens,omitempty"`
	Temperature     float64        `json:"temperature"`
}

// inputMessage is a single message in the request input.
type inputMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

// contentPart is one part of a message: instruction text or the
// document itself as a base64 data URI.
type contentPart struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	Filename string `json:"filename,omitempty"`
	FileData string `json:"file_data,omitempty"`
}

// responsesResponse is the OpenAI /responses response format.
type responsesResponse struct {
	Output []struct {
		Type    string `json:"type"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// extractionPayload is the JSON shape the prompt instructs the model
// to reply with. All fields are optional; the schema is enforced by
// instruction, not contract, so partial replies must be tolerated.
type extractionPayload struct {
	Date     string `json:"date"`
	Category string `json:"category"`
	Title    string `json:"title"`
}

// NewExtractionService creates a new OpenAI extraction service.
func NewExtractionService(cfg Config) (*ExtractionService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: %w", domain.ErrMissingAPIKey)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}

	return &ExtractionService{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		bucket:  rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
	}, nil
}

// Extract performs one inference call for one document.
// Any failure wraps domain.ErrInferenceFailed; there are no retries.
func (s *ExtractionService) Extract(ctx context.Context, doc domain.EncodedDocument) (domain.Extraction, error) {
	if err := s.bucket.Wait(ctx); err != nil {
		return domain.Extraction{}, fmt.Errorf("%w: %v", domain.ErrInferenceFailed, err)
	}

	reqBody := responsesRequest{
		Model:           s.model,
		MaxOutputTokens: maxOutputTokens,
		Temperature:     0,
		Input: []inputMessage{
			{
				Role: "user",
				Content: []contentPart{
					{
						Type: "input_text",
						Text: s.buildPrompt(doc),
					},
					{
						Type:     "input_file",
						Filename: doc.Name,
						FileData: "data:application/pdf;base64," + doc.Base64,
					},
				},
			},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return domain.Extraction{}, fmt.Errorf("%w: marshal request: %v", domain.ErrInferenceFailed, err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.baseURL+"/responses",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return domain.Extraction{}, fmt.Errorf("%w: create request: %v", domain.ErrInferenceFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	logger.Debug("sending %s (%d bytes, %d pages) to %s", doc.Name, doc.Size, doc.Pages, s.model)

	resp, err := s.client.Do(req)
	if err != nil {
		return domain.Extraction{}, fmt.Errorf("%w: send request: %v", domain.ErrInferenceFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Extraction{}, fmt.Errorf("%w: read response: %v", domain.ErrInferenceFailed, err)
	}

	var apiResp responsesResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return domain.Extraction{}, fmt.Errorf("%w: decode response: %v", domain.ErrInferenceFailed, err)
	}

	if apiResp.Error != nil {
		return domain.Extraction{}, fmt.Errorf("%w: openai error: %s", domain.ErrInferenceFailed, apiResp.Error.Message)
	}

	if resp.StatusCode != http.StatusOK {
		return domain.Extraction{}, fmt.Errorf("%w: openai status %d: %s", domain.ErrInferenceFailed, resp.StatusCode, string(body))
	}

	text := outputText(apiResp)
	if text == "" {
		return domain.Extraction{}, fmt.Errorf("%w: no output text in response", domain.ErrInferenceFailed)
	}

	var payload extractionPayload
	if err := json.Unmarshal([]byte(stripFences(text)), &payload); err != nil {
		return domain.Extraction{}, fmt.Errorf("%w: parse output %q: %v", domain.ErrInferenceFailed, text, err)
	}

	return domain.Extraction{
		Date:     payload.Date,
		Category: payload.Category,
		Title:    payload.Title,
	}, nil
}

// defaultExtractionPrompt is the fallback prompt when no PromptStore is
// configured. {filename} receives the quoted current basename and
// {pages} a page-count note.
const defaultExtractionPrompt = `The attached PDF is currently named {filename}.{pages}

1. When is the document dated (if any)? Use the format YYYY-MM-DD.
2. What kind of document is it? E.g. invoice, receipt, statement.
3. What should the document title be (if any)? Keep it short.

Respond with JSON only, e.g:
{
    "date": "2020-12-24",
    "category": "invoice",
    "title": "dan murphys"
}
Keep category and title lowercase.`

// buildPrompt fills the extraction prompt with the document's current
// name and, when known, its page count. Placeholders are substituted
// literally so a user-edited template with stray percent signs or no
// placeholders at all is sent untouched.
func (s *ExtractionService) buildPrompt(doc domain.EncodedDocument) string {
	template := s.loadPrompt(driven.PromptExtraction, defaultExtractionPrompt)
	if !strings.Contains(template, "{filename}") {
		logger.Warn("extraction prompt has no {filename} placeholder; the model will not see the current name")
	}

	pagesNote := ""
	if doc.Pages > 0 {
		pagesNote = fmt.Sprintf(" It has %d pages.", doc.Pages)
	}
	prompt := strings.ReplaceAll(template, "{filename}", strconv.Quote(doc.Name))
	return strings.ReplaceAll(prompt, "{pages}", pagesNote)
}

// loadPrompt loads a prompt from the store, falling back to the default if unavailable.
func (s *ExtractionService) loadPrompt(name, fallback string) string {
	if s.promptStore == nil {
		return fallback
	}
	prompt, err := s.promptStore.Load(name)
	if err != nil {
		return fallback
	}
	return prompt
}

// outputText returns the first output_text content in the response.
func outputText(resp responsesResponse) string {
	for _, out := range resp.Output {
		for _, part := range out.Content {
			if part.Type == "output_text" && part.Text != "" {
				return part.Text
			}
		}
	}
	return ""
}

// stripFences removes a markdown code fence wrapping, which some models
// add despite being told to respond with JSON only.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// ModelName returns the name of the model being used.
func (s *ExtractionService) ModelName() string {
	return s.model
}

// SetPromptStore sets the prompt store for loading customisable prompts.
// If not set, the service uses the embedded default prompt.
func (s *ExtractionService) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// Ping validates the service is reachable by checking the /models endpoint.
// This is a lightweight check that validates the API key without running inference.
func (s *ExtractionService) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/models", http.NoBody)
	if err != nil {
		return fmt.Errorf("openai: failed to create ping request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("openai: ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("openai: API returned status %d (failed to read body: %w)", resp.StatusCode, err)
		}
		return fmt.Errorf("openai: API returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// Close releases resources.
func (s *ExtractionService) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}
