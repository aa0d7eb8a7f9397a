// Package gemini is a REST client for the Gemini API, serving as both the
// embedding and the generation provider.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"bizkb/internal/domain"
)

// Ensure Client implements both provider interfaces.
var (
	_ domain.Embedder  = (*Client)(nil)
	_ domain.Generator = (*Client)(nil)
)

// Default configuration values.
const (
	DefaultBaseURL         = "https://generativelanguage.googleapis.com/v1beta"
	DefaultGenerativeModel = "gemini-2.0-flash"
	DefaultEmbeddingModel  = "text-embedding-004"
	DefaultEmbeddingDim    = 768
	DefaultTimeout         = 30 * time.Second
	DefaultMaxRetries      = 3
)

// Config configures the Gemini client.
type Config struct {
	// BaseURL is the API base URL (default: the public Gemini endpoint).
	BaseURL string

	// APIKeyEnv names the environment variable holding the API key.
	APIKeyEnv string

	// GenerativeModel is the generation model (default: gemini-2.0-flash).
	GenerativeModel string

	// EmbeddingModel is the embedding model (default: text-embedding-004).
	EmbeddingModel string

	// EmbeddingDim is the expected embedding dimensionality (default: 768).
	EmbeddingDim int

	// Timeout is the per-request timeout (default: 30s).
	Timeout time.Duration

	// MaxRetries bounds retries of transient failures (default: 3).
	MaxRetries int

	// RequestsPerSecond and Burst configure client-side throttling.
	// Zero values disable it.
	RequestsPerSecond float64
	Burst             int
}

// Client talks to the Gemini REST API with bounded retry, backoff and
// client-side rate limiting.
type Client struct {
	client     *http.Client
	baseURL    string
	apiKey     string
	genModel   string
	embedModel string
	dimension  int
	maxRetries int
	limiter    *rate.Limiter
}

// NewClient creates a Gemini client, reading the API key from the configured
// environment variable.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKeyEnv == "" {
		cfg.APIKeyEnv = "GEMINI_API_KEY"
	}
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("gemini: missing API key in env %s", cfg.APIKeyEnv)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.GenerativeModel == "" {
		cfg.GenerativeModel = DefaultGenerativeModel
	}
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = DefaultEmbeddingModel
	}
	if cfg.EmbeddingDim == 0 {
		cfg.EmbeddingDim = DefaultEmbeddingDim
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}
	return &Client{
		client:     &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     key,
		genModel:   cfg.GenerativeModel,
		embedModel: cfg.EmbeddingModel,
		dimension:  cfg.EmbeddingDim,
		maxRetries: cfg.MaxRetries,
		limiter:    limiter,
	}, nil
}

// apiError is the Gemini error envelope.
type apiError struct {
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

type contentPart struct {
	Text string `json:"text"`
}

type content struct {
	Parts []contentPart `json:"parts"`
}

// batchEmbedRequest is the :batchEmbedContents request format.
type batchEmbedRequest struct {
	Requests []embedRequest `json:"requests"`
}

type embedRequest struct {
	Model    string  `json:"model"`
	Content  content `json:"content"`
	TaskType string  `json:"taskType"`
}

// batchEmbedResponse is the :batchEmbedContents response format.
type batchEmbedResponse struct {
	Embeddings []struct {
		Values []float64 `json:"values"`
	} `json:"embeddings"`
	apiError
}

// generateRequest is the :generateContent request format.
type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

// generateResponse is the :generateContent response format.
type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	apiError
}

func taskTypeName(task domain.TaskType) string {
	if task == domain.TaskQuery {
		return "RETRIEVAL_QUERY"
	}
	return "RETRIEVAL_DOCUMENT"
}

// Embed returns an embedding vector for a single text.
func (c *Client) Embed(ctx context.Context, text string, task domain.TaskType) ([]float64, error) {
	vectors, err := c.EmbedBatch(ctx, []string{text}, task)
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch embeds all texts in one :batchEmbedContents request and returns
// vectors in input order.
func (c *Client) EmbedBatch(ctx context.Context, texts []string, task domain.TaskType) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	reqBody := batchEmbedRequest{Requests: make([]embedRequest, len(texts))}
	for i, t := range texts {
		reqBody.Requests[i] = embedRequest{
			Model:    "models/" + c.embedModel,
			Content:  content{Parts: []contentPart{{Text: t}}},
			TaskType: taskTypeName(task),
		}
	}
	url := fmt.Sprintf("%s/models/%s:batchEmbedContents", c.baseURL, c.embedModel)

	var out batchEmbedResponse
	if err := c.do(ctx, url, reqBody, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEmbeddingProvider, err)
	}
	if out.Error != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrEmbeddingProvider, out.Error.Message)
	}
	if len(out.Embeddings) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d texts",
			domain.ErrEmbeddingProvider, len(out.Embeddings), len(texts))
	}
	vectors := make([][]float64, len(texts))
	for i, e := range out.Embeddings {
		if len(e.Values) != c.dimension {
			return nil, fmt.Errorf("%w: embedding %d has dimension %d, want %d",
				domain.ErrEmbeddingProvider, i, len(e.Values), c.dimension)
		}
		vectors[i] = e.Values
	}
	return vectors, nil
}

// Dimension returns the configured embedding dimensionality.
func (c *Client) Dimension() int { return c.dimension }

// ModelName identifies the generative model.
func (c *Client) ModelName() string { return c.genModel }

// EmbeddingModelName identifies the embedding model.
func (c *Client) EmbeddingModelName() string { return c.embedModel }

// Generate produces text from a prompt via :generateContent.
func (c *Client) Generate(ctx context.Context, prompt string, opts domain.GenerateOptions) (string, error) {
	reqBody := generateRequest{
		Contents: []content{{Parts: []contentPart{{Text: prompt}}}},
	}
	if opts.MaxTokens > 0 || opts.Temperature > 0 {
		reqBody.GenerationConfig = &generationConfig{
			Temperature:     opts.Temperature,
			MaxOutputTokens: opts.MaxTokens,
		}
	}
	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.genModel)

	var out generateResponse
	if err := c.do(ctx, url, reqBody, &out); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGenerationProvider, err)
	}
	if out.Error != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrGenerationProvider, out.Error.Message)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: no candidates returned", domain.ErrGenerationProvider)
	}
	var text bytes.Buffer
	for _, part := range out.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	return text.String(), nil
}

// do posts a JSON body and decodes the response, retrying transient failures
// (network errors, 429, 5xx) with exponential backoff, honouring Retry-After
// and context cancellation.
func (c *Client) do(ctx context.Context, url string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			if err := sleepCtx(ctx, retryDelay(attempt, lastErr)); err != nil {
				return err
			}
		}
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return err
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("x-goog-api-key", c.apiKey)

		resp, err := c.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = fmt.Errorf("send request: %w", err)
			continue
		}
		payload, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("read response: %w", err)
			continue
		}
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			lastErr = &transientError{
				status:     resp.Status,
				retryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			}
			continue
		}
		if resp.StatusCode != http.StatusOK {
			// Surface the API error message when present.
			var envelope apiError
			if json.Unmarshal(payload, &envelope) == nil && envelope.Error != nil {
				return fmt.Errorf("status %d: %s", resp.StatusCode, envelope.Error.Message)
			}
			return fmt.Errorf("status %d: %s", resp.StatusCode, string(payload))
		}
		if err := json.Unmarshal(payload, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}
	return lastErr
}

// transientError carries the Retry-After hint through the retry loop.
type transientError struct {
	status     string
	retryAfter time.Duration
}

func (e *transientError) Error() string { return "transient failure: " + e.status }

func retryDelay(attempt int, lastErr error) time.Duration {
	if te, ok := lastErr.(*transientError); ok && te.retryAfter > 0 {
		return te.retryAfter
	}
	d := 500 * time.Millisecond << (attempt - 1)
	if d > 8*time.Second {
		d = 8 * time.Second
	}
	return d
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}
	secs, err := strconv.Atoi(header)
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
