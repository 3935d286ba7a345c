// Package provider fetches fresh question batches from a remote generative
// source, falling back to the built-in set when the source is unavailable.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ddelfanti/fisica-milionaria-bot/internal/domain/entities"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-2.5-pro"
	requestTimeout = 60 * time.Second
)

const questionPrompt = `Generate 16 multiple-choice quiz questions in Italian, styled like the game 'Who Wants to Be a Millionaire?'. The questions must be about university-level physics, targeting a 20-year-old student audience. Each question must have exactly four possible answers, and only one must be correct. Tag each question with a "difficulty" field whose value is one of: "easy", "medium-hard", "very-difficult", "expert", with four questions per difficulty. The output must be a JSON array of objects with keys "question", "answers", "correctAnswer", "difficulty".`

// GeminiClient fetches question batches from the Gemini generateContent API.
type GeminiClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

// Option customizes a GeminiClient.
type Option func(*GeminiClient)

// WithBaseURL overrides the API endpoint, used by tests.
func WithBaseURL(url string) Option {
	return func(c *GeminiClient) { c.baseURL = url }
}

// WithModel overrides the model name.
func WithModel(model string) Option {
	return func(c *GeminiClient) { c.model = model }
}

// NewGeminiClient creates a Gemini question provider.
func NewGeminiClient(log *zap.Logger, apiKey string, opts ...Option) *GeminiClient {
	c := &GeminiClient{
		apiKey:  apiKey,
		model:   defaultModel,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		log: log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig struct {
		ResponseMimeType string `json:"responseMimeType"`
	} `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Fetch requests a batch of questions and validates each one, dropping
// malformed entries. An error is returned when the API call fails or the
// whole batch is unusable.
func (c *GeminiClient) Fetch(ctx context.Context) ([]entities.Question, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: questionPrompt}}},
		},
	}
	reqBody.GenerationConfig.ResponseMimeType = "application/json"

	reqJSON, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqJSON))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call gemini: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini returned status %d: %s", resp.StatusCode, truncate(body, 200))
	}

	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini response has no candidates")
	}

	var questions []entities.Question
	if err := json.Unmarshal([]byte(parsed.Candidates[0].Content.Parts[0].Text), &questions); err != nil {
		return nil, fmt.Errorf("unmarshal questions: %w", err)
	}

	valid := make([]entities.Question, 0, len(questions))
	for _, q := range questions {
		if err := q.Validate(); err != nil {
			c.log.Warn("dropping malformed generated question",
				zap.String("text", q.Text),
				zap.Error(err),
			)
			continue
		}
		valid = append(valid, q)
	}
	if len(valid) == 0 {
		return nil, fmt.Errorf("gemini batch contained no valid questions")
	}

	c.log.Info("fetched question batch",
		zap.Int("questions", len(valid)),
		zap.Duration("took", time.Since(start)),
	)
	return valid, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
