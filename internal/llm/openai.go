package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/kaiwa-hq/reddit-scout/internal/config"
	"github.com/kaiwa-hq/reddit-scout/internal/leads"
	"github.com/kaiwa-hq/reddit-scout/internal/platform/observability"
)

const (
	circuitBreakerThreshold = 5
	circuitBreakerTimeout   = 1 * time.Minute
)

type openaiClient struct {
	cfg         *config.Config
	client      *openai.Client
	logger      *zerolog.Logger
	rateLimiter *rate.Limiter

	// Circuit breaker state
	consecutiveFailures int
	circuitOpenUntil    time.Time
	mu                  sync.Mutex
}

func NewOpenAI(cfg *config.Config, logger *zerolog.Logger) Client {
	return &openaiClient{
		cfg:         cfg,
		client:      openai.NewClient(cfg.LLMAPIKey),
		logger:      logger,
		rateLimiter: rate.NewLimiter(rate.Limit(cfg.LLMRPS), 5),
	}
}

func (c *openaiClient) checkCircuit() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if time.Now().Before(c.circuitOpenUntil) {
		return fmt.Errorf("circuit breaker is open until %v", c.circuitOpenUntil)
	}

	return nil
}

func (c *openaiClient) recordSuccess() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.consecutiveFailures = 0
}

func (c *openaiClient) recordFailure() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.consecutiveFailures++
	if c.consecutiveFailures >= circuitBreakerThreshold {
		c.circuitOpenUntil = time.Now().Add(circuitBreakerTimeout)
		c.logger.Warn().
			Int("consecutive_failures", c.consecutiveFailures).
			Time("open_until", c.circuitOpenUntil).
			Msg("Circuit breaker opened")
	}
}

func (c *openaiClient) ScoreBatch(ctx context.Context, batch []leads.Lead) ([]ScoreResult, error) {
	if len(batch) == 0 {
		return nil, nil
	}

	content, err := c.complete(ctx, "score", buildScoringPrompt(batch, c.cfg.MaxPromptBodyLength), true)
	if err != nil {
		return nil, err
	}

	results, err := extractScoreResults(content)
	if err != nil {
		return nil, err
	}

	return c.alignScores(results, len(batch)), nil
}

func (c *openaiClient) Judge(ctx context.Context, lead leads.ScoredLead) (Judgment, error) {
	content, err := c.complete(ctx, "judge", buildJudgmentPrompt(lead, c.cfg.MaxPromptBodyLength), true)
	if err != nil {
		return Judgment{}, err
	}

	var judgment Judgment
	if err := json.Unmarshal([]byte(content), &judgment); err != nil {
		return Judgment{}, fmt.Errorf("decode judgment: %w", err)
	}

	return judgment, nil
}

func (c *openaiClient) DraftPublic(ctx context.Context, lead leads.ScoredLead) (string, error) {
	content, err := c.complete(ctx, "draft_public", buildPublicDraftPrompt(lead, c.cfg.MaxPromptBodyLength), false)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(content), nil
}

func (c *openaiClient) DraftDM(ctx context.Context, lead leads.ScoredLead) (string, error) {
	content, err := c.complete(ctx, "draft_dm", buildDMDraftPrompt(lead, c.cfg.MaxPromptBodyLength), false)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(content), nil
}

func (c *openaiClient) complete(ctx context.Context, task, prompt string, jsonResponse bool) (string, error) {
	if err := c.checkCircuit(); err != nil {
		return "", err
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf(errRateLimiter, err)
	}

	started := time.Now()
	defer func() {
		observability.LLMRequestDuration.WithLabelValues(task).Observe(time.Since(started).Seconds())
	}()

	req := openai.ChatCompletionRequest{
		Model: c.cfg.LLMModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	}

	if req.Model == "" {
		req.Model = openai.GPT4oMini
	}

	if jsonResponse {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		c.recordFailure()
		return "", fmt.Errorf(errOpenAIChatCompletion, err)
	}

	c.recordSuccess()

	content := resp.Choices[0].Message.Content
	c.logger.Debug().Str("content", content).Msg("LLM response")

	return content, nil
}

// extractScoreResults tolerates the common response shapes: the requested
// {"results": [...]} wrapper, a bare array, or a wrapper under a different
// key.
func extractScoreResults(content string) ([]ScoreResult, error) {
	var wrapper struct {
		Results []ScoreResult `json:"results"`
	}

	if err := json.Unmarshal([]byte(content), &wrapper); err == nil && len(wrapper.Results) > 0 {
		return wrapper.Results, nil
	}

	var results []ScoreResult
	if err := json.Unmarshal([]byte(content), &results); err == nil && len(results) > 0 {
		return results, nil
	}

	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(content), &raw); err == nil {
		for _, v := range raw {
			arr, ok := v.([]interface{})
			if !ok || len(arr) == 0 {
				continue
			}

			arrBytes, _ := json.Marshal(v)
			if err := json.Unmarshal(arrBytes, &results); err == nil && len(results) > 0 {
				return results, nil
			}
		}
	}

	return nil, fmt.Errorf("failed to extract any results from LLM response: %s", content)
}

// alignScores places results by their echoed index and returns a slice of
// exactly n entries. Missing slots keep the zero value; the pipeline treats
// a zero score as unscored.
func (c *openaiClient) alignScores(results []ScoreResult, n int) []ScoreResult {
	aligned := make([]ScoreResult, n)
	found := make(map[int]bool)
	allZeroIndex := true

	for _, res := range results {
		if res.Index != 0 {
			allZeroIndex = false
		}

		if res.Index < 0 || res.Index >= n {
			c.logger.Warn().Int("index", res.Index).Msg("LLM returned out-of-range index, ignoring")
			continue
		}

		if found[res.Index] && (res.Index != 0 || !allZeroIndex) {
			c.logger.Warn().Int("index", res.Index).Msg("LLM returned duplicate index, ignoring")
			continue
		}

		aligned[res.Index] = res
		found[res.Index] = true
	}

	// All-zero indices with a full-length response means the model ignored
	// the echo instruction; assume the results are in request order.
	if allZeroIndex && len(results) == n && n > 1 {
		c.logger.Warn().Msg("all LLM result indices were 0, assuming request order")

		for i := range results {
			results[i].Index = i
		}

		return results
	}

	for i := 0; i < n; i++ {
		if !found[i] {
			c.logger.Warn().Int("index", i).Msg("LLM result missing for lead index")
		}
		aligned[i].Index = i
	}

	return aligned
}
