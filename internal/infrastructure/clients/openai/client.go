package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/glowmart/ai-product-search/backend/pkg/config"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const defaultBaseURL = "https://api.openai.com/v1"

// Client calls the OpenAI chat completions API to rewrite search queries.
// It implements providers.CompletionProvider.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	limiter    *tokenBucket
	breaker    *gobreaker.CircuitBreaker
}

// NewClient creates a new OpenAI client.
func NewClient(cfg *config.OpenAIConfig) (*Client, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, errors.New("openai api key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-3.5-turbo"
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "openai-enhancement",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &Client{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: newTokenBucket(cfg.RateLimitRPM, cfg.RateLimitBurst),
		breaker: breaker,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// CompleteQuery asks the model for an expanded version of the search query.
// The caller owns the fail-soft policy; this method just reports errors.
func (c *Client) CompleteQuery(ctx context.Context, query string) (string, error) {
	if c.limiter != nil {
		waitStart := time.Now()
		if err := c.limiter.Wait(ctx); err != nil {
			recordEnhancementMetric(ctx, c.model, 0, 0, err)
			return "", err
		}
		recordRateLimitWait(ctx, c.model, time.Since(waitStart))
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.complete(ctx, query)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func (c *Client) complete(ctx context.Context, query string) (string, error) {
	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: enhancementSystemPrompt},
			{Role: "user", Content: buildEnhancementUserPrompt(query)},
		},
		MaxTokens:   100,
		Temperature: 0.3,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		recordEnhancementMetric(ctx, c.model, 0, time.Since(start), err)
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("openai request failed with status %d", resp.StatusCode)
		recordEnhancementMetric(ctx, c.model, resp.StatusCode, time.Since(start), err)
		return "", err
	}

	var envelope chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		recordEnhancementMetric(ctx, c.model, resp.StatusCode, time.Since(start), err)
		return "", err
	}

	if len(envelope.Choices) == 0 {
		err := errors.New("openai response missing choices")
		recordEnhancementMetric(ctx, c.model, resp.StatusCode, time.Since(start), err)
		return "", err
	}

	enhanced := strings.TrimSpace(envelope.Choices[0].Message.Content)
	enhanced = strings.Trim(enhanced, `"`)
	if enhanced == "" {
		err := errors.New("openai response empty")
		recordEnhancementMetric(ctx, c.model, resp.StatusCode, time.Since(start), err)
		return "", err
	}

	recordEnhancementMetric(ctx, c.model, resp.StatusCode, time.Since(start), nil)
	return enhanced, nil
}

func newTokenBucket(rpm int, burst int) *tokenBucket {
	if rpm == 0 {
		rpm = 60
	}
	if rpm < 0 {
		return nil
	}
	if burst <= 0 {
		burst = 5
	}

	bucket := &tokenBucket{
		tokens: make(chan struct{}, burst),
	}
	for i := 0; i < burst; i++ {
		bucket.tokens <- struct{}{}
	}

	interval := time.Minute / time.Duration(rpm)
	if interval <= 0 {
		interval = time.Millisecond
	}

	ticker := time.NewTicker(interval)
	go func() {
		for range ticker.C {
			select {
			case bucket.tokens <- struct{}{}:
			default:
			}
		}
	}()

	return bucket
}

type tokenBucket struct {
	tokens chan struct{}
}

func (b *tokenBucket) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.tokens:
		return nil
	}
}

type enhancementMetrics struct {
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
	requestErrors   metric.Int64Counter
	rateLimitWait   metric.Float64Histogram
}

var (
	enhancementMetricsOnce sync.Once
	enhancementMetricsInit bool
	enhMetrics             enhancementMetrics
)

func ensureEnhancementMetrics() {
	enhancementMetricsOnce.Do(initEnhancementMetrics)
}

func initEnhancementMetrics() {
	meter := otel.Meter("github.com/glowmart/ai-product-search/backend/openai")

	requestCount, err := meter.Int64Counter(
		"ai.enhancement.request.count",
		metric.WithDescription("Number of query enhancement requests"),
	)
	if err != nil {
		return
	}
	requestDuration, err := meter.Float64Histogram(
		"ai.enhancement.request.duration",
		metric.WithDescription("Query enhancement request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return
	}
	requestErrors, err := meter.Int64Counter(
		"ai.enhancement.request.errors",
		metric.WithDescription("Number of query enhancement request errors"),
	)
	if err != nil {
		return
	}
	rateLimitWait, err := meter.Float64Histogram(
		"ai.enhancement.rate_limit.wait",
		metric.WithDescription("Time spent waiting for the enhancement rate limiter in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return
	}

	enhMetrics = enhancementMetrics{
		requestCount:    requestCount,
		requestDuration: requestDuration,
		requestErrors:   requestErrors,
		rateLimitWait:   rateLimitWait,
	}
	enhancementMetricsInit = true
}

func recordEnhancementMetric(ctx context.Context, model string, statusCode int, duration time.Duration, err error) {
	ensureEnhancementMetrics()
	if !enhancementMetricsInit {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("ai.provider", "openai"),
		attribute.String("ai.model", model),
	}
	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}

	enhMetrics.requestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	enhMetrics.requestDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	if err != nil {
		enhMetrics.requestErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

func recordRateLimitWait(ctx context.Context, model string, wait time.Duration) {
	ensureEnhancementMetrics()
	if !enhancementMetricsInit {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("ai.provider", "openai"),
		attribute.String("ai.model", model),
	}
	enhMetrics.rateLimitWait.Record(ctx, float64(wait.Milliseconds()), metric.WithAttributes(attrs...))
}
