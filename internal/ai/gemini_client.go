package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"

	genai "github.com/google/generative-ai-go/genai"
)

// ErrRateLimited is returned when local token accounting refuses a request.
var ErrRateLimited = errors.New("rate limit exceeded: wait before retry")

// GeminiClient wraps the Gemini API with a circuit breaker, a client-side
// rate limiter and token accounting. All generation requests go through it.
type GeminiClient struct {
	client       *genai.Client
	model        string
	breaker      *gobreaker.CircuitBreaker
	rateLimiter  *rate.Limiter
	tokenCounter *TokenCounter
	limits       RateLimits
}

type TokenCounter struct {
	mu              sync.Mutex
	minuteTokens    int
	dailyTokens     int
	minuteRequests  int
	dailyRequests   int
	lastMinuteReset time.Time
	lastDayReset    time.Time
}

type RateLimits struct {
	RPM int // Requests per minute
	TPM int // Tokens per minute
	RPD int // Requests per day
}

func NewGeminiClient(ctx context.Context, apiKey, model, tier string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	limits := getRateLimits(tier)

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "GeminiAPI",
		MaxRequests: 5,
		Interval:    10 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Printf("Circuit breaker %s: %s -> %s", name, from, to)
		},
	})

	// RPM limit with some buffer
	rateLimiter := rate.NewLimiter(rate.Limit(float64(limits.RPM)*0.9/60.0), max(limits.RPM/10, 1))

	return &GeminiClient{
		client:       client,
		model:        model,
		breaker:      breaker,
		rateLimiter:  rateLimiter,
		tokenCounter: &TokenCounter{},
		limits:       limits,
	}, nil
}

func getRateLimits(tier string) RateLimits {
	switch tier {
	case "free":
		return RateLimits{RPM: 10, TPM: 250000, RPD: 250}
	case "tier1":
		return RateLimits{RPM: 1000, TPM: 1000000, RPD: 10000}
	case "tier2":
		return RateLimits{RPM: 2000, TPM: 4000000, RPD: 50000}
	default:
		return RateLimits{RPM: 10, TPM: 250000, RPD: 250}
	}
}

// GenerateJSON sends a prompt to Gemini requesting a JSON response body and
// returns the raw response text. The caller owns interpretation of the JSON.
func (gc *GeminiClient) GenerateJSON(ctx context.Context, prompt string, temperature float32) (string, error) {
	tracer := otel.Tracer("gemini-client")
	ctx, span := tracer.Start(ctx, "gemini.generate_json")
	defer span.End()

	estimatedTokens := estimateTokens(prompt)
	span.SetAttributes(
		attribute.Int("gemini.estimated_tokens", estimatedTokens),
		attribute.Float64("gemini.temperature", float64(temperature)),
		attribute.String("gemini.model", gc.model),
	)

	// Check token limits before making the request
	if !gc.tokenCounter.CanConsume(estimatedTokens, 1, gc.limits) {
		span.SetAttributes(attribute.Bool("gemini.rate_limited", true))
		return "", ErrRateLimited
	}

	if err := gc.rateLimiter.Wait(ctx); err != nil {
		span.SetAttributes(attribute.Bool("gemini.rate_limited", true))
		return "", err
	}

	result, err := gc.breaker.Execute(func() (interface{}, error) {
		model := gc.client.GenerativeModel(gc.model)
		model.SetTemperature(temperature)
		model.ResponseMIMEType = "application/json"

		resp, err := model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			span.SetAttributes(attribute.Bool("gemini.error", true))
			span.SetAttributes(attribute.String("gemini.error_message", err.Error()))
			return nil, err
		}

		actualTokens := extractTokenUsage(resp)
		gc.tokenCounter.RecordUsage(actualTokens, 1)
		span.SetAttributes(attribute.Int("gemini.actual_tokens", actualTokens))

		return resp, nil
	})

	if err != nil {
		if err == gobreaker.ErrOpenState {
			span.SetAttributes(attribute.Bool("gemini.circuit_breaker_open", true))
			return "", fmt.Errorf("gemini unavailable: %w", err)
		}
		span.SetAttributes(attribute.Bool("gemini.error", true))
		return "", err
	}

	text := responseText(result.(*genai.GenerateContentResponse))
	if text == "" {
		return "", errors.New("empty response from gemini")
	}

	span.SetAttributes(attribute.Bool("gemini.success", true))
	return text, nil
}

func (tc *TokenCounter) CanConsume(tokens, requests int, limits RateLimits) bool {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	now := time.Now()

	// Reset counters if time windows expired
	if now.Sub(tc.lastMinuteReset) >= time.Minute {
		tc.minuteTokens = 0
		tc.minuteRequests = 0
		tc.lastMinuteReset = now
	}

	if now.Sub(tc.lastDayReset) >= 24*time.Hour {
		tc.dailyTokens = 0
		tc.dailyRequests = 0
		tc.lastDayReset = now
	}

	if tc.minuteRequests+requests > limits.RPM {
		return false
	}
	if tc.minuteTokens+tokens > limits.TPM {
		return false
	}
	if tc.dailyRequests+requests > limits.RPD {
		return false
	}

	return true
}

func (tc *TokenCounter) RecordUsage(tokens, requests int) {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	tc.minuteTokens += tokens
	tc.minuteRequests += requests
	tc.dailyTokens += tokens
	tc.dailyRequests += requests
}

// Rough estimation: 1 token ≈ 4 characters
func estimateTokens(prompt string) int {
	estimated := len(prompt) / 4
	if estimated < 1 {
		estimated = 1
	}
	return estimated
}

// Extract token usage from Gemini response
func extractTokenUsage(resp *genai.GenerateContentResponse) int {
	if resp.UsageMetadata != nil {
		return int(resp.UsageMetadata.TotalTokenCount)
	}

	// Fallback: estimate from response text
	estimated := len(responseText(resp)) / 4
	if estimated < 1 {
		estimated = 1
	}
	return estimated
}

// responseText concatenates the text parts of the first candidate
func responseText(resp *genai.GenerateContentResponse) string {
	text := ""
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				text += string(t)
			}
		}
	}
	return text
}

// Close the client
func (gc *GeminiClient) Close() error {
	if gc.client != nil {
		return gc.client.Close()
	}
	return nil
}
