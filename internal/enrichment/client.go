// VistaGuide - Hybrid Landmark Recognition Service
// Copyright 2026 HiOmkarrr
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/HiOmkarrr/VistaGuide-sub002

package enrichment

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/HiOmkarrr/VistaGuide-sub002/internal/metrics"
)

// breakerStateValue maps gobreaker states onto the gauge scale
// 0=closed, 1=half-open, 2=open.
func breakerStateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// ClientConfig configures the enrichment HTTP client.
type ClientConfig struct {
	// BaseURL is the enrichment API root, e.g. "https://text.example.com".
	BaseURL string

	// APIKey is sent as a bearer token when non-empty.
	APIKey string

	// Timeout bounds a single request. Default: 15s.
	Timeout time.Duration

	// RequestsPerSecond throttles outgoing calls. Default: 2.
	RequestsPerSecond float64
}

// Client is an HTTP implementation of Service.
//
// Calls run through a circuit breaker so a struggling enrichment backend is
// given time to recover instead of being hammered by every recognition, and
// through a rate limiter since the backend is typically a metered
// generative-text API.
type Client struct {
	cfg     ClientConfig
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[string]
	limiter *rate.Limiter
	logger  zerolog.Logger
}

// enrichRequest is the wire format of an enrichment call.
type enrichRequest struct {
	Landmark string `json:"landmark"`
	RawText  string `json:"raw_text,omitempty"`
	Mode     string `json:"mode"` // "format" or "generate"
}

// enrichResponse is the wire format of an enrichment reply.
type enrichResponse struct {
	Description string `json:"description"`
}

// NewClient creates an enrichment client for the given endpoint.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewClient(cfg ClientConfig, logger zerolog.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("enrichment base URL required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 2
	}

	logger = logger.With().Str("component", "enrichment").Logger()

	breaker := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        "enrichment-api",
		MaxRequests: 2,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("enrichment circuit breaker state change")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(breakerStateValue(to))
		},
	})

	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		breaker: breaker,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		logger:  logger,
	}, nil
}

// Format implements Service.
func (c *Client) Format(ctx context.Context, name, rawText string) (string, error) {
	return c.call(ctx, enrichRequest{Landmark: name, RawText: rawText, Mode: "format"})
}

// Generate implements Service.
func (c *Client) Generate(ctx context.Context, name string) (string, error) {
	return c.call(ctx, enrichRequest{Landmark: name, Mode: "generate"})
}

// call sends one enrichment request through the limiter and breaker.
func (c *Client) call(ctx context.Context, req enrichRequest) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("enrichment rate limit: %w", err)
	}

	text, err := c.breaker.Execute(func() (string, error) {
		return c.doRequest(ctx, req)
	})
	if err != nil {
		return "", err
	}
	return text, nil
}

// doRequest performs the HTTP exchange.
func (c *Client) doRequest(ctx context.Context, req enrichRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal enrichment request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/v1/describe", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build enrichment request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("enrichment request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("enrichment API status %d", resp.StatusCode)
	}

	var out enrichResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode enrichment response: %w", err)
	}

	if strings.TrimSpace(out.Description) == "" {
		return "", fmt.Errorf("enrichment API returned empty description")
	}

	return out.Description, nil
}
