// Package genai is the client for the hosted generative service. It covers
// the two calls GoSakina makes: short text completions for CBT reframes and
// one-shot thematic image generation returning a data URI.
package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// Config holds the connection settings for the generative service.
type Config struct {
	BaseURL    string
	APIKey     string
	TextModel  string
	ImageModel string
	Timeout    time.Duration
}

// KeyFunc supplies the API key for each call. Resolving the key per call
// means a credential reselected by the user takes effect on the very next
// request without rebuilding the client.
type KeyFunc func() string

// Client talks to the generative service.
type Client struct {
	http  *resty.Client
	cfg   Config
	keyFn KeyFunc
	log   zerolog.Logger
}

// NewClient creates a client for the given service configuration.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	c := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout)

	return &Client{
		http:  c,
		cfg:   cfg,
		keyFn: func() string { return cfg.APIKey },
		log:   log,
	}
}

// SetKeyFunc replaces the per-call key source.
func (c *Client) SetKeyFunc(fn KeyFunc) {
	if fn != nil {
		c.keyFn = fn
	}
}

// =============================================================================
// Wire types (generateContent)
// =============================================================================

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"` // base64 payload
}

type imageConfig struct {
	AspectRatio string `json:"aspectRatio,omitempty"`
}

type generationConfig struct {
	Temperature float64      `json:"temperature,omitempty"`
	TopP        float64      `json:"topP,omitempty"`
	ImageConfig *imageConfig `json:"imageConfig,omitempty"`
}

type generateRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// =============================================================================
// Calls
// =============================================================================

// Complete sends a prompt and returns the first text part of the response.
func (c *Client) Complete(ctx context.Context, userPrompt, systemPrompt string) (string, error) {
	req := generateRequest{
		Contents: []content{{Parts: []part{{Text: userPrompt}}}},
		GenerationConfig: &generationConfig{
			Temperature: 0.7,
			TopP:        0.95,
		},
	}
	if systemPrompt != "" {
		req.SystemInstruction = &content{Parts: []part{{Text: systemPrompt}}}
	}

	resp, err := c.generate(ctx, c.cfg.TextModel, req)
	if err != nil {
		return "", err
	}

	for _, cand := range resp.Candidates {
		for _, p := range cand.Content.Parts {
			if p.Text != "" {
				return p.Text, nil
			}
		}
	}
	return "", nil
}

// GenerateImage produces one square thematic illustration for the given
// subject and returns it as a self-contained data URI.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	req := generateRequest{
		Contents: []content{{Parts: []part{{Text: thematicPrompt(prompt)}}}},
		GenerationConfig: &generationConfig{
			ImageConfig: &imageConfig{AspectRatio: "1:1"},
		},
	}

	resp, err := c.generate(ctx, c.cfg.ImageModel, req)
	if err != nil {
		return "", err
	}

	for _, cand := range resp.Candidates {
		for _, p := range cand.Content.Parts {
			if p.InlineData != nil && p.InlineData.Data != "" {
				mime := p.InlineData.MimeType
				if mime == "" {
					mime = "image/png"
				}
				return fmt.Sprintf("data:%s;base64,%s", mime, p.InlineData.Data), nil
			}
		}
	}
	return "", ErrNoImage
}

func (c *Client) generate(ctx context.Context, model string, body generateRequest) (*generateResponse, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("key", c.keyFn()).
		SetBody(&body).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", model))
	if err != nil {
		return nil, fmt.Errorf("genai: request: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode()}
		var er errorResponse
		if json.Unmarshal(resp.Body(), &er) == nil {
			apiErr.Status = er.Error.Status
			apiErr.Message = er.Error.Message
		}
		c.log.Warn().Int("status", resp.StatusCode()).Str("model", model).Msg("generation failed")
		return nil, apiErr
	}

	var out generateResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("genai: decode response: %w", err)
	}
	return &out, nil
}

// thematicPrompt wraps the subject in the house art style used everywhere
// in the app.
func thematicPrompt(subject string) string {
	return fmt.Sprintf(`A professional, high-quality minimalist artwork for a mental health app.
Subject: %s.
Style: Serene, soft pastel colors, clean lines, calming aesthetic, high resolution digital art.
No text, no watermarks.`, subject)
}
