// Package assistant wraps the external natural-language service behind a
// single Generate call. Providers speak the OpenAI-compatible chat
// completions protocol; a fallback provider is tried when the primary one
// fails.
package assistant

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/campustrack/backend/internal/config"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type provider struct {
	apiURL string
	apiKey string
	model  string
}

type Client struct {
	providers []provider
	timeout   time.Duration
}

func NewClient(cfg *config.Config) *Client {
	var providers []provider
	if cfg.AIAPIKey != "" {
		providers = append(providers, provider{cfg.AIAPIURL, cfg.AIAPIKey, cfg.AIModel})
	}
	if cfg.AIFallbackAPIKey != "" {
		providers = append(providers, provider{cfg.AIFallbackAPIURL, cfg.AIFallbackAPIKey, cfg.AIFallbackModel})
	}
	return &Client{providers: providers, timeout: cfg.AITimeout}
}

// Available reports whether at least one provider is configured.
func (c *Client) Available() bool {
	return len(c.providers) > 0
}

// Generate sends a single prompt and returns the model's text reply,
// trying each configured provider in order.
func (c *Client) Generate(systemPrompt, userPrompt string) (string, error) {
	if len(c.providers) == 0 {
		return "", errors.New("no AI provider configured")
	}

	var lastErr error
	for _, p := range c.providers {
		text, err := c.generateWith(p, systemPrompt, userPrompt)
		if err == nil {
			return text, nil
		}
		slog.Warn("assistant provider failed", "url", p.apiURL, "error", err)
		lastErr = err
	}
	return "", lastErr
}

func (c *Client) generateWith(p provider, systemPrompt, userPrompt string) (string, error) {
	messages := make([]chatMessage, 0, 2)
	if systemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: systemPrompt})
	}
	messages = append(messages, chatMessage{Role: "user", Content: userPrompt})

	payload, err := json.Marshal(chatRequest{Model: p.model, Messages: messages, Temperature: 0.4})
	if err != nil {
		return "", err
	}

	timeout := c.timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	req, err := http.NewRequest(http.MethodPost, p.apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("AI API error: status %d", resp.StatusCode)
	}

	var completion chatResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("no response from AI")
	}

	return stripFences(completion.Choices[0].Message.Content), nil
}

func stripFences(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
	}
	return strings.TrimSpace(content)
}
