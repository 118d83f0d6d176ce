package service

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"weekly-review/internal/config"
	"weekly-review/internal/logger"
)

// LLMClient wraps an OpenAI-style chat-completions endpoint with a
// primary/backup pair. Endpoint choice is made per request: try the
// primary, on failure retry once against the backup, then give up. There
// is no shared "use backup" state, so one failing request never redirects
// other in-flight requests.
type LLMClient struct {
	cfg    config.LLMConfig
	client *http.Client
}

func NewLLMClient(cfg config.LLMConfig) *LLMClient {
	return &LLMClient{cfg: cfg, client: &http.Client{Timeout: cfg.Timeout()}}
}

func (c *LLMClient) endpoints() []string {
	eps := []string{c.cfg.BaseURL}
	if c.cfg.BackupURL != "" {
		eps = append(eps, c.cfg.BackupURL)
	}
	return eps
}

// Chat returns the full completion text.
func (c *LLMClient) Chat(ctx context.Context, system, user string) (string, error) {
	return c.do(ctx, system, user, false, nil)
}

// Stream invokes flush for each token as it arrives and returns the
// concatenated text. Cancelling ctx aborts the upstream request, so a
// client disconnect does not leak the LLM call.
func (c *LLMClient) Stream(ctx context.Context, system, user string, flush func(string)) (string, error) {
	return c.do(ctx, system, user, true, flush)
}

func (c *LLMClient) do(ctx context.Context, system, user string, stream bool, flush func(string)) (string, error) {
	var errs []error
	for i, base := range c.endpoints() {
		if i > 0 {
			logger.Warn("llm failover to backup", "endpoint", base)
		}
		out, err := c.doChat(ctx, base, system, user, stream, flush)
		if err == nil {
			return out, nil
		}
		if ctx.Err() != nil {
			// Caller is gone, the backup would fail the same way.
			return "", fmt.Errorf("%w: %w", ErrLLMRequest, err)
		}
		errs = append(errs, fmt.Errorf("%s: %w", base, err))
	}
	return "", fmt.Errorf("%w: %w", ErrLLMRequest, errors.Join(errs...))
}

func (c *LLMClient) doChat(ctx context.Context, baseURL, system, user string, stream bool, flush func(string)) (string, error) {
	body := map[string]interface{}{
		"model":  c.cfg.Model,
		"stream": stream,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
		},
	}
	payload, _ := json.Marshal(body)

	req, err := http.NewRequestWithContext(ctx, "POST", baseURL+"/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		data, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("llm status %d: %s", resp.StatusCode, data)
	}

	if !stream {
		data, _ := io.ReadAll(resp.Body)
		var result struct {
			Choices []struct {
				Message struct {
					Content string `json:"content"`
				} `json:"message"`
			} `json:"choices"`
		}
		if err := json.Unmarshal(data, &result); err != nil {
			return "", fmt.Errorf("decode response: %w", err)
		}
		if len(result.Choices) == 0 {
			return "", fmt.Errorf("empty choices")
		}
		return result.Choices[0].Message.Content, nil
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	var full strings.Builder
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		data := line[6:]
		if data == "[DONE]" {
			break
		}
		var chunk struct {
			Choices []struct {
				Delta struct {
					Content string `json:"content"`
				} `json:"delta"`
			} `json:"choices"`
		}
		if json.Unmarshal([]byte(data), &chunk) == nil && len(chunk.Choices) > 0 {
			token := chunk.Choices[0].Delta.Content
			if token != "" {
				full.WriteString(token)
				if flush != nil {
					flush(token)
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read stream: %w", err)
	}
	return full.String(), nil
}
