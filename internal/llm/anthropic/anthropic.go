package anthropic

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"gradewise/internal/llm"
)

type Engine struct {
	APIKey string
	Model  string
	httpc  *http.Client
}

func New(key, model string) *Engine {
	return &Engine{
		APIKey: key,
		Model:  model,
		httpc:  &http.Client{Timeout: 120 * time.Second},
	}
}

func (e *Engine) Name() string { return "claude" }

func (e *Engine) GetModel() string { return e.Model }

func (e *Engine) Generate(ctx context.Context, system, user string, atts []llm.Attachment) (string, error) {
	if e.APIKey == "" {
		return "", fmt.Errorf("ANTHROPIC_API_KEY is empty")
	}

	content := []any{}
	for _, a := range atts {
		content = append(content, map[string]any{
			"type": "image",
			"source": map[string]any{
				"type":       "base64",
				"media_type": a.MIME,
				"data":       base64.StdEncoding.EncodeToString(a.Data),
			},
		})
	}
	content = append(content, map[string]any{"type": "text", "text": user})

	body := map[string]any{
		"model":      e.Model,
		"max_tokens": 4096,
		"system":     system,
		"messages": []any{
			map[string]any{"role": "user", "content": content},
		},
		"temperature": 0,
	}
	payload, _ := json.Marshal(body)

	req, _ := http.NewRequestWithContext(ctx, "POST", "https://api.anthropic.com/v1/messages", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", e.APIKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := e.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		x, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("anthropic %d: %s", resp.StatusCode, strings.TrimSpace(string(x)))
	}

	var raw struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", err
	}
	var out strings.Builder
	for _, c := range raw.Content {
		if c.Type == "text" {
			out.WriteString(c.Text)
		}
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("anthropic: empty response")
	}
	return strings.TrimSpace(out.String()), nil
}
