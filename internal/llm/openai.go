package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"pdfxtract/internal/extract"
)

type openAIRequest struct {
	Model          string          `json:"model"`
	Messages       []openAIMessage `json:"messages"`
	Temperature    float32         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// callOpenAI runs one chunk through the chat completions endpoint with JSON
// response mode enforced.
func (c *Client) callOpenAI(ctx context.Context, req extract.Request, prompt string) ([]extract.ServiceExtraction, error) {
	body := openAIRequest{
		Model: req.ModelID,
		Messages: []openAIMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature:    c.cfg.Temperature,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}
	url := strings.TrimSuffix(c.cfg.OpenAIBaseURL, "/") + "/chat/completions"
	headers := map[string]string{"Authorization": "Bearer " + req.APIKey}

	raw, _, err := sendJSON(ctx, c.httpClient, url, body, headers, c.logger)
	if err != nil {
		return nil, fmt.Errorf("openai request: %w", err)
	}

	var resp openAIResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode openai response: %w", err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("openai error: %s (%s)", resp.Error.Message, resp.Error.Type)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai response has no choices")
	}
	return parseReply([]byte(resp.Choices[0].Message.Content))
}
