// Package advisor calls a hosted language model to suggest a priority for
// a task. One blocking request per suggestion; failures are returned to
// the caller verbatim and never retried, so the caller's existing priority
// selection stays untouched.
package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tasktango/backend/domain"
)

const promptTemplate = `You are a task prioritization expert. Given the task title, description, and due date, determine the priority of the task. The priority should be one of: low, medium, or high.

Task Title: %s
Task Description: %s
Task Due Date: %s

Respond with only the priority.`

// Input is the advisor request surface.
type Input struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
}

func (in Input) validate() error {
	if in.Title == "" {
		return domain.NewError(domain.ErrCodeInvalid, "title is required")
	}
	if _, err := time.Parse(time.RFC3339, in.DueDate); err != nil {
		return domain.WrapError(domain.ErrCodeInvalid, "due date must be RFC 3339", err)
	}
	return nil
}

// CacheKey is the canonical cache identity of the input.
func (in Input) CacheKey() string {
	return in.Title + "\x00" + in.Description + "\x00" + in.DueDate
}

// Client talks to an OpenAI-compatible chat completions endpoint.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// NewClient builds an advisor client. timeout bounds the single call.
func NewClient(apiKey, baseURL, model string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

// SuggestPriority asks the model for one of low, medium or high.
func (c *Client) SuggestPriority(ctx context.Context, in Input) (domain.Priority, error) {
	if err := in.validate(); err != nil {
		return "", err
	}
	if c.apiKey == "" {
		return "", domain.NewError(domain.ErrCodeUnavailable, "advisor api key not configured")
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{{
			Role:    "user",
			Content: fmt.Sprintf(promptTemplate, in.Title, in.Description, in.DueDate),
		}},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", domain.WrapError(domain.ErrCodeUnavailable, "advisor request failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", domain.WrapError(domain.ErrCodeUnavailable, "advisor response unreadable", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", domain.NewError(domain.ErrCodeUnavailable,
				fmt.Sprintf("advisor error (%d): %s", resp.StatusCode, apiErr.Error.Message))
		}
		return "", domain.NewError(domain.ErrCodeUnavailable,
			fmt.Sprintf("advisor error (%d)", resp.StatusCode))
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", domain.WrapError(domain.ErrCodeUnavailable, "advisor response undecodable", err)
	}
	if len(parsed.Choices) == 0 {
		return "", domain.NewError(domain.ErrCodeUnavailable, "advisor returned no choices")
	}

	answer := strings.ToLower(strings.TrimSpace(parsed.Choices[0].Message.Content))
	priority, err := domain.ParsePriority(answer)
	if err != nil {
		return "", domain.NewError(domain.ErrCodeUnavailable,
			fmt.Sprintf("advisor returned %q, expected low, medium or high", answer))
	}
	return priority, nil
}
