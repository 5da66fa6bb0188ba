package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
)

const systemPrompt = "You respond concisely, in 2-3 sentences"

var ErrEmptyCompletion = errors.New("summary provider returned no content")

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Message struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"message"`
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientCohere generates plot summaries through the Cohere v2 chat API.
type ClientCohere struct {
	apiKey string
	apiURL string
	model  string
	client HTTPClient
	logger *log.Logger
}

func NewCohereClient(apiKey, apiURL, model string, httpClient HTTPClient, logger *log.Logger) *ClientCohere {
	return &ClientCohere{apiKey: apiKey, apiURL: apiURL, model: model, client: httpClient, logger: logger}
}

func (s *ClientCohere) Summarize(ctx context.Context, title, year string) (string, error) {
	instruction := fmt.Sprintf("Write a plot summary for the movie %s released in %s", title, year)

	body, err := json.Marshal(chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: instruction},
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("summary request: %w", err)
	}
	defer func(body io.ReadCloser) {
		err := body.Close()
		if err != nil {
			s.logger.Println("failed to close response body:", err)
		}
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("summary API error: status %d", resp.StatusCode)
	}

	var raw chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", fmt.Errorf("summary response: %w", err)
	}

	for _, part := range raw.Message.Content {
		if part.Type == "text" && part.Text != "" {
			return part.Text, nil
		}
	}
	return "", ErrEmptyCompletion
}
