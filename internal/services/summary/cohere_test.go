package summary_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"testing"

	"github.com/okutsenko-ucu/cloud-portfolio/internal/services/summary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chatURL = "https://api.cohere.com/v2/chat"

type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestSummarize(t *testing.T) {
	mockClient := &mockHTTPClient{
		doFunc: func(req *http.Request) (*http.Response, error) {
			if req.Method != http.MethodPost || req.URL.String() != chatURL {
				return nil, fmt.Errorf("unexpected request: %s %s", req.Method, req.URL.String())
			}
			if got := req.Header.Get("Authorization"); got != "Bearer mock_api_key" {
				return nil, fmt.Errorf("unexpected authorization header: %q", got)
			}

			var body struct {
				Model    string `json:"model"`
				Messages []struct {
					Role    string `json:"role"`
					Content string `json:"content"`
				} `json:"messages"`
			}
			if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
				return nil, err
			}
			if body.Model != "command-r-plus-08-2024" {
				return nil, fmt.Errorf("unexpected model: %q", body.Model)
			}
			if len(body.Messages) != 2 || body.Messages[0].Role != "system" {
				return nil, fmt.Errorf("unexpected messages: %+v", body.Messages)
			}
			if !strings.Contains(body.Messages[1].Content, "Inception released in 2010") {
				return nil, fmt.Errorf("unexpected instruction: %q", body.Messages[1].Content)
			}

			return &http.Response{
				StatusCode: http.StatusOK,
				Body: io.NopCloser(strings.NewReader(
					`{"message": {"content": [{"type": "text", "text": "A thief steals secrets through dreams."}]}}`)),
			}, nil
		},
	}

	client := summary.NewCohereClient(
		"mock_api_key", chatURL, "command-r-plus-08-2024", mockClient, discardLogger())

	text, err := client.Summarize(context.Background(), "Inception", "2010")
	require.NoError(t, err)
	assert.Equal(t, "A thief steals secrets through dreams.", text)
}

func TestSummarize_APIError(t *testing.T) {
	mockClient := &mockHTTPClient{
		doFunc: func(req *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusTooManyRequests,
				Body:       io.NopCloser(strings.NewReader(`{"message": "rate limited"}`)),
			}, nil
		},
	}

	client := summary.NewCohereClient(
		"mock_api_key", chatURL, "command-r-plus-08-2024", mockClient, discardLogger())

	_, err := client.Summarize(context.Background(), "Inception", "2010")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestSummarize_EmptyCompletion(t *testing.T) {
	mockClient := &mockHTTPClient{
		doFunc: func(req *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(strings.NewReader(`{"message": {"content": []}}`)),
			}, nil
		},
	}

	client := summary.NewCohereClient(
		"mock_api_key", chatURL, "command-r-plus-08-2024", mockClient, discardLogger())

	_, err := client.Summarize(context.Background(), "Inception", "2010")
	assert.ErrorIs(t, err, summary.ErrEmptyCompletion)
}

func TestSummarize_MalformedResponse(t *testing.T) {
	mockClient := &mockHTTPClient{
		doFunc: func(req *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(strings.NewReader(`{"message": {`)),
			}, nil
		},
	}

	client := summary.NewCohereClient(
		"mock_api_key", chatURL, "command-r-plus-08-2024", mockClient, discardLogger())

	_, err := client.Summarize(context.Background(), "Inception", "2010")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "summary response")
}
