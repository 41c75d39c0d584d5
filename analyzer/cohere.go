package analyzer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"time"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
)

// cohereBackend implements ChatBackend using the Cohere Chat API (v2)
// Docs: https://docs.cohere.com/reference/chat
// SDK: github.com/cohere-ai/cohere-go/v2
type cohereBackend struct {
	client *cohereclient.Client
}

func newCohereBackend(apiKey string) *cohereBackend {
	// Force HTTP/1.1 to avoid HTTP/2 protocol errors seen against the API
	httpClient := &http.Client{
		Timeout: 60 * time.Second,
		Transport: &http.Transport{
			TLSNextProto:      make(map[string]func(authority string, c *tls.Conn) http.RoundTripper),
			ForceAttemptHTTP2: false,
		},
	}
	client := cohereclient.NewClient(
		cohereclient.WithToken(apiKey),
		cohereclient.WithHTTPClient(httpClient),
	)
	return &cohereBackend{client: client}
}

func (c *cohereBackend) GenerateJSON(ctx context.Context, model, prompt string, schema map[string]interface{}) (string, error) {
	resp, err := c.client.V2.Chat(
		ctx,
		&cohere.V2ChatRequest{
			Model: model,
			Messages: cohere.ChatMessages{
				{
					Role: "user",
					User: &cohere.UserMessageV2{Content: &cohere.UserMessageV2Content{
						String: prompt,
					}},
				},
			},
			ResponseFormat: &cohere.ResponseFormatV2{
				JsonObject: &cohere.JsonResponseFormatV2{JsonSchema: schema},
			},
		},
	)
	if err != nil {
		return "", fmt.Errorf("cohere chat error: %w", err)
	}
	if resp == nil || resp.Message == nil {
		return "", errors.New("cohere chat returned empty response")
	}

	for _, part := range resp.Message.Content {
		if part != nil && part.Text != nil && part.Text.Text != "" {
			return part.Text.Text, nil
		}
	}
	return "", errors.New("cohere chat returned no text content")
}
