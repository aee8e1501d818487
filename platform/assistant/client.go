package assistant

import (
	"context"
	"encoding/json"
	"fmt"

	"music_chat_backend/config"
	"music_chat_backend/models"
	"music_chat_backend/pkg/logging"
	"music_chat_backend/utils"

	"github.com/go-resty/resty/v2"
)

// Client talks to the assistant API, the upstream owner of message history
// and of the media-generation tasks. Correlation-key field names in the wire
// payloads are part of the contract and must not be renamed.
type Client struct {
	http *resty.Client
}

func NewClient(cfg *config.Config) *Client {
	http := resty.New().
		SetBaseURL(cfg.AssistantBaseURL).
		SetTimeout(cfg.AssistantTimeout).
		SetHeader("Content-Type", "application/json")
	if cfg.AssistantAPIKey != "" {
		http.SetAuthToken(cfg.AssistantAPIKey)
	}
	logging.Logger.Info("Assistant client initialized",
		"baseURL", cfg.AssistantBaseURL,
		"apiKey", utils.MaskAPIKey(cfg.AssistantAPIKey),
	)
	return &Client{http: http}
}

type messagesResponse struct {
	Messages []models.Message `json:"messages"`
}

type sendResponse struct {
	Message *models.Message `json:"message"`
}

type createThreadResponse struct {
	ThreadID string `json:"threadId"`
}

type listThreadsResponse struct {
	Threads map[string]models.ThreadDetails `json:"threads"`
}

func (c *Client) ListMessages(ctx context.Context, threadID string) ([]models.Message, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/api/v1/chat/%s/messages", threadID))
	if err != nil {
		return nil, fmt.Errorf("list messages request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("list messages returned %s", resp.Status())
	}
	var body messagesResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %w", err)
	}
	return body.Messages, nil
}

func (c *Client) SendFragment(ctx context.Context, threadID string, fragment models.Fragment) (*models.Message, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(fragment).
		Post(fmt.Sprintf("/api/v1/chat/%s/messages", threadID))
	if err != nil {
		return nil, fmt.Errorf("send fragment request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("send fragment returned %s", resp.Status())
	}
	var body sendResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("failed to decode send response: %w", err)
	}
	if body.Message == nil {
		return nil, fmt.Errorf("invalid message response")
	}
	return body.Message, nil
}

func (c *Client) PendingMessages(ctx context.Context, threadID string) ([]models.PendingMessage, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/api/v1/chat/%s/messages/pending", threadID))
	if err != nil {
		return nil, fmt.Errorf("pending messages request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("pending messages returned %s", resp.Status())
	}
	var body []models.PendingMessage
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("failed to decode pending messages: %w", err)
	}
	return body, nil
}

func (c *Client) CreateThread(ctx context.Context, artistID string) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"artistId": artistID}).
		Post("/api/v1/chat")
	if err != nil {
		return "", fmt.Errorf("create thread request failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("create thread returned %s", resp.Status())
	}
	var body createThreadResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return "", fmt.Errorf("failed to decode create response: %w", err)
	}
	if body.ThreadID == "" {
		return "", fmt.Errorf("failed to create chat")
	}
	return body.ThreadID, nil
}

func (c *Client) ListThreads(ctx context.Context, artistID string, amount int) (map[string]models.ThreadDetails, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("amount", fmt.Sprintf("%d", amount)).
		Get(fmt.Sprintf("/api/v1/chat/artist/%s", artistID))
	if err != nil {
		return nil, fmt.Errorf("list threads request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("list threads returned %s", resp.Status())
	}
	var body listThreadsResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("failed to decode threads: %w", err)
	}
	if body.Threads == nil {
		return map[string]models.ThreadDetails{}, nil
	}
	return body.Threads, nil
}

func (c *Client) DeleteThread(ctx context.Context, threadID string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/api/v1/chat/%s", threadID))
	if err != nil {
		return fmt.Errorf("delete thread request failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("delete thread returned %s", resp.Status())
	}
	return nil
}
