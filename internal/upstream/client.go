package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	app_errors "mediadeck/backend/internal/errors"
	"mediadeck/backend/internal/model"
)

// Client defines the chat-platform API operations the resolver core consumes.
type Client interface {
	// GetMediaOverview returns files, chat summaries and folders in one shot.
	// limit=0 means no limit, per backend convention.
	GetMediaOverview(ctx context.Context, skip, limit int) (*model.Overview, error)
	// SearchChats runs a server-side text search over chat contents.
	SearchChats(ctx context.Context, text string, limit int) ([]*model.Chat, error)
	// ListChats returns every chat the token's user owns.
	ListChats(ctx context.Context) ([]*model.Chat, error)
	// GetChat returns one chat with its full message history.
	GetChat(ctx context.Context, chatID string) (*model.Chat, error)
	// DeleteFile deletes a file by id.
	DeleteFile(ctx context.Context, fileID string) error
}

type httpClient struct {
	client  *http.Client
	baseURL string
	token   string
}

// NewHTTPClient creates a Client talking to the platform API at baseURL,
// authenticating every request with the given bearer token.
func NewHTTPClient(baseURL, token string) Client {
	return &httpClient{
		client:  &http.Client{},
		baseURL: baseURL,
		token:   token,
	}
}

func (c *httpClient) GetMediaOverview(ctx context.Context, skip, limit int) (*model.Overview, error) {
	q := url.Values{}
	q.Set("skip", strconv.Itoa(skip))
	q.Set("limit", strconv.Itoa(limit))

	var overview model.Overview
	if err := c.getJSON(ctx, "/api/v1/files/overview?"+q.Encode(), &overview); err != nil {
		return nil, err
	}
	return &overview, nil
}

func (c *httpClient) SearchChats(ctx context.Context, text string, limit int) ([]*model.Chat, error) {
	q := url.Values{}
	q.Set("text", text)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var chats []*model.Chat
	if err := c.getJSON(ctx, "/api/v1/chats/search?"+q.Encode(), &chats); err != nil {
		return nil, err
	}
	return chats, nil
}

func (c *httpClient) ListChats(ctx context.Context) ([]*model.Chat, error) {
	var chats []*model.Chat
	if err := c.getJSON(ctx, "/api/v1/chats/all", &chats); err != nil {
		return nil, err
	}
	return chats, nil
}

// chatEnvelope matches the GetChat response: summary fields at the top level
// and the history payload nested under "chat".
type chatEnvelope struct {
	ID        string      `json:"id"`
	Title     string      `json:"title,omitempty"`
	CreatedAt int64       `json:"created_at,omitempty"`
	UpdatedAt int64       `json:"updated_at,omitempty"`
	Chat      *model.Chat `json:"chat,omitempty"`
}

func (c *httpClient) GetChat(ctx context.Context, chatID string) (*model.Chat, error) {
	var envelope chatEnvelope
	if err := c.getJSON(ctx, "/api/v1/chats/"+url.PathEscape(chatID), &envelope); err != nil {
		return nil, err
	}

	chat := envelope.Chat
	if chat == nil {
		chat = &model.Chat{}
	}
	if chat.ID == "" {
		chat.ID = envelope.ID
	}
	if chat.Title == "" {
		chat.Title = envelope.Title
	}
	if chat.CreatedAt == 0 {
		chat.CreatedAt = envelope.CreatedAt
	}
	if chat.UpdatedAt == 0 {
		chat.UpdatedAt = envelope.UpdatedAt
	}
	return chat, nil
}

func (c *httpClient) DeleteFile(ctx context.Context, fileID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/api/v1/files/"+url.PathEscape(fileID), nil)
	if err != nil {
		return fmt.Errorf("could not create http request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", app_errors.ErrUpstream, err)
	}
	defer resp.Body.Close()

	return c.checkStatus(resp)
}

// getJSON issues an authenticated GET and decodes the JSON body into out.
func (c *httpClient) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("could not create http request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", app_errors.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: could not decode response: %v", app_errors.ErrUpstream, err)
	}
	return nil
}

func (c *httpClient) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

func (c *httpClient) checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", app_errors.ErrNotFound, string(body))
	}
	return fmt.Errorf("%w: status %d: %s", app_errors.ErrUpstream, resp.StatusCode, string(body))
}
