package dust

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/page-migration/internal/domain"
	"github.com/bnema/page-migration/internal/ports"
)

const (
	DefaultBaseURL     = "https://dust.tt/api/v1"
	DefaultReadTimeout = 300 * time.Second

	connectTimeout   = 10 * time.Second
	maxResponseBytes = 16 << 20
)

// Identity is the user context attached to every message and fragment.
type Identity struct {
	Timezone          string
	Username          string
	FullName          string
	Email             string
	ProfilePictureURL string
}

func DefaultIdentity() Identity {
	return Identity{
		Timezone: "Europe/Paris",
		Username: "page-migration-bot",
		FullName: "Page Migration Bot",
		Email:    "bot@example.com",
	}
}

func (i Identity) wire() userContext {
	return userContext{
		Timezone:          i.Timezone,
		Username:          i.Username,
		FullName:          i.FullName,
		Email:             i.Email,
		ProfilePictureURL: i.ProfilePictureURL,
		Origin:            contextOrigin,
	}
}

type Config struct {
	BaseURL     string
	WorkspaceID string
	APIKey      string
	ReadTimeout time.Duration
	Retry       RetryPolicy
	Identity    Identity
	HTTPClient  *http.Client
	Logger      *slog.Logger
}

type Client struct {
	baseURL     string
	workspaceID string
	apiKey      string
	retry       RetryPolicy
	identity    userContext
	httpClient  *http.Client
	logger      *slog.Logger
	sleep       sleepFunc
}

var _ ports.AgentClient = (*Client)(nil)

func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.WorkspaceID) == "" {
		return nil, fmt.Errorf("workspace id: %w", domain.ErrMissingSetting)
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("api key: %w", domain.ErrMissingSetting)
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, errors.New("api base url must use http or https")
	}
	if parsed.Host == "" {
		return nil, errors.New("api base url host is required")
	}

	identity := cfg.Identity
	if identity == (Identity{}) {
		identity = DefaultIdentity()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = newHTTPClient(cfg.ReadTimeout)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:     baseURL,
		workspaceID: cfg.WorkspaceID,
		apiKey:      cfg.APIKey,
		retry:       cfg.Retry.normalized(),
		identity:    identity.wire(),
		httpClient:  httpClient,
		logger:      logger,
		sleep:       sleepContext,
	}, nil
}

// newHTTPClient bounds connection setup separately from the wait for a reply,
// which can take minutes for a blocking agent message.
func newHTTPClient(readTimeout time.Duration) *http.Client {
	if readTimeout <= 0 {
		readTimeout = DefaultReadTimeout
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{Timeout: connectTimeout, KeepAlive: 30 * time.Second}).DialContext
	transport.TLSHandshakeTimeout = connectTimeout
	transport.ResponseHeaderTimeout = readTimeout

	return &http.Client{Transport: transport, Timeout: connectTimeout + readTimeout}
}

func (c *Client) WorkspaceID() string {
	return c.workspaceID
}

func (c *Client) CreateConversation(ctx context.Context, req ports.NewConversation) (domain.Conversation, error) {
	title := req.Title
	if title == "" {
		title = fmt.Sprintf("Migration Task %d", time.Now().Unix())
	}

	body := createConversationRequest{Title: title, Visibility: conversationVisibility}
	if req.Message != nil {
		body.Message = &messageRequest{
			Content:  req.Message.Content,
			Mentions: []mention{},
			Context:  c.identity,
		}
	}

	var resp conversationResponse
	if err := c.do(ctx, http.MethodPost, c.conversationsPath(), body, &resp); err != nil {
		return domain.Conversation{}, fmt.Errorf("create conversation: %w", err)
	}

	id := resp.Conversation.value()
	if id == "" {
		return domain.Conversation{}, errors.New("create conversation: response missing conversation id")
	}

	return domain.Conversation{ID: id, WorkspaceID: c.workspaceID}, nil
}

func (c *Client) CreateContentFragment(ctx context.Context, conversationID, title, content string) (string, error) {
	body := contentFragmentRequest{
		Title:       title,
		Content:     content,
		ContentType: fragmentContentType,
		Context:     c.identity,
	}

	var resp contentFragmentResponse
	if err := c.do(ctx, http.MethodPost, c.conversationPath(conversationID, "content_fragments"), body, &resp); err != nil {
		return "", fmt.Errorf("create content fragment: %w", err)
	}

	return resp.ContentFragment.value(), nil
}

func (c *Client) CreateMessage(ctx context.Context, conversationID, agentID, content string) (string, error) {
	body := messageRequest{
		Content:  content,
		Mentions: []mention{{ConfigurationID: agentID}},
		Context:  c.identity,
		Blocking: true,
	}

	var resp messageResponse
	if err := c.do(ctx, http.MethodPost, c.conversationPath(conversationID, "messages"), body, &resp); err != nil {
		return "", fmt.Errorf("create message: %w", err)
	}

	return resp.Message.value(), nil
}

func (c *Client) GetConversation(ctx context.Context, conversationID string) (domain.Transcript, error) {
	var resp conversationResponse
	if err := c.do(ctx, http.MethodGet, c.conversationPath(conversationID), nil, &resp); err != nil {
		return domain.Transcript{}, fmt.Errorf("get conversation: %w", err)
	}

	messages, err := flattenMessages(resp.Conversation.Content)
	if err != nil {
		return domain.Transcript{}, fmt.Errorf("get conversation: %w", err)
	}

	id := resp.Conversation.value()
	if id == "" {
		id = conversationID
	}

	return domain.Transcript{ConversationID: id, Messages: messages}, nil
}

func (c *Client) conversationsPath() string {
	return "/w/" + url.PathEscape(c.workspaceID) + "/assistant/conversations"
}

func (c *Client) conversationPath(conversationID string, segments ...string) string {
	parts := append([]string{c.conversationsPath(), url.PathEscape(conversationID)}, segments...)
	return strings.Join(parts, "/")
}

// do sends one request, retrying retryable failures under c.retry. The request
// body is encoded once and replayed on every attempt.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var payload []byte
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = encoded
	}

	endpoint := c.baseURL + path

	var lastErr *domain.AgentAPIError
	for attempt := 0; ; attempt++ {
		if attempt > 0 {
			delay := c.retry.Delay(attempt)
			c.logger.Debug("retrying agent api request",
				"method", method,
				"path", path,
				"attempt", attempt,
				"delay", delay,
				"last_error", lastErr,
			)
			if err := c.sleep(ctx, delay); err != nil {
				return err
			}
		}

		status, respBody, err := c.send(ctx, method, endpoint, payload)
		switch {
		case err != nil:
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			lastErr = &domain.AgentAPIError{Err: err}
			if !retryableError(err) {
				return lastErr
			}
		case status >= http.StatusOK && status < http.StatusMultipleChoices:
			if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
				return nil
			}
			if err := json.Unmarshal(respBody, out); err != nil {
				return fmt.Errorf("decode response: %w", err)
			}
			return nil
		default:
			lastErr = &domain.AgentAPIError{Status: status, ResponseBody: truncateBody(respBody)}
			if !retryableStatus(status) {
				return lastErr
			}
		}

		if attempt >= c.retry.MaxRetries {
			return lastErr
		}
	}
}

func (c *Client) send(ctx context.Context, method, endpoint string, payload []byte) (int, []byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", err)
	}

	return resp.StatusCode, respBody, nil
}
