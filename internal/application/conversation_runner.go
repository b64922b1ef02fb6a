package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bnema/page-migration/internal/domain"
	"github.com/bnema/page-migration/internal/ports"
)

const (
	DefaultConversationHost = "https://dust.tt"
	seedMessageContent      = "Starting migration task..."
)

// ConversationRunner drives one prompt through a fresh agent conversation.
type ConversationRunner struct {
	client  ports.AgentClient
	agentID string
	webHost string
	clock   ports.Clock
	logger  *slog.Logger
}

var _ ports.AgentRunner = (*ConversationRunner)(nil)

func NewConversationRunner(client ports.AgentClient, agentID string, webHost string, clock ports.Clock, logger *slog.Logger) *ConversationRunner {
	if webHost == "" {
		webHost = DefaultConversationHost
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ConversationRunner{
		client:  client,
		agentID: agentID,
		webHost: strings.TrimRight(webHost, "/"),
		clock:   clock,
		logger:  logger,
	}
}

func (r *ConversationRunner) Run(ctx context.Context, userContent string, fragments []domain.ContentFragment) (*domain.AgentResult, error) {
	conversation, err := r.client.CreateConversation(ctx, ports.NewConversation{
		Title:   fmt.Sprintf("Migration Task %d", r.clock.Now().Unix()),
		Message: &ports.SeedMessage{Content: seedMessageContent},
	})
	if err != nil {
		return nil, fmt.Errorf("start conversation: %w", err)
	}

	for i, fragment := range fragments {
		if _, err := r.client.CreateContentFragment(ctx, conversation.ID, fragment.Title, fragment.Content); err != nil {
			return nil, fmt.Errorf("upload fragment %d/%d: %w", i+1, len(fragments), err)
		}
	}

	if _, err := r.client.CreateMessage(ctx, conversation.ID, r.agentID, userContent); err != nil {
		return nil, fmt.Errorf("send prompt: %w", err)
	}

	transcript, err := r.client.GetConversation(ctx, conversation.ID)
	if err != nil {
		return nil, fmt.Errorf("fetch transcript: %w", err)
	}

	message, ok := transcript.LatestAgentMessage()
	if !ok {
		r.logger.Debug("no agent message in transcript", "conversation", conversation.ID)
		return nil, nil
	}
	if message.Failed() {
		r.logger.Debug("agent message failed", "conversation", conversation.ID)
		return nil, nil
	}

	text := message.Text()
	if text == "" {
		return nil, nil
	}

	return &domain.AgentResult{Content: text, URL: r.conversationURL(conversation)}, nil
}

func (r *ConversationRunner) conversationURL(conversation domain.Conversation) string {
	workspaceID := conversation.WorkspaceID
	if workspaceID == "" {
		workspaceID = r.client.WorkspaceID()
	}
	return fmt.Sprintf("%s/w/%s/conversation/%s", r.webHost, workspaceID, conversation.ID)
}
