package ports

import (
	"context"

	"github.com/bnema/page-migration/internal/domain"
)

type SeedMessage struct {
	Content string
}

type NewConversation struct {
	Title   string
	Message *SeedMessage
}

// AgentClient is the four-call conversation protocol of the agent API.
type AgentClient interface {
	WorkspaceID() string
	CreateConversation(ctx context.Context, req NewConversation) (domain.Conversation, error)
	CreateContentFragment(ctx context.Context, conversationID, title, content string) (string, error)
	CreateMessage(ctx context.Context, conversationID, agentID, content string) (string, error)
	GetConversation(ctx context.Context, conversationID string) (domain.Transcript, error)
}

// AgentRunner runs one prompt against the agent. A nil result without error
// means the agent produced no usable answer.
type AgentRunner interface {
	Run(ctx context.Context, userContent string, fragments []domain.ContentFragment) (*domain.AgentResult, error)
}
