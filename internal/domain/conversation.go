package domain

const AgentMessageType = "agent_message"

type Conversation struct {
	ID          string
	WorkspaceID string
}

type AgentResult struct {
	Content string
	URL     string
}

type Transcript struct {
	ConversationID string
	Messages       []AgentMessage
}

type AgentMessage struct {
	Type    string
	Status  string
	Content string
	Parts   []MessagePart
}

type MessagePart struct {
	Type  string
	Value string
}

// LatestAgentMessage returns the newest agent message of the transcript.
func (t Transcript) LatestAgentMessage() (AgentMessage, bool) {
	for i := len(t.Messages) - 1; i >= 0; i-- {
		if t.Messages[i].Type == AgentMessageType {
			return t.Messages[i], true
		}
	}
	return AgentMessage{}, false
}

func (m AgentMessage) Failed() bool {
	return m.Status == "failed"
}

// Text prefers the direct content and falls back to the first text part.
func (m AgentMessage) Text() string {
	if m.Content != "" {
		return m.Content
	}
	for _, part := range m.Parts {
		if part.Type == "text" {
			return part.Value
		}
	}
	return ""
}
