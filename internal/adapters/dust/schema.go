package dust

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bnema/page-migration/internal/domain"
)

const (
	conversationVisibility = "unlisted"
	fragmentContentType    = "text/plain"
	contextOrigin          = "api"
)

type userContext struct {
	Timezone          string `json:"timezone"`
	Username          string `json:"username"`
	FullName          string `json:"fullName"`
	Email             string `json:"email"`
	ProfilePictureURL string `json:"profilePictureUrl"`
	Origin            string `json:"origin"`
}

type mention struct {
	ConfigurationID string `json:"configurationId"`
}

type messageRequest struct {
	Content  string      `json:"content"`
	Mentions []mention   `json:"mentions"`
	Context  userContext `json:"context"`
	Blocking bool        `json:"blocking,omitempty"`
}

type createConversationRequest struct {
	Title      string          `json:"title"`
	Visibility string          `json:"visibility"`
	Blocking   bool            `json:"blocking"`
	Message    *messageRequest `json:"message,omitempty"`
}

type contentFragmentRequest struct {
	Title       string      `json:"title"`
	Content     string      `json:"content"`
	ContentType string      `json:"contentType"`
	Context     userContext `json:"context"`
}

// resourceRef accepts both the string sId and the numeric id the API returns.
type resourceRef struct {
	SID string          `json:"sId"`
	ID  json.RawMessage `json:"id"`
}

func (r resourceRef) value() string {
	if r.SID != "" {
		return r.SID
	}

	raw := bytes.TrimSpace(r.ID)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}

	if text := rawString(raw); text != "" {
		return text
	}
	return string(raw)
}

type conversationResponse struct {
	Conversation struct {
		resourceRef
		Content json.RawMessage `json:"content"`
	} `json:"conversation"`
}

type contentFragmentResponse struct {
	ContentFragment resourceRef `json:"contentFragment"`
}

type messageResponse struct {
	Message resourceRef `json:"message"`
}

// Content fields are kept raw: user and fragment messages do not always carry strings there.
type wireMessage struct {
	Type     string          `json:"type"`
	Status   string          `json:"status"`
	Content  json.RawMessage `json:"content"`
	Contents []struct {
		Content struct {
			Type  string          `json:"type"`
			Value json.RawMessage `json:"value"`
		} `json:"content"`
	} `json:"contents"`
}

func (m wireMessage) toDomain() domain.AgentMessage {
	message := domain.AgentMessage{Type: m.Type, Status: m.Status, Content: rawString(m.Content)}
	for _, entry := range m.Contents {
		message.Parts = append(message.Parts, domain.MessagePart{Type: entry.Content.Type, Value: rawString(entry.Content.Value)})
	}
	return message
}

func rawString(raw json.RawMessage) string {
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return ""
	}
	return text
}

// flattenMessages walks the nested message arrays in order. Entries that are
// neither arrays nor objects are skipped.
func flattenMessages(raw json.RawMessage) ([]domain.AgentMessage, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	switch raw[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("decode message list: %w", err)
		}

		var messages []domain.AgentMessage
		for _, item := range items {
			nested, err := flattenMessages(item)
			if err != nil {
				return nil, err
			}
			messages = append(messages, nested...)
		}
		return messages, nil
	case '{':
		var message wireMessage
		if err := json.Unmarshal(raw, &message); err != nil {
			return nil, fmt.Errorf("decode message: %w", err)
		}
		return []domain.AgentMessage{message.toDomain()}, nil
	default:
		return nil, nil
	}
}

func truncateBody(body []byte) string {
	const limit = 2048

	text := strings.TrimSpace(string(body))
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}
