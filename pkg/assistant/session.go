package assistant

import "github.com/google/uuid"

// MaxHistoryLength bounds the turns retained per session.
const MaxHistoryLength = 10

// Role identifies the author of a conversation turn.
type Role string

// Conversation roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ConversationTurn is one message in a session history.
type ConversationTurn struct {
	Role    Role     `json:"role"`
	Message string   `json:"message"`
	Sources []Source `json:"sources,omitempty"`
}

// Session holds the conversation history for one caller.
//
// A session is owned by exactly one caller context; the pipeline itself
// is stateless and never touches sessions, so no locking is needed
// here.
type Session struct {
	id    string
	turns []ConversationTurn
}

// NewSession creates an empty session with a unique id.
func NewSession() *Session {
	return &Session{id: uuid.NewString()}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// AddUserTurn appends a user message.
func (s *Session) AddUserTurn(message string) {
	s.append(ConversationTurn{Role: RoleUser, Message: message})
}

// AddAssistantTurn appends an assistant response with its sources.
func (s *Session) AddAssistantTurn(resp *Response) {
	s.append(ConversationTurn{Role: RoleAssistant, Message: resp.Answer, Sources: resp.Sources})
}

func (s *Session) append(turn ConversationTurn) {
	s.turns = append(s.turns, turn)
	if len(s.turns) > MaxHistoryLength {
		s.turns = s.turns[len(s.turns)-MaxHistoryLength:]
	}
}

// History returns a copy of the retained turns, oldest first.
func (s *Session) History() []ConversationTurn {
	history := make([]ConversationTurn, len(s.turns))
	copy(history, s.turns)
	return history
}

// Clear resets the history, keeping the session id.
func (s *Session) Clear() {
	s.turns = nil
}
