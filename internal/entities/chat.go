package entities

import "time"

type SessionStatus string

const (
	SessionActive        SessionStatus = "active"
	SessionAgentAssigned SessionStatus = "agent_assigned"
	SessionClosed        SessionStatus = "closed"
)

// ActiveStatuses are the states shown in the owner's live inbox.
var ActiveStatuses = []SessionStatus{SessionActive, SessionAgentAssigned}

type SenderRole string

const (
	SenderVisitor SenderRole = "visitor"
	SenderBot     SenderRole = "bot"
	SenderAgent   SenderRole = "agent"
)

type ChatSession struct {
	ID          string        `json:"id"`
	UserID      string        `json:"user_id"` // Owner account
	VisitorID   string        `json:"visitor_id"`
	VisitorName string        `json:"visitor_name"`
	Status      SessionStatus `json:"status"` // Transitions are caller-driven
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// ChatSessionUpdate is a partial session record; nil fields are left
// untouched by an update.
type ChatSessionUpdate struct {
	ID          string         `json:"id"`
	VisitorName *string        `json:"visitor_name"`
	Status      *SessionStatus `json:"status"`
}

// Apply overlays the supplied fields onto s.
func (u *ChatSessionUpdate) Apply(s *ChatSession) {
	if u.VisitorName != nil {
		s.VisitorName = *u.VisitorName
	}
	if u.Status != nil {
		s.Status = *u.Status
	}
}

// ChatMessage rows are immutable once created; no update or delete path exists.
type ChatMessage struct {
	ID        string     `json:"id"`
	SessionID string     `json:"session_id"`
	Sender    SenderRole `json:"sender"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
}
