package interfaces

import (
	"context"
	"time"
	"widgetdesk/internal/entities"
)

// Store ports implemented by the pgx repositories and by in-memory fakes in
// tests. Usecases only ever see these.

type SettingsStore interface {
	GetByOwner(ctx context.Context, userID string) (*entities.WidgetSettings, error)
	Insert(ctx context.Context, s *entities.WidgetSettings) (*entities.WidgetSettings, error)
	Update(ctx context.Context, userID string, upd *entities.WidgetSettingsUpdate) (*entities.WidgetSettings, error)
}

type KeywordStore interface {
	ListByOwner(ctx context.Context, userID string, activeOnly bool) ([]entities.KeywordResponse, error)
	Insert(ctx context.Context, k *entities.KeywordResponse) (*entities.KeywordResponse, error)
	Update(ctx context.Context, userID string, upd *entities.KeywordResponseUpdate) (*entities.KeywordResponse, error)
	Delete(ctx context.Context, userID, id string) (bool, error)
}

type SessionStore interface {
	ListByOwner(ctx context.Context, userID string) ([]entities.ChatSession, error)
	ListByOwnerAndStatus(ctx context.Context, userID string, statuses []entities.SessionStatus) ([]entities.ChatSession, error)
	GetByID(ctx context.Context, id string) (*entities.ChatSession, error)
	Insert(ctx context.Context, s *entities.ChatSession) (*entities.ChatSession, error)
	Update(ctx context.Context, userID string, upd *entities.ChatSessionUpdate) (*entities.ChatSession, error)
	ListMessages(ctx context.Context, sessionID string) ([]entities.ChatMessage, error)
	InsertMessage(ctx context.Context, m *entities.ChatMessage) (*entities.ChatMessage, error)
}

type AnalyticsStore interface {
	CountSessions(ctx context.Context, userID string, since time.Time) (int, error)
	CountMessages(ctx context.Context, userID string, since time.Time) (int, error)
	AverageSessionSeconds(ctx context.Context, userID string, since time.Time) (float64, error)
	AverageFirstReplySeconds(ctx context.Context, userID string, since time.Time) (float64, error)
	KeywordMatchCounts(ctx context.Context, userID string, since time.Time) (map[string]int, error)
}

type UserStore interface {
	Create(ctx context.Context, u *entities.User) error
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	GetByID(ctx context.Context, id string) (*entities.User, error)
	Exists(ctx context.Context, id string) (bool, error)
}

// Notifier alerts an owner out-of-band about widget activity.
type Notifier interface {
	NotifyNewSession(chatID int64, visitorName string)
}
