package usecases

import (
	"context"
	"errors"
	"sync"
	"widgetdesk/internal/entities"
	"widgetdesk/internal/interfaces"
	"widgetdesk/internal/repository"

	"github.com/rs/zerolog"
)

// WidgetService is the data-access boundary the HTTP layer talks to. Every
// method performs a single best-effort round trip: store failures are logged
// and collapsed into a safe fallback (nil, empty slice, false or a zeroed
// aggregate), never returned as errors. Callers therefore cannot distinguish
// "nothing exists" from "store failure"; the typed errors stay below this
// boundary in the repository tier.
type WidgetService struct {
	settings  interfaces.SettingsStore
	keywords  interfaces.KeywordStore
	sessions  interfaces.SessionStore
	analytics interfaces.AnalyticsStore
	users     interfaces.UserStore
	notifier  interfaces.Notifier
	log       zerolog.Logger
}

func NewWidgetService(
	settings interfaces.SettingsStore,
	keywords interfaces.KeywordStore,
	sessions interfaces.SessionStore,
	analytics interfaces.AnalyticsStore,
	users interfaces.UserStore,
	notifier interfaces.Notifier,
	log zerolog.Logger,
) *WidgetService {
	return &WidgetService{
		settings:  settings,
		keywords:  keywords,
		sessions:  sessions,
		analytics: analytics,
		users:     users,
		notifier:  notifier,
		log:       log,
	}
}

// GetWidgetSettings returns the owner's settings row. When the store reports
// no row (as opposed to failing), a default record is provisioned for the
// owner and returned, so every owner ends up with exactly one row.
func (s *WidgetService) GetWidgetSettings(ctx context.Context, userID string) *entities.WidgetSettings {
	settings, err := s.settings.GetByOwner(ctx, userID)
	if err == nil {
		return settings
	}
	if !errors.Is(err, repository.ErrNotFound) {
		s.log.Error().Err(err).Str("user_id", userID).Msg("failed to fetch widget settings")
		return nil
	}

	created, err := s.settings.Insert(ctx, entities.DefaultWidgetSettings(userID))
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("failed to provision default widget settings")
		return nil
	}
	return created
}

// SaveWidgetSettings upserts by presence of id: records without an id are
// inserted, records with one patch that row. Fields absent from the patch
// keep their stored values, and the row must belong to userID.
func (s *WidgetService) SaveWidgetSettings(ctx context.Context, userID string, upd *entities.WidgetSettingsUpdate) *entities.WidgetSettings {
	if upd == nil {
		return nil
	}
	if upd.OpenDelay != nil && *upd.OpenDelay < 0 {
		*upd.OpenDelay = 0
	}

	var (
		saved *entities.WidgetSettings
		err   error
	)
	if upd.ID == "" {
		record := &entities.WidgetSettings{UserID: userID}
		upd.Apply(record)
		saved, err = s.settings.Insert(ctx, record)
	} else {
		saved, err = s.settings.Update(ctx, userID, upd)
	}
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("failed to save widget settings")
		return nil
	}
	return saved
}

// ListKeywordResponses returns all of an owner's responses, highest priority
// first; ties keep storage order.
func (s *WidgetService) ListKeywordResponses(ctx context.Context, userID string) []entities.KeywordResponse {
	responses, err := s.keywords.ListByOwner(ctx, userID, false)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("failed to list keyword responses")
		return []entities.KeywordResponse{}
	}
	return responses
}

func (s *WidgetService) CreateKeywordResponse(ctx context.Context, k *entities.KeywordResponse) *entities.KeywordResponse {
	created, err := s.keywords.Insert(ctx, k)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", k.UserID).Msg("failed to create keyword response")
		return nil
	}
	return created
}

// UpdateKeywordResponse patches the row identified by upd.ID. Fields absent
// from the patch keep their stored values; rows owned by another account are
// treated as missing.
func (s *WidgetService) UpdateKeywordResponse(ctx context.Context, userID string, upd *entities.KeywordResponseUpdate) *entities.KeywordResponse {
	if upd.ID == "" {
		s.log.Error().Str("user_id", userID).Msg("keyword response update requires an id")
		return nil
	}
	updated, err := s.keywords.Update(ctx, userID, upd)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Error().Err(err).Str("id", upd.ID).Msg("failed to update keyword response")
		}
		return nil
	}
	return updated
}

// DeleteKeywordResponse reports true only when a row belonging to userID was
// actually removed.
func (s *WidgetService) DeleteKeywordResponse(ctx context.Context, userID, id string) bool {
	deleted, err := s.keywords.Delete(ctx, userID, id)
	if err != nil {
		s.log.Error().Err(err).Str("id", id).Msg("failed to delete keyword response")
		return false
	}
	return deleted
}

// ListChatSessions returns all of an owner's sessions, newest first.
func (s *WidgetService) ListChatSessions(ctx context.Context, userID string) []entities.ChatSession {
	sessions, err := s.sessions.ListByOwner(ctx, userID)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("failed to list chat sessions")
		return []entities.ChatSession{}
	}
	return sessions
}

// ListActiveChatSessions returns only sessions a visitor is still in
// (active or agent_assigned), newest first.
func (s *WidgetService) ListActiveChatSessions(ctx context.Context, userID string) []entities.ChatSession {
	sessions, err := s.sessions.ListByOwnerAndStatus(ctx, userID, entities.ActiveStatuses)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("failed to list active chat sessions")
		return []entities.ChatSession{}
	}
	return sessions
}

// CreateChatSession inserts the session and, when the owner has Telegram
// notifications configured, pings them best-effort.
func (s *WidgetService) CreateChatSession(ctx context.Context, session *entities.ChatSession) *entities.ChatSession {
	created, err := s.sessions.Insert(ctx, session)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", session.UserID).Msg("failed to create chat session")
		return nil
	}

	if s.notifier != nil {
		if owner, err := s.users.GetByID(ctx, created.UserID); err == nil && owner.TelegramChatID != 0 {
			s.notifier.NotifyNewSession(owner.TelegramChatID, created.VisitorName)
		}
	}
	return created
}

// GetChatSession returns a single session, nil when missing or on failure.
func (s *WidgetService) GetChatSession(ctx context.Context, id string) *entities.ChatSession {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Error().Err(err).Str("id", id).Msg("failed to fetch chat session")
		}
		return nil
	}
	return session
}

// UpdateChatSession patches the row identified by upd.ID. Fields absent from
// the patch keep their stored values; rows owned by another account are
// treated as missing.
func (s *WidgetService) UpdateChatSession(ctx context.Context, userID string, upd *entities.ChatSessionUpdate) *entities.ChatSession {
	if upd.ID == "" {
		s.log.Error().Str("user_id", userID).Msg("chat session update requires an id")
		return nil
	}
	updated, err := s.sessions.Update(ctx, userID, upd)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Error().Err(err).Str("id", upd.ID).Msg("failed to update chat session")
		}
		return nil
	}
	return updated
}

// ListMessagesForOwner returns a session's messages oldest first, but only
// when the session belongs to ownerID. Sessions owned by another account are
// treated as missing.
func (s *WidgetService) ListMessagesForOwner(ctx context.Context, ownerID, sessionID string) []entities.ChatMessage {
	session := s.GetChatSession(ctx, sessionID)
	if session == nil || session.UserID != ownerID {
		return []entities.ChatMessage{}
	}
	return s.ListMessages(ctx, sessionID)
}

// ListMessages returns a session's messages oldest first.
func (s *WidgetService) ListMessages(ctx context.Context, sessionID string) []entities.ChatMessage {
	messages, err := s.sessions.ListMessages(ctx, sessionID)
	if err != nil {
		s.log.Error().Err(err).Str("session_id", sessionID).Msg("failed to list messages")
		return []entities.ChatMessage{}
	}
	return messages
}

func (s *WidgetService) CreateMessage(ctx context.Context, m *entities.ChatMessage) *entities.ChatMessage {
	created, err := s.sessions.InsertMessage(ctx, m)
	if err != nil {
		s.log.Error().Err(err).Str("session_id", m.SessionID).Msg("failed to create message")
		return nil
	}
	return created
}

// GetPublicWidgetData assembles the unauthenticated widget payload: the owner
// id is validated against the users table first, then settings and active
// keyword responses are fetched concurrently. Settings are only exposed while
// active; the fallback shape is {nil, []}.
func (s *WidgetService) GetPublicWidgetData(ctx context.Context, userID string) *entities.PublicWidgetData {
	data := &entities.PublicWidgetData{KeywordResponses: []entities.KeywordResponse{}}

	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("failed to validate widget owner")
		return data
	}
	if !exists {
		return data
	}

	var (
		wg        sync.WaitGroup
		settings  *entities.WidgetSettings
		responses []entities.KeywordResponse
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		var err error
		settings, err = s.settings.GetByOwner(ctx, userID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			s.log.Error().Err(err).Str("user_id", userID).Msg("failed to fetch public widget settings")
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		responses, err = s.keywords.ListByOwner(ctx, userID, true)
		if err != nil {
			s.log.Error().Err(err).Str("user_id", userID).Msg("failed to fetch public keyword responses")
		}
	}()
	wg.Wait()

	if settings != nil && settings.IsActive {
		data.Settings = settings
	}
	if responses != nil {
		data.KeywordResponses = responses
	}
	return data
}
