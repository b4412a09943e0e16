package usecases

import (
	"context"
	"strings"
	"time"
	"widgetdesk/internal/entities"
)

// DefaultTimeRange is applied when callers pass an empty or unknown range.
const DefaultTimeRange = "7d"

// placeholderSatisfaction stands in until the widget captures visitor ratings;
// there is no stored data to derive a real score from yet.
const placeholderSatisfaction = 4.5

// parseTimeRange maps the caller-facing range tokens onto a lookback window.
func parseTimeRange(timeRange string) time.Duration {
	switch timeRange {
	case "24h":
		return 24 * time.Hour
	case "7d":
		return 7 * 24 * time.Hour
	case "30d":
		return 30 * 24 * time.Hour
	case "90d":
		return 90 * 24 * time.Hour
	default:
		return 7 * 24 * time.Hour
	}
}

// GetAnalytics aggregates an owner's chat activity over the requested window.
// Session, message and keyword-match counts are computed from stored rows;
// response time and duration come from session/message timestamps. Any store
// failure collapses the whole result to the zeroed structure.
func (s *WidgetService) GetAnalytics(ctx context.Context, userID, timeRange string) *entities.Analytics {
	since := time.Now().Add(-parseTimeRange(timeRange))

	totalChats, err := s.analytics.CountSessions(ctx, userID, since)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("failed to count sessions")
		return entities.EmptyAnalytics()
	}

	totalMessages, err := s.analytics.CountMessages(ctx, userID, since)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("failed to count messages")
		return entities.EmptyAnalytics()
	}

	avgResponse, err := s.analytics.AverageFirstReplySeconds(ctx, userID, since)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("failed to compute response time")
		return entities.EmptyAnalytics()
	}

	avgDuration, err := s.analytics.AverageSessionSeconds(ctx, userID, since)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("failed to compute chat duration")
		return entities.EmptyAnalytics()
	}

	matches, err := s.analytics.KeywordMatchCounts(ctx, userID, since)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("failed to count keyword matches")
		return entities.EmptyAnalytics()
	}
	// The store already lowercases keywords; re-normalize here so two casings
	// of the same phrase sum instead of one silently replacing the other.
	normalized := make(map[string]int, len(matches))
	for kw, n := range matches {
		normalized[strings.ToLower(kw)] += n
	}

	return &entities.Analytics{
		TotalChats:          totalChats,
		TotalMessages:       totalMessages,
		AverageResponseTime: avgResponse,
		ChatDuration:        avgDuration,
		VisitorSatisfaction: placeholderSatisfaction,
		KeywordMatches:      normalized,
	}
}
