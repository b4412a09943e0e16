package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AnalyticsRepository struct {
	db *pgxpool.Pool
}

func NewAnalyticsRepository(db *pgxpool.Pool) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// CountSessions counts an owner's sessions created since the cutoff.
func (r *AnalyticsRepository) CountSessions(ctx context.Context, userID string, since time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM chat_sessions WHERE user_id = $1 AND created_at >= $2",
		userID, since).Scan(&count)
	if err != nil {
		return 0, mapPgError(err)
	}
	return count, nil
}

// CountMessages counts messages across all of an owner's sessions since the cutoff.
func (r *AnalyticsRepository) CountMessages(ctx context.Context, userID string, since time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM chat_messages m
		JOIN chat_sessions s ON s.id = m.session_id
		WHERE s.user_id = $1 AND m.created_at >= $2`,
		userID, since).Scan(&count)
	if err != nil {
		return 0, mapPgError(err)
	}
	return count, nil
}

// AverageSessionSeconds averages updated_at-created_at over closed sessions in
// the window. 0 when no closed sessions exist.
func (r *AnalyticsRepository) AverageSessionSeconds(ctx context.Context, userID string, since time.Time) (float64, error) {
	var avg float64
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(AVG(EXTRACT(EPOCH FROM (updated_at - created_at))), 0)
		FROM chat_sessions
		WHERE user_id = $1 AND created_at >= $2 AND status = 'closed'`,
		userID, since).Scan(&avg)
	if err != nil {
		return 0, mapPgError(err)
	}
	return avg, nil
}

// AverageFirstReplySeconds averages the gap between a session's first visitor
// message and the first non-visitor message that follows it.
func (r *AnalyticsRepository) AverageFirstReplySeconds(ctx context.Context, userID string, since time.Time) (float64, error) {
	var avg float64
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(AVG(EXTRACT(EPOCH FROM (reply.first_reply - ask.first_ask))), 0)
		FROM (
			SELECT session_id, MIN(created_at) AS first_ask
			FROM chat_messages WHERE sender = 'visitor' GROUP BY session_id
		) ask
		JOIN (
			SELECT session_id, MIN(created_at) AS first_reply
			FROM chat_messages WHERE sender <> 'visitor' GROUP BY session_id
		) reply ON reply.session_id = ask.session_id AND reply.first_reply >= ask.first_ask
		JOIN chat_sessions s ON s.id = ask.session_id
		WHERE s.user_id = $1 AND s.created_at >= $2`,
		userID, since).Scan(&avg)
	if err != nil {
		return 0, mapPgError(err)
	}
	return avg, nil
}

// KeywordMatchCounts counts, per configured keyword, visitor messages in the
// window containing that keyword (case-insensitive substring, the same rule
// the auto-responder applies). Keywords are deduplicated and lowercased
// before counting so a phrase shared by several responses, or configured in
// mixed case, counts each message once.
func (r *AnalyticsRepository) KeywordMatchCounts(ctx context.Context, userID string, since time.Time) (map[string]int, error) {
	rows, err := r.db.Query(ctx, `
		SELECT kws.kw, COUNT(m.id)
		FROM (
			SELECT DISTINCT LOWER(kw) AS kw
			FROM keyword_responses kr
			CROSS JOIN LATERAL UNNEST(kr.keywords) AS kw
			WHERE kr.user_id = $1 AND kr.is_active = TRUE
		) kws
		LEFT JOIN chat_sessions s ON s.user_id = $1
		LEFT JOIN chat_messages m ON m.session_id = s.id
			AND m.sender = 'visitor'
			AND m.created_at >= $2
			AND POSITION(kws.kw IN LOWER(m.content)) > 0
		GROUP BY kws.kw`,
		userID, since)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	matches := map[string]int{}
	for rows.Next() {
		var kw string
		var count int
		if err := rows.Scan(&kw, &count); err != nil {
			return nil, err
		}
		matches[kw] += count
	}
	return matches, rows.Err()
}
