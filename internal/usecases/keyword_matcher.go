package usecases

import (
	"strings"
	"widgetdesk/internal/entities"
)

// MatchKeywordResponse scans responses in the order given (the list queries
// already sort by priority descending) and returns the first active one whose
// keyword occurs in the message, case-insensitively. First match wins; nil
// when nothing matches.
func MatchKeywordResponse(message string, responses []entities.KeywordResponse) *entities.KeywordResponse {
	normalized := strings.ToLower(message)
	for i := range responses {
		r := &responses[i]
		if !r.IsActive {
			continue
		}
		for _, kw := range r.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			if strings.Contains(normalized, kw) {
				return r
			}
		}
	}
	return nil
}
