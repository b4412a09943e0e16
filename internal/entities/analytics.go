package entities

// Analytics aggregates chat activity for an owner over a time window.
type Analytics struct {
	TotalChats          int            `json:"total_chats"`
	TotalMessages       int            `json:"total_messages"`
	AverageResponseTime float64        `json:"average_response_time"` // Seconds
	ChatDuration        float64        `json:"chat_duration"`         // Average, seconds
	VisitorSatisfaction float64        `json:"visitor_satisfaction"`
	KeywordMatches      map[string]int `json:"keyword_matches"`
}

// EmptyAnalytics is the zeroed fallback; KeywordMatches is always non-nil.
func EmptyAnalytics() *Analytics {
	return &Analytics{KeywordMatches: map[string]int{}}
}
