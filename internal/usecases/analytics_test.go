package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeRange(t *testing.T) {
	assert.Equal(t, 24*time.Hour, parseTimeRange("24h"))
	assert.Equal(t, 7*24*time.Hour, parseTimeRange("7d"))
	assert.Equal(t, 30*24*time.Hour, parseTimeRange("30d"))
	assert.Equal(t, 90*24*time.Hour, parseTimeRange("90d"))

	// Unknown and empty ranges fall back to the 7 day default
	assert.Equal(t, 7*24*time.Hour, parseTimeRange(""))
	assert.Equal(t, 7*24*time.Hour, parseTimeRange("1y"))
}

func TestGetAnalyticsAggregates(t *testing.T) {
	f := newFixture()
	f.analytics.sessions = 12
	f.analytics.messages = 87
	f.analytics.firstReply = 3.5
	f.analytics.duration = 240
	f.analytics.matches = map[string]int{"pricing": 4, "hours": 1}

	result := f.svc.GetAnalytics(context.Background(), "u1", "30d")
	require.NotNil(t, result)
	assert.Equal(t, 12, result.TotalChats)
	assert.Equal(t, 87, result.TotalMessages)
	assert.Equal(t, 3.5, result.AverageResponseTime)
	assert.Equal(t, 240.0, result.ChatDuration)
	assert.Equal(t, 4, result.KeywordMatches["pricing"])
}

func TestGetAnalyticsSumsKeywordCasings(t *testing.T) {
	f := newFixture()
	// Two casings of one phrase must sum rather than shadow each other
	f.analytics.matches = map[string]int{"Price": 2, "price": 3}

	result := f.svc.GetAnalytics(context.Background(), "u1", "7d")
	require.NotNil(t, result)
	assert.Equal(t, 5, result.KeywordMatches["price"])
	assert.Len(t, result.KeywordMatches, 1)
}

func TestGetAnalyticsFailureReturnsZeroedStructure(t *testing.T) {
	f := newFixture()
	f.analytics.sessions = 12
	f.analytics.failMessages = errStore

	result := f.svc.GetAnalytics(context.Background(), "u1", "7d")
	require.NotNil(t, result)
	assert.Zero(t, result.TotalChats)
	assert.Zero(t, result.TotalMessages)
	require.NotNil(t, result.KeywordMatches)
	assert.Empty(t, result.KeywordMatches)
}

func TestGetAnalyticsNilMatchesBecomesEmptyMap(t *testing.T) {
	f := newFixture()
	f.analytics.matches = nil

	result := f.svc.GetAnalytics(context.Background(), "u1", "7d")
	require.NotNil(t, result.KeywordMatches)
}
