package usecases

import (
	"testing"
	"widgetdesk/internal/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchKeywordResponseFirstMatchWins(t *testing.T) {
	responses := []entities.KeywordResponse{
		{ID: "1", Keywords: []string{"pricing", "price"}, Response: "See our pricing page", Priority: 10, IsActive: true},
		{ID: "2", Keywords: []string{"price"}, Response: "lower priority duplicate", Priority: 1, IsActive: true},
	}

	matched := MatchKeywordResponse("What is your PRICE?", responses)
	require.NotNil(t, matched)
	assert.Equal(t, "1", matched.ID)
}

func TestMatchKeywordResponseSkipsInactive(t *testing.T) {
	responses := []entities.KeywordResponse{
		{ID: "1", Keywords: []string{"hours"}, Response: "9-5", Priority: 10, IsActive: false},
		{ID: "2", Keywords: []string{"hours"}, Response: "We are open 9-5", Priority: 1, IsActive: true},
	}

	matched := MatchKeywordResponse("what are your hours", responses)
	require.NotNil(t, matched)
	assert.Equal(t, "2", matched.ID)
}

func TestMatchKeywordResponseNoMatch(t *testing.T) {
	responses := []entities.KeywordResponse{
		{ID: "1", Keywords: []string{"refund"}, Response: "refund policy", IsActive: true},
	}

	assert.Nil(t, MatchKeywordResponse("hello there", responses))
	assert.Nil(t, MatchKeywordResponse("anything", nil))
}

func TestMatchKeywordResponseIgnoresBlankKeywords(t *testing.T) {
	responses := []entities.KeywordResponse{
		{ID: "1", Keywords: []string{"", "  "}, Response: "never", IsActive: true},
		{ID: "2", Keywords: []string{"help"}, Response: "how can we help", IsActive: true},
	}

	matched := MatchKeywordResponse("I need help", responses)
	require.NotNil(t, matched)
	assert.Equal(t, "2", matched.ID)
}
