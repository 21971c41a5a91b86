package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"rugguard/internal/models"
)

func summaryUser(followers int) *models.User {
	return &models.User{
		Username: "target",
		PublicMetrics: models.UserMetrics{
			FollowersCount: followers,
		},
	}
}

func TestBuildSummaryStructure(t *testing.T) {
	user := summaryUser(12345)

	summary := BuildSummary(user, 75, models.VerdictTrusted, []string{"solana", "rajgokal"}, nil, 400)

	assert.True(t, strings.HasPrefix(summary, "🔍 Analysis for @target\n"))
	assert.Contains(t, summary, "📊 Trust Score: 75/100")
	assert.Contains(t, summary, "🎯 Verdict: ✅ TRUSTED")
	assert.Contains(t, summary, "✅ Backed by 2 trusted Solana accounts")
	assert.Contains(t, summary, "• solana, rajgokal")
	assert.Contains(t, summary, "📅 established account (13 months)")
	assert.Contains(t, summary, "👥 12,345 followers")
	assert.True(t, strings.HasSuffix(summary, "🤖 Automated analysis by @projectrugguard"))
}

func TestBuildSummaryOmitsInlineListOverThree(t *testing.T) {
	user := summaryUser(500)
	trusted := []string{"solana", "aeyakovenko", "rajgokal", "orca_so"}

	summary := BuildSummary(user, 80, models.VerdictTrusted, trusted, nil, 100)

	// The count line stays, the inline handle list is dropped.
	assert.Contains(t, summary, "✅ Backed by 4 trusted Solana accounts")
	assert.NotContains(t, summary, "• solana")
}

func TestBuildSummaryNoTrustedBlockWhenEmpty(t *testing.T) {
	summary := BuildSummary(summaryUser(10), 40, models.VerdictCaution, nil, nil, 100)

	assert.NotContains(t, summary, "Backed by")
	assert.Contains(t, summary, "📅 relatively new account (3 months)")
}

func TestBuildSummaryRedFlagBlock(t *testing.T) {
	flags := []string{
		"Very new account (less than 30 days)",
		"Suspicious keywords in bio",
	}

	summary := BuildSummary(summaryUser(42), 10, models.VerdictSuspicious, nil, flags, 5)

	assert.Contains(t, summary, "🎯 Verdict: 🚨 SUSPICIOUS")
	assert.Contains(t, summary, "⚠️ Red flags:")
	assert.Contains(t, summary, "   • Very new account (less than 30 days)\n")
	assert.Contains(t, summary, "   • Suspicious keywords in bio\n")
}

func TestBuildSummaryCautionMarker(t *testing.T) {
	summary := BuildSummary(summaryUser(100), 55, models.VerdictCaution, nil, nil, 200)
	assert.Contains(t, summary, "🎯 Verdict: ⚠️ CAUTION")
}

func TestFormatCount(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{12345, "12,345"},
		{1234567, "1,234,567"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatCount(tt.in))
	}
}
