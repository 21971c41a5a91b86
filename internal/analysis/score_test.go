package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rugguard/internal/models"
)

func TestCalculateTrustScoreEstablishedAccount(t *testing.T) {
	// 50 base +15 age +5 ratio +5 activity = 75.
	signals := models.Signals{
		AccountAgeDays: 400,
		FollowerRatio:  2,
		TweetCount:     150,
	}
	assert.Equal(t, 75, CalculateTrustScore(signals))
}

func TestCalculateTrustScoreNewFlaggedAccount(t *testing.T) {
	// 50 base -15 age -32 flags = 3; ratio 20 sits in the no-adjustment gap
	// and tweet count 50 gets no adjustment either.
	signals := models.Signals{
		AccountAgeDays: 10,
		FollowerRatio:  20,
		TweetCount:     50,
		RedFlags:       []string{"a", "b", "c", "d"},
	}
	assert.Equal(t, 3, CalculateTrustScore(signals))
}

func TestCalculateTrustScoreClampsLow(t *testing.T) {
	signals := models.Signals{
		AccountAgeDays: 1,
		FollowerRatio:  200,
		TweetCount:     2,
		RedFlags:       []string{"a", "b", "c", "d", "e", "f"},
	}
	assert.Equal(t, 0, CalculateTrustScore(signals))
}

func TestCalculateTrustScoreClampsHigh(t *testing.T) {
	// 50 +15 +30 +10 +5 +5 = 115, clamped to 100.
	signals := models.Signals{
		AccountAgeDays:     1000,
		FollowerRatio:      2,
		TrustedFollowCount: 5,
		IsVerified:         true,
		TweetCount:         500,
	}
	assert.Equal(t, 100, CalculateTrustScore(signals))
}

func TestCalculateTrustScoreAgeBuckets(t *testing.T) {
	base := models.Signals{FollowerRatio: 20, TweetCount: 50}

	tests := []struct {
		name string
		age  int
		want int
	}{
		{"over a year", 366, 65},
		{"exactly a year", 365, 60},
		{"over six months", 181, 60},
		{"over three months", 91, 55},
		{"ninety days, no bonus", 90, 50},
		{"between thresholds", 45, 50},
		{"under thirty days", 29, 35},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signals := base
			signals.AccountAgeDays = tt.age
			assert.Equal(t, tt.want, CalculateTrustScore(signals))
		})
	}
}

func TestCalculateTrustScoreTrustedFollowsCapped(t *testing.T) {
	base := models.Signals{AccountAgeDays: 45, FollowerRatio: 20, TweetCount: 50}

	two := base
	two.TrustedFollowCount = 2
	assert.Equal(t, 70, CalculateTrustScore(two))

	three := base
	three.TrustedFollowCount = 3
	assert.Equal(t, 80, CalculateTrustScore(three))

	// Contribution is capped at 30 regardless of count.
	ten := base
	ten.TrustedFollowCount = 10
	assert.Equal(t, 80, CalculateTrustScore(ten))
}

func TestCalculateTrustScoreFollowerRatioGap(t *testing.T) {
	base := models.Signals{AccountAgeDays: 45, TweetCount: 50}

	healthy := base
	healthy.FollowerRatio = 5
	assert.Equal(t, 55, CalculateTrustScore(healthy))

	// Ratios between 10 and 50 deliberately get no adjustment.
	gap := base
	gap.FollowerRatio = 25
	assert.Equal(t, 50, CalculateTrustScore(gap))

	inflated := base
	inflated.FollowerRatio = 75
	assert.Equal(t, 40, CalculateTrustScore(inflated))
}

func TestCalculateTrustScoreDeterministic(t *testing.T) {
	signals := models.Signals{
		AccountAgeDays:     200,
		FollowerRatio:      3,
		TrustedFollowCount: 1,
		IsVerified:         true,
		TweetCount:         120,
		RedFlags:           []string{"a"},
	}

	first := CalculateTrustScore(signals)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, CalculateTrustScore(signals))
	}
}

func TestCalculateTrustScoreAlwaysBounded(t *testing.T) {
	ages := []int{0, 29, 90, 180, 365, 5000}
	ratios := []float64{0, 0.05, 0.7, 25, 75, 10000}
	trusted := []int{0, 1, 3, 50}
	flags := []int{0, 2, 5, 12}
	tweetCounts := []int{0, 9, 50, 101}

	for _, age := range ages {
		for _, ratio := range ratios {
			for _, tr := range trusted {
				for _, fl := range flags {
					for _, tc := range tweetCounts {
						signals := models.Signals{
							AccountAgeDays:     age,
							FollowerRatio:      ratio,
							TrustedFollowCount: tr,
							RedFlags:           make([]string, fl),
							TweetCount:         tc,
							IsVerified:         tr%2 == 0,
						}
						score := CalculateTrustScore(signals)
						assert.GreaterOrEqual(t, score, 0)
						assert.LessOrEqual(t, score, 100)
					}
				}
			}
		}
	}
}
