package analysis

import (
	"strings"
	"time"

	"rugguard/internal/models"
)

// suspiciousBioKeywords flag a bio when any of them appears in its
// lower-cased text.
var suspiciousBioKeywords = []string{
	"guaranteed",
	"profit",
	"investment",
	"dm me",
	"telegram",
	"whatsapp",
}

// AccountAgeDays returns the whole number of days between the account's
// creation and now. A negative difference cannot happen with real
// timestamps but is clamped to zero rather than propagated.
func AccountAgeDays(createdAt, now time.Time) int {
	days := int(now.Sub(createdAt).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// FollowerRatio returns followers/following. An account that follows no one
// gets its follower count as the ratio instead of a division by zero.
func FollowerRatio(metrics models.UserMetrics) float64 {
	if metrics.FollowingCount == 0 {
		return float64(metrics.FollowersCount)
	}
	return float64(metrics.FollowersCount) / float64(metrics.FollowingCount)
}

// EngagementRate returns the average engagement per tweet relative to the
// follower count, as a percentage. Zero when there is nothing to average.
func EngagementRate(tweets []models.Tweet, followerCount int) float64 {
	if len(tweets) == 0 || followerCount == 0 {
		return 0
	}

	total := 0
	for _, tweet := range tweets {
		m := tweet.PublicMetrics
		total += m.LikeCount + m.RetweetCount + m.ReplyCount
	}

	return float64(total) / float64(len(tweets)) / float64(followerCount) * 100
}

// FindTrustedFollowers returns every trusted handle present in the
// following list. Matching is case-insensitive; the result preserves the
// trusted set's ordering and contains no duplicates.
func FindTrustedFollowers(following []string, trusted []string) []string {
	matched := make([]string, 0)
	for _, trustedHandle := range trusted {
		for _, followed := range following {
			if strings.EqualFold(followed, trustedHandle) {
				matched = append(matched, trustedHandle)
				break
			}
		}
	}
	return matched
}

// IdentifyRedFlags evaluates every red-flag heuristic against the account.
// All flags that apply fire, in a fixed order, so the result is
// deterministic for identical inputs.
func IdentifyRedFlags(user *models.User, tweets []models.Tweet, followerRatio float64, accountAgeDays int) []string {
	flags := make([]string, 0)

	if accountAgeDays < 30 {
		flags = append(flags, "Very new account (less than 30 days)")
	}

	if followerRatio > 100 && user.PublicMetrics.FollowersCount > 1000 {
		flags = append(flags, "Suspicious follower/following ratio")
	}

	if followerRatio < 0.1 && user.PublicMetrics.FollowersCount < 100 {
		flags = append(flags, "Low follower engagement")
	}

	if user.Description != "" {
		bioLower := strings.ToLower(user.Description)
		for _, keyword := range suspiciousBioKeywords {
			if strings.Contains(bioLower, keyword) {
				flags = append(flags, "Suspicious keywords in bio")
				break
			}
		}
	}

	if len(tweets) >= 2 {
		if averageMinutesBetweenTweets(tweets) < 1 {
			flags = append(flags, "Suspicious tweet frequency (potential bot)")
		}
	}

	if user.Description == "" || len(user.Description) < 10 {
		flags = append(flags, "Incomplete profile (no/minimal bio)")
	}

	return flags
}

// averageMinutesBetweenTweets averages the absolute time gap between
// consecutive tweets over the N-1 gaps.
func averageMinutesBetweenTweets(tweets []models.Tweet) float64 {
	if len(tweets) < 2 {
		return 0
	}

	var totalMinutes float64
	for i := 1; i < len(tweets); i++ {
		gap := tweets[i-1].CreatedAt.Sub(tweets[i].CreatedAt)
		if gap < 0 {
			gap = -gap
		}
		totalMinutes += gap.Minutes()
	}

	return totalMinutes / float64(len(tweets)-1)
}

// ExtractSignals derives the full signal set for an account from its
// snapshot, recent tweets and the trusted handles it follows.
func ExtractSignals(user *models.User, tweets []models.Tweet, trustedFollowers []string, now time.Time) models.Signals {
	accountAgeDays := AccountAgeDays(user.CreatedAt, now)
	followerRatio := FollowerRatio(user.PublicMetrics)

	return models.Signals{
		AccountAgeDays:     accountAgeDays,
		FollowerRatio:      followerRatio,
		EngagementRate:     EngagementRate(tweets, user.PublicMetrics.FollowersCount),
		TrustedFollowCount: len(trustedFollowers),
		RedFlags:           IdentifyRedFlags(user, tweets, followerRatio, accountAgeDays),
		IsVerified:         user.Verified,
		TweetCount:         user.PublicMetrics.TweetCount,
	}
}
