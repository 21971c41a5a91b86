package models

import "time"

// Verdict is the final categorical output of an analysis.
type Verdict string

const (
	VerdictTrusted    Verdict = "TRUSTED"
	VerdictCaution    Verdict = "CAUTION"
	VerdictSuspicious Verdict = "SUSPICIOUS"
)

// Signals are the primitive values derived from an account snapshot and its
// recent activity. One immutable instance is built per analysis.
type Signals struct {
	AccountAgeDays     int
	FollowerRatio      float64
	EngagementRate     float64
	TrustedFollowCount int
	RedFlags           []string
	IsVerified         bool
	TweetCount         int
}

// AnalysisResult is the complete outcome of analyzing one account.
type AnalysisResult struct {
	Username         string   `json:"username"`
	TrustScore       int      `json:"trust_score"`
	Verdict          Verdict  `json:"verdict"`
	AccountAgeDays   int      `json:"account_age_days"`
	FollowerRatio    float64  `json:"follower_ratio"`
	EngagementRate   float64  `json:"engagement_rate"`
	TrustedFollowers []string `json:"trusted_followers"`
	RedFlags         []string `json:"red_flags"`
	Summary          string   `json:"summary"`
}

// StoredAnalysis is an AnalysisResult persisted to the history store,
// together with its run metadata.
type StoredAnalysis struct {
	ID               int64     `json:"id"`
	RunID            string    `json:"run_id"`
	Username         string    `json:"username"`
	TrustScore       int       `json:"trust_score"`
	Verdict          Verdict   `json:"verdict"`
	AccountAgeDays   int       `json:"account_age_days"`
	FollowerRatio    float64   `json:"follower_ratio"`
	EngagementRate   float64   `json:"engagement_rate"`
	TrustedFollowers []string  `json:"trusted_followers"`
	RedFlags         []string  `json:"red_flags"`
	Summary          string    `json:"summary"`
	CreatedAt        time.Time `json:"created_at"`
}
