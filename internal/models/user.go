package models

import "time"

// UserMetrics holds the public counters of an account.
type UserMetrics struct {
	FollowersCount int `json:"followers_count"`
	FollowingCount int `json:"following_count"`
	TweetCount     int `json:"tweet_count"`
	ListedCount    int `json:"listed_count"`
}

// User is an immutable snapshot of an X account, fetched once per analysis.
type User struct {
	ID            string      `json:"id"`
	Username      string      `json:"username"`
	Name          string      `json:"name"`
	Description   string      `json:"description,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	Verified      bool        `json:"verified"`
	VerifiedType  string      `json:"verified_type,omitempty"`
	PublicMetrics UserMetrics `json:"public_metrics"`
}
