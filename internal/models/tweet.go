package models

import "time"

// TweetMetrics holds the public engagement counters of a tweet.
type TweetMetrics struct {
	RetweetCount int `json:"retweet_count"`
	LikeCount    int `json:"like_count"`
	ReplyCount   int `json:"reply_count"`
	QuoteCount   int `json:"quote_count"`
}

// ReferencedTweet points at a tweet this tweet relates to
// (type is "replied_to", "quoted" or "retweeted").
type ReferencedTweet struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// Tweet represents a tweet as returned by the X API v2.
type Tweet struct {
	ID               string            `json:"id"`
	Text             string            `json:"text"`
	AuthorID         string            `json:"author_id"`
	CreatedAt        time.Time         `json:"created_at"`
	InReplyToUserID  string            `json:"in_reply_to_user_id,omitempty"`
	ReferencedTweets []ReferencedTweet `json:"referenced_tweets,omitempty"`
	PublicMetrics    TweetMetrics      `json:"public_metrics"`
}

// RepliedToTweetID returns the ID of the tweet this tweet replies to,
// or an empty string if it is not a reply.
func (t *Tweet) RepliedToTweetID() string {
	for _, ref := range t.ReferencedTweets {
		if ref.Type == "replied_to" {
			return ref.ID
		}
	}
	return ""
}
