package twitter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"rugguard/internal/models"
)

const defaultBaseURL = "https://api.twitter.com/2"

// ErrNotFound is returned when the API reports that the requested tweet or
// user does not exist.
var ErrNotFound = errors.New("not found")

// Client encapsulates the X API v2. Read endpoints use the app bearer
// token, the write endpoint (posting replies) uses the user access token.
type Client struct {
	bearerToken string
	accessToken string
	baseURL     string
	logger      *zap.Logger
	httpClient  *http.Client
}

// X API response envelopes
type apiError struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Type   string `json:"type"`
}

type tweetResponse struct {
	Data   *models.Tweet `json:"data"`
	Errors []apiError    `json:"errors"`
}

type tweetListResponse struct {
	Data   []models.Tweet `json:"data"`
	Errors []apiError     `json:"errors"`
}

type userResponse struct {
	Data   *models.User `json:"data"`
	Errors []apiError   `json:"errors"`
}

type userListResponse struct {
	Data   []models.User `json:"data"`
	Errors []apiError    `json:"errors"`
}

type createTweetRequest struct {
	Text  string `json:"text"`
	Reply struct {
		InReplyToTweetID string `json:"in_reply_to_tweet_id"`
	} `json:"reply"`
}

type createTweetResponse struct {
	Data *struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"data"`
	Errors []apiError `json:"errors"`
}

// NewClient creates and initializes a new X API client.
func NewClient(bearerToken, accessToken string, logger *zap.Logger) (*Client, error) {
	if bearerToken == "" {
		return nil, fmt.Errorf("X bearer token is required")
	}
	if accessToken == "" {
		return nil, fmt.Errorf("X access token is required")
	}

	return &Client{
		bearerToken: bearerToken,
		accessToken: accessToken,
		baseURL:     defaultBaseURL,
		logger:      logger,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// makeRequest performs one API call and returns the raw response body.
func (c *Client) makeRequest(ctx context.Context, method, path string, params url.Values, body io.Reader, token string) ([]byte, error) {
	apiURL := c.baseURL + path
	if len(params) > 0 {
		apiURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("X API returned status %d: %s", resp.StatusCode, respBody)
	}

	return respBody, nil
}

// SearchRecentTweets searches recent tweets matching the query. The search
// endpoint rejects max_results below 10, so smaller bounds are raised.
func (c *Client) SearchRecentTweets(ctx context.Context, query string, maxResults int) ([]models.Tweet, error) {
	if maxResults < 10 {
		maxResults = 10
	}
	if maxResults > 100 {
		maxResults = 100
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("max_results", strconv.Itoa(maxResults))
	params.Set("tweet.fields", "author_id,created_at,public_metrics,in_reply_to_user_id,referenced_tweets")

	respBody, err := c.makeRequest(ctx, http.MethodGet, "/tweets/search/recent", params, nil, c.bearerToken)
	if err != nil {
		return nil, fmt.Errorf("failed to search tweets: %w", err)
	}

	var result tweetListResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	return result.Data, nil
}

// GetTweetByID fetches a single tweet.
func (c *Client) GetTweetByID(ctx context.Context, tweetID string) (*models.Tweet, error) {
	params := url.Values{}
	params.Set("tweet.fields", "author_id,created_at,public_metrics,in_reply_to_user_id,referenced_tweets")

	respBody, err := c.makeRequest(ctx, http.MethodGet, "/tweets/"+tweetID, params, nil, c.bearerToken)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tweet %s: %w", tweetID, err)
	}

	var result tweetResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to parse tweet response: %w", err)
	}
	if result.Data == nil {
		return nil, ErrNotFound
	}

	return result.Data, nil
}

// GetUserByID fetches an account snapshot by user ID.
func (c *Client) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	return c.getUser(ctx, "/users/"+userID)
}

// GetUserByUsername fetches an account snapshot by handle.
func (c *Client) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return c.getUser(ctx, "/users/by/username/"+username)
}

func (c *Client) getUser(ctx context.Context, path string) (*models.User, error) {
	params := url.Values{}
	params.Set("user.fields", "username,name,description,created_at,public_metrics,verified,verified_type")

	respBody, err := c.makeRequest(ctx, http.MethodGet, path, params, nil, c.bearerToken)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	var result userResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to parse user response: %w", err)
	}
	if result.Data == nil {
		return nil, ErrNotFound
	}

	return result.Data, nil
}

// GetUserTweets fetches the account's recent original tweets (retweets and
// replies excluded) for activity signals.
func (c *Client) GetUserTweets(ctx context.Context, userID string, maxResults int) ([]models.Tweet, error) {
	if maxResults < 5 {
		maxResults = 5
	}
	if maxResults > 100 {
		maxResults = 100
	}

	params := url.Values{}
	params.Set("max_results", strconv.Itoa(maxResults))
	params.Set("tweet.fields", "created_at,public_metrics")
	params.Set("exclude", "retweets,replies")

	respBody, err := c.makeRequest(ctx, http.MethodGet, "/users/"+userID+"/tweets", params, nil, c.bearerToken)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tweets for user %s: %w", userID, err)
	}

	var result tweetListResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to parse timeline response: %w", err)
	}

	return result.Data, nil
}

// GetUserFollowing fetches a sample of handles the account follows. The
// sample is not guaranteed complete; one page is fetched.
func (c *Client) GetUserFollowing(ctx context.Context, userID string, maxResults int) ([]string, error) {
	if maxResults < 1 {
		maxResults = 1
	}
	if maxResults > 1000 {
		maxResults = 1000
	}

	params := url.Values{}
	params.Set("max_results", strconv.Itoa(maxResults))
	params.Set("user.fields", "username")

	respBody, err := c.makeRequest(ctx, http.MethodGet, "/users/"+userID+"/following", params, nil, c.bearerToken)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch following for user %s: %w", userID, err)
	}

	var result userListResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to parse following response: %w", err)
	}

	usernames := make([]string, 0, len(result.Data))
	for _, user := range result.Data {
		usernames = append(usernames, user.Username)
	}
	return usernames, nil
}

// ReplyToTweet posts a reply to the given tweet. No retries: a failed
// dispatch is reported to the caller and dropped.
func (c *Client) ReplyToTweet(ctx context.Context, tweetID, text string) error {
	reqBody := createTweetRequest{Text: text}
	reqBody.Reply.InReplyToTweetID = tweetID

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to encode reply: %w", err)
	}

	respBody, err := c.makeRequest(ctx, http.MethodPost, "/tweets", nil, bytes.NewReader(payload), c.accessToken)
	if err != nil {
		return fmt.Errorf("failed to post reply to tweet %s: %w", tweetID, err)
	}

	var result createTweetResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return fmt.Errorf("failed to parse reply response: %w", err)
	}
	if len(result.Errors) > 0 {
		return fmt.Errorf("X API error posting reply: %s", result.Errors[0].Detail)
	}

	c.logger.Info("Posted reply", zap.String("tweet_id", tweetID))
	return nil
}
