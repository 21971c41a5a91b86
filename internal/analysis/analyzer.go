package analysis

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"rugguard/internal/models"
)

// Sample sizes requested from the platform per analysis.
const (
	tweetSampleSize  = 20
	followSampleSize = 200
)

// PlatformClient is the subset of the X client the analyzer needs. All
// calls return already-fetched snapshots; the analyzer itself performs no
// other I/O.
type PlatformClient interface {
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserTweets(ctx context.Context, userID string, maxResults int) ([]models.Tweet, error)
	GetUserFollowing(ctx context.Context, userID string, maxResults int) ([]string, error)
}

// Analyzer computes a trust analysis for one account at a time.
type Analyzer struct {
	client  PlatformClient
	trusted []string
	logger  *zap.Logger
}

// NewAnalyzer creates an analyzer backed by the given platform client and
// trusted reference set.
func NewAnalyzer(client PlatformClient, trusted []string, logger *zap.Logger) *Analyzer {
	return &Analyzer{
		client:  client,
		trusted: trusted,
		logger:  logger,
	}
}

// AnalyzeUser fetches the account by ID and runs the full analysis.
func (a *Analyzer) AnalyzeUser(ctx context.Context, userID string) (*models.AnalysisResult, error) {
	user, err := a.client.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user %s: %w", userID, err)
	}
	return a.analyze(ctx, user)
}

// AnalyzeUsername fetches the account by handle and runs the full analysis.
// Used by the on-demand API; the trigger pipeline resolves by ID.
func (a *Analyzer) AnalyzeUsername(ctx context.Context, username string) (*models.AnalysisResult, error) {
	user, err := a.client.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user @%s: %w", username, err)
	}
	return a.analyze(ctx, user)
}

func (a *Analyzer) analyze(ctx context.Context, user *models.User) (*models.AnalysisResult, error) {
	a.logger.Info("Analyzing user",
		zap.String("username", user.Username),
		zap.String("name", user.Name))

	// Activity and follow samples are best-effort: a failed fetch degrades
	// the signal set, it does not abort the analysis.
	tweets, err := a.client.GetUserTweets(ctx, user.ID, tweetSampleSize)
	if err != nil {
		a.logger.Warn("Failed to fetch recent tweets, continuing without activity signals",
			zap.String("user_id", user.ID), zap.Error(err))
		tweets = nil
	}

	following, err := a.client.GetUserFollowing(ctx, user.ID, followSampleSize)
	if err != nil {
		a.logger.Warn("Failed to fetch following list, continuing without trusted-follow signals",
			zap.String("user_id", user.ID), zap.Error(err))
		following = nil
	}

	trustedFollowers := FindTrustedFollowers(following, a.trusted)
	signals := ExtractSignals(user, tweets, trustedFollowers, time.Now())

	trustScore := CalculateTrustScore(signals)
	verdict := DetermineVerdict(trustScore, signals.TrustedFollowCount, len(signals.RedFlags))
	summary := BuildSummary(user, trustScore, verdict, trustedFollowers, signals.RedFlags, signals.AccountAgeDays)

	return &models.AnalysisResult{
		Username:         user.Username,
		TrustScore:       trustScore,
		Verdict:          verdict,
		AccountAgeDays:   signals.AccountAgeDays,
		FollowerRatio:    signals.FollowerRatio,
		EngagementRate:   signals.EngagementRate,
		TrustedFollowers: trustedFollowers,
		RedFlags:         signals.RedFlags,
		Summary:          summary,
	}, nil
}
