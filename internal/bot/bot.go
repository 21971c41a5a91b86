package bot

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rugguard/internal/config"
	"rugguard/internal/models"
)

// processedSetLimit bounds the in-memory processed-ID set.
const processedSetLimit = 1000

// SearchClient is the subset of the X client the pipeline needs.
type SearchClient interface {
	SearchRecentTweets(ctx context.Context, query string, maxResults int) ([]models.Tweet, error)
	GetTweetByID(ctx context.Context, tweetID string) (*models.Tweet, error)
	ReplyToTweet(ctx context.Context, tweetID, text string) error
}

// Analyzer produces a trust analysis for the account behind a user ID.
type Analyzer interface {
	AnalyzeUser(ctx context.Context, userID string) (*models.AnalysisResult, error)
}

// HistoryStore persists completed analyses. Failures are logged, never
// fatal to a run.
type HistoryStore interface {
	SaveAnalysis(runID string, result *models.AnalysisResult) error
}

// AlertNotifier is told about SUSPICIOUS verdicts.
type AlertNotifier interface {
	NotifySuspicious(result *models.AnalysisResult)
}

// Bot is the trigger pipeline: it searches for tweets containing the
// trigger phrase, resolves the account being replied to, analyzes it and
// posts the summary back as a reply.
type Bot struct {
	cfg       *config.Config
	client    SearchClient
	analyzer  Analyzer
	store     HistoryStore
	notifier  AlertNotifier
	processed *ProcessedSet
	logger    *zap.Logger
	running   atomic.Bool
}

// NewBot creates the trigger pipeline. store and notifier may be nil.
func NewBot(cfg *config.Config, client SearchClient, analyzer Analyzer, store HistoryStore, notifier AlertNotifier, logger *zap.Logger) *Bot {
	return &Bot{
		cfg:       cfg,
		client:    client,
		analyzer:  analyzer,
		store:     store,
		notifier:  notifier,
		processed: NewProcessedSet(processedSetLimit),
		logger:    logger,
	}
}

// Run executes one check at startup and then one per configured interval
// until the context is cancelled.
func (b *Bot) Run(ctx context.Context) {
	b.logger.Info("Starting trigger bot",
		zap.String("trigger_phrase", b.cfg.Bot.TriggerPhrase),
		zap.Int("check_interval_minutes", b.cfg.Bot.CheckIntervalMinutes))

	b.RunOnce(ctx)

	ticker := time.NewTicker(time.Duration(b.cfg.Bot.CheckIntervalMinutes) * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("Trigger bot stopped.")
			return
		case <-ticker.C:
			b.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single search-and-process pass. Overlapping passes are
// skipped rather than queued. Any failure ends the pass; the next scheduled
// pass starts from scratch.
func (b *Bot) RunOnce(ctx context.Context) {
	if !b.running.CompareAndSwap(false, true) {
		b.logger.Warn("Previous check still running, skipping this one")
		return
	}
	defer b.running.Store(false)

	runID := uuid.NewString()
	logger := b.logger.With(zap.String("run_id", runID))

	query := fmt.Sprintf("%q -is:retweet", b.cfg.Bot.TriggerPhrase)
	tweets, err := b.client.SearchRecentTweets(ctx, query, b.cfg.Bot.MaxTweetsPerCheck)
	if err != nil {
		logger.Error("Failed to search for trigger tweets", zap.Error(err))
		return
	}

	logger.Info("Found potential trigger tweets", zap.Int("count", len(tweets)))

	for i := range tweets {
		tweet := &tweets[i]
		if b.processed.Contains(tweet.ID) {
			continue
		}

		if err := b.processTriggerTweet(ctx, runID, logger, tweet); err != nil {
			logger.Error("Failed to process trigger tweet",
				zap.String("tweet_id", tweet.ID), zap.Error(err))
		}
		b.processed.Add(tweet.ID)
	}
}

// processTriggerTweet handles one candidate. Skips (not a reply, target
// missing) are logged and return nil; only real failures return an error.
// Either way the caller marks the candidate processed.
func (b *Bot) processTriggerTweet(ctx context.Context, runID string, logger *zap.Logger, triggerTweet *models.Tweet) error {
	logger.Info("Processing trigger tweet", zap.String("tweet_id", triggerTweet.ID))

	if triggerTweet.InReplyToUserID == "" {
		logger.Info("Tweet is not a reply, skipping", zap.String("tweet_id", triggerTweet.ID))
		return nil
	}

	repliedToID := triggerTweet.RepliedToTweetID()
	if repliedToID == "" {
		logger.Info("Could not find replied-to tweet ID, skipping", zap.String("tweet_id", triggerTweet.ID))
		return nil
	}

	originalTweet, err := b.client.GetTweetByID(ctx, repliedToID)
	if err != nil {
		logger.Info("Could not fetch replied-to tweet, skipping",
			zap.String("tweet_id", repliedToID), zap.Error(err))
		return nil
	}

	if originalTweet.AuthorID == "" {
		logger.Info("Replied-to tweet has no author ID, skipping", zap.String("tweet_id", repliedToID))
		return nil
	}

	logger.Info("Analyzing target account", zap.String("user_id", originalTweet.AuthorID))

	analysis, err := b.analyzer.AnalyzeUser(ctx, originalTweet.AuthorID)
	if err != nil {
		return fmt.Errorf("analysis failed for user %s: %w", originalTweet.AuthorID, err)
	}

	if b.store != nil {
		if err := b.store.SaveAnalysis(runID, analysis); err != nil {
			logger.Error("Failed to save analysis to history",
				zap.String("username", analysis.Username), zap.Error(err))
		}
	}

	if b.notifier != nil && analysis.Verdict == models.VerdictSuspicious {
		b.notifier.NotifySuspicious(analysis)
	}

	// The candidate stays marked processed even when the reply fails, so an
	// unreachable target is not retried every pass.
	if err := b.client.ReplyToTweet(ctx, triggerTweet.ID, analysis.Summary); err != nil {
		logger.Error("Failed to post reply",
			zap.String("tweet_id", triggerTweet.ID),
			zap.String("username", analysis.Username),
			zap.Error(err))
		return nil
	}

	logger.Info("Successfully analyzed and replied",
		zap.String("username", analysis.Username),
		zap.Int("trust_score", analysis.TrustScore),
		zap.String("verdict", string(analysis.Verdict)))
	return nil
}
