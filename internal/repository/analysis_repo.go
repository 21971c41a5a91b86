package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"rugguard/internal/models"
)

// AnalysisRepository stores completed analyses in sqlite.
type AnalysisRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewAnalysisRepository opens (or creates) the database at dbPath.
func NewAnalysisRepository(dbPath string, logger *zap.Logger) (*AnalysisRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	repo := &AnalysisRepository{
		db:     db,
		logger: logger,
	}

	if err := repo.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Info("Analysis repository initialized", zap.String("db_path", dbPath))

	return repo, nil
}

// migrate creates tables
func (r *AnalysisRepository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS analyses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		username TEXT NOT NULL,
		trust_score INTEGER NOT NULL,
		verdict TEXT NOT NULL,
		account_age_days INTEGER NOT NULL,
		follower_ratio REAL NOT NULL,
		engagement_rate REAL NOT NULL,
		trusted_followers TEXT NOT NULL,
		red_flags TEXT NOT NULL,
		summary TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_analyses_username ON analyses(username);
	CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at);
	`

	_, err := r.db.Exec(schema)
	return err
}

// SaveAnalysis persists one analysis result under the given run ID.
func (r *AnalysisRepository) SaveAnalysis(runID string, result *models.AnalysisResult) error {
	trustedJSON, err := json.Marshal(result.TrustedFollowers)
	if err != nil {
		return fmt.Errorf("failed to encode trusted followers: %w", err)
	}
	flagsJSON, err := json.Marshal(result.RedFlags)
	if err != nil {
		return fmt.Errorf("failed to encode red flags: %w", err)
	}

	query := `
		INSERT INTO analyses (
			run_id, username, trust_score, verdict, account_age_days,
			follower_ratio, engagement_rate, trusted_followers, red_flags,
			summary, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		runID,
		result.Username,
		result.TrustScore,
		string(result.Verdict),
		result.AccountAgeDays,
		result.FollowerRatio,
		result.EngagementRate,
		string(trustedJSON),
		string(flagsJSON),
		result.Summary,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert analysis: %w", err)
	}

	r.logger.Debug("Analysis saved",
		zap.String("run_id", runID),
		zap.String("username", result.Username))
	return nil
}

// GetRecent returns the most recently stored analyses, newest first.
func (r *AnalysisRepository) GetRecent(limit int) ([]*models.StoredAnalysis, error) {
	query := `
		SELECT id, run_id, username, trust_score, verdict, account_age_days,
		       follower_ratio, engagement_rate, trusted_followers, red_flags,
		       summary, created_at
		FROM analyses
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`
	return r.queryAnalyses(query, limit)
}

// GetByUsername returns stored analyses for one handle, newest first.
func (r *AnalysisRepository) GetByUsername(username string, limit int) ([]*models.StoredAnalysis, error) {
	query := `
		SELECT id, run_id, username, trust_score, verdict, account_age_days,
		       follower_ratio, engagement_rate, trusted_followers, red_flags,
		       summary, created_at
		FROM analyses
		WHERE username = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`
	return r.queryAnalyses(query, username, limit)
}

func (r *AnalysisRepository) queryAnalyses(query string, args ...any) ([]*models.StoredAnalysis, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query analyses: %w", err)
	}
	defer rows.Close()

	var results []*models.StoredAnalysis
	for rows.Next() {
		var stored models.StoredAnalysis
		var verdict, trustedJSON, flagsJSON string

		err := rows.Scan(
			&stored.ID,
			&stored.RunID,
			&stored.Username,
			&stored.TrustScore,
			&verdict,
			&stored.AccountAgeDays,
			&stored.FollowerRatio,
			&stored.EngagementRate,
			&trustedJSON,
			&flagsJSON,
			&stored.Summary,
			&stored.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis row: %w", err)
		}

		stored.Verdict = models.Verdict(verdict)
		if err := json.Unmarshal([]byte(trustedJSON), &stored.TrustedFollowers); err != nil {
			return nil, fmt.Errorf("failed to decode trusted followers: %w", err)
		}
		if err := json.Unmarshal([]byte(flagsJSON), &stored.RedFlags); err != nil {
			return nil, fmt.Errorf("failed to decode red flags: %w", err)
		}

		results = append(results, &stored)
	}

	return results, rows.Err()
}

// Close closes the underlying database.
func (r *AnalysisRepository) Close() error {
	return r.db.Close()
}
