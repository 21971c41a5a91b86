package repository

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rugguard/internal/models"
)

func newTestRepo(t *testing.T) *AnalysisRepository {
	t.Helper()

	repo, err := NewAnalysisRepository(filepath.Join(t.TempDir(), "test.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func sampleResult(username string, score int, verdict models.Verdict) *models.AnalysisResult {
	return &models.AnalysisResult{
		Username:         username,
		TrustScore:       score,
		Verdict:          verdict,
		AccountAgeDays:   400,
		FollowerRatio:    2,
		EngagementRate:   1.5,
		TrustedFollowers: []string{"solana"},
		RedFlags:         []string{"Incomplete profile (no/minimal bio)"},
		Summary:          "summary",
	}
}

func TestSaveAndGetRecent(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.SaveAnalysis("run-1", sampleResult("alpha", 75, models.VerdictTrusted)))
	require.NoError(t, repo.SaveAnalysis("run-1", sampleResult("beta", 12, models.VerdictSuspicious)))

	stored, err := repo.GetRecent(10)
	require.NoError(t, err)
	require.Len(t, stored, 2)

	// Newest first.
	assert.Equal(t, "beta", stored[0].Username)
	assert.Equal(t, "alpha", stored[1].Username)

	assert.Equal(t, "run-1", stored[0].RunID)
	assert.Equal(t, models.VerdictSuspicious, stored[0].Verdict)
	assert.Equal(t, []string{"solana"}, stored[0].TrustedFollowers)
	assert.Equal(t, []string{"Incomplete profile (no/minimal bio)"}, stored[0].RedFlags)
	assert.False(t, stored[0].CreatedAt.IsZero())
}

func TestGetRecentHonorsLimit(t *testing.T) {
	repo := newTestRepo(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.SaveAnalysis("run-1", sampleResult("alpha", 50, models.VerdictCaution)))
	}

	stored, err := repo.GetRecent(3)
	require.NoError(t, err)
	assert.Len(t, stored, 3)
}

func TestGetByUsername(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.SaveAnalysis("run-1", sampleResult("alpha", 75, models.VerdictTrusted)))
	require.NoError(t, repo.SaveAnalysis("run-2", sampleResult("beta", 40, models.VerdictCaution)))
	require.NoError(t, repo.SaveAnalysis("run-3", sampleResult("alpha", 70, models.VerdictTrusted)))

	stored, err := repo.GetByUsername("alpha", 10)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "run-3", stored[0].RunID)
	assert.Equal(t, "run-1", stored[1].RunID)

	none, err := repo.GetByUsername("nobody", 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}
