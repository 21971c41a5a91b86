package analysis

import "rugguard/internal/models"

const baseScore = 50

// CalculateTrustScore combines the signals into a single score via an
// additive rule table. Deterministic and side-effect-free; the result is
// always within [0, 100].
func CalculateTrustScore(s models.Signals) int {
	score := baseScore

	// Account age
	switch {
	case s.AccountAgeDays > 365:
		score += 15
	case s.AccountAgeDays > 180:
		score += 10
	case s.AccountAgeDays > 90:
		score += 5
	case s.AccountAgeDays < 30:
		score -= 15
	}

	// Trusted follows, capped contribution
	trustedBonus := s.TrustedFollowCount * 10
	if trustedBonus > 30 {
		trustedBonus = 30
	}
	score += trustedBonus

	// Verification bonus
	if s.IsVerified {
		score += 10
	}

	// Red flags penalty
	score -= len(s.RedFlags) * 8

	// Follower ratio. The 10-50 range deliberately gets no adjustment.
	if s.FollowerRatio > 0.5 && s.FollowerRatio < 10 {
		score += 5
	} else if s.FollowerRatio > 50 {
		score -= 10
	}

	// Tweet activity
	if s.TweetCount > 100 {
		score += 5
	} else if s.TweetCount < 10 {
		score -= 5
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
