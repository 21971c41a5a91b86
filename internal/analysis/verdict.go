package analysis

import "rugguard/internal/models"

// DetermineVerdict maps score, trusted-follow count and red-flag count to a
// verdict. First match wins: endorsement by 3+ trusted accounts trumps
// everything, 3+ red flags trump the score, otherwise the score decides.
func DetermineVerdict(trustScore, trustedFollowers, redFlags int) models.Verdict {
	if trustedFollowers >= 3 {
		return models.VerdictTrusted
	}

	if redFlags >= 3 {
		return models.VerdictSuspicious
	}

	if trustScore >= 70 {
		return models.VerdictTrusted
	}
	if trustScore >= 40 {
		return models.VerdictCaution
	}
	return models.VerdictSuspicious
}
