package analysis

import (
	"fmt"
	"strconv"
	"strings"

	"rugguard/internal/models"
)

// BuildSummary renders the analysis into the reply text posted back to the
// trigger tweet. Field order and the conditional blocks are fixed; only the
// wording is cosmetic.
func BuildSummary(user *models.User, trustScore int, verdict models.Verdict, trustedFollowers []string, redFlags []string, accountAgeDays int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🔍 Analysis for @%s\n\n", user.Username)
	fmt.Fprintf(&b, "📊 Trust Score: %d/100\n", trustScore)
	fmt.Fprintf(&b, "🎯 Verdict: %s %s\n\n", verdictEmoji(verdict), verdict)

	if len(trustedFollowers) > 0 {
		fmt.Fprintf(&b, "✅ Backed by %d trusted Solana accounts\n", len(trustedFollowers))
		if len(trustedFollowers) <= 3 {
			fmt.Fprintf(&b, "   • %s\n", strings.Join(trustedFollowers, ", "))
		}
	}

	ageText := "relatively new"
	if accountAgeDays > 365 {
		ageText = "established"
	}
	fmt.Fprintf(&b, "📅 %s account (%d months)\n", ageText, accountAgeDays/30)
	fmt.Fprintf(&b, "👥 %s followers\n\n", formatCount(user.PublicMetrics.FollowersCount))

	if len(redFlags) > 0 {
		b.WriteString("⚠️ Red flags:\n")
		for _, flag := range redFlags {
			fmt.Fprintf(&b, "   • %s\n", flag)
		}
	}

	b.WriteString("\n🤖 Automated analysis by @projectrugguard")

	return b.String()
}

func verdictEmoji(verdict models.Verdict) string {
	switch verdict {
	case models.VerdictTrusted:
		return "✅"
	case models.VerdictCaution:
		return "⚠️"
	case models.VerdictSuspicious:
		return "🚨"
	default:
		return "❓"
	}
}

// formatCount renders an integer with thousands separators (12345 → 12,345).
func formatCount(n int) string {
	s := strconv.Itoa(n)
	if n < 0 {
		s = s[1:]
	}

	var b strings.Builder
	if n < 0 {
		b.WriteByte('-')
	}
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
		if len(s) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(s); i += 3 {
		b.WriteString(s[i : i+3])
		if i+3 < len(s) {
			b.WriteByte(',')
		}
	}
	return b.String()
}
