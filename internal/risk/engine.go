package risk

import (
	"fmt"
	"time"
)

// RiskLevel classifies a risk score into one of three bands.
type RiskLevel string

const (
	LowRisk      RiskLevel = "LOW RISK"
	ModerateRisk RiskLevel = "MODERATE RISK"
	HighRisk     RiskLevel = "HIGH RISK"
)

// Band thresholds. Scores at or above HighRiskThreshold are HIGH RISK,
// at or above ModerateRiskThreshold are MODERATE RISK, everything else LOW RISK.
const (
	HighRiskThreshold     = 70
	ModerateRiskThreshold = 40
	MaxScore              = 100
)

// Recommendation text per band. Fixed strings, keyed only by risk level.
const (
	recommendationHigh     = "Strong indicators of malicious activity. Recommend immediate review and possible restriction."
	recommendationModerate = "Unusual patterns detected. May be legitimate but warrants human review."
	recommendationLow      = "Activity appears normal. Account likely legitimate."
)

// Assessment is the result of scoring a single account. It is constructed
// fresh on every call and never mutated afterwards.
type Assessment struct {
	AccountID      string    `json:"account_id"`
	RiskScore      int       `json:"risk_score"`
	RiskLevel      RiskLevel `json:"risk_level"`
	RiskColor      string    `json:"risk_color"`
	Recommendation string    `json:"recommendation"`
	Explanations   []string  `json:"explanations"`
	AssessedAt     time.Time `json:"assessed_at"`
}

// Engine scores accounts against the fixed rule set. It is stateless apart
// from the clock and safe for concurrent use.
type Engine struct {
	now func() time.Time
}

// NewEngine creates an engine that ages accounts against the wall clock.
func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// NewEngineWithClock creates an engine with a fixed reference clock. Scoring
// is then a pure function of the account, which the tests rely on.
func NewEngineWithClock(now func() time.Time) *Engine {
	return &Engine{now: now}
}

// Score evaluates the seven risk factors in order, sums their contributions,
// clamps the total to [0,100] and derives the band. Each factor is mutually
// exclusive within itself: only the first matching threshold applies.
func (e *Engine) Score(account Account) *Assessment {
	ageDays := account.AgeDays(e.now())

	score := 0
	explanations := []string{}

	factors := []func() (int, string){
		func() (int, string) { return scoreAccountAge(ageDays) },
		func() (int, string) { return scoreFollowRatio(account) },
		func() (int, string) { return scorePostingFrequency(account) },
		func() (int, string) { return scoreContentRepetition(account) },
		func() (int, string) { return scoreMessagingVolume(account) },
		func() (int, string) { return scoreSuspiciousLinks(account) },
		func() (int, string) { return scoreNetworkFlags(account) },
	}

	for _, factor := range factors {
		points, explanation := factor()
		score += points
		if explanation != "" {
			explanations = append(explanations, explanation)
		}
	}

	if score > MaxScore {
		score = MaxScore
	}
	if score < 0 {
		score = 0
	}

	level := levelFor(score)

	// Positive signals never move the score; they only round out the
	// explanation trail for accounts that already look legitimate.
	if score < ModerateRiskThreshold {
		explanations = append(explanations, positiveSignals(account, ageDays)...)
	}

	return &Assessment{
		AccountID:      account.AccountID,
		RiskScore:      score,
		RiskLevel:      level,
		RiskColor:      colorFor(level),
		Recommendation: recommendationFor(level),
		Explanations:   explanations,
		AssessedAt:     e.now(),
	}
}

// scoreAccountAge awards up to 15 points for account youth.
func scoreAccountAge(ageDays int) (int, string) {
	switch {
	case ageDays < 30:
		return 15, "🚩 Very new account (less than 1 month old)"
	case ageDays < 90:
		return 8, "⚠️ Relatively new account (less than 3 months)"
	case ageDays < 180:
		return 3, "ℹ️ Account is less than 6 months old"
	default:
		return 0, ""
	}
}

// scoreFollowRatio awards up to 20 points for bot-like follow patterns.
// A following count of zero skips the factor entirely; the ratio is never
// computed in that case.
func scoreFollowRatio(a Account) (int, string) {
	if a.Following <= 0 {
		return 0, ""
	}
	ratio := float64(a.Followers) / float64(a.Following)
	switch {
	case a.Following > 2000 && a.Followers < 100:
		return 20, "🚩 Suspicious follow pattern: Following many, very few followers (bot-like)"
	case ratio < 0.1:
		return 12, "⚠️ Low follower-to-following ratio (potential spam behavior)"
	case ratio > 10 && a.Followers > 5000:
		return 0, "✅ High influence: Many followers, selective following (typical influencer/business)"
	default:
		return 0, ""
	}
}

// scorePostingFrequency awards up to 20 points for automation-level posting.
func scorePostingFrequency(a Account) (int, string) {
	switch {
	case a.PostsPerDay > 10:
		return 20, fmt.Sprintf("🚩 Extremely high posting frequency (%.1f posts/day - likely automated)", a.PostsPerDay)
	case a.PostsPerDay > 5:
		return 12, fmt.Sprintf("⚠️ High posting frequency (%.1f posts/day)", a.PostsPerDay)
	case a.PostsPerDay > 3:
		return 5, fmt.Sprintf("ℹ️ Active posting (%.1f posts/day - could be legitimate business)", a.PostsPerDay)
	default:
		return 0, ""
	}
}

// scoreContentRepetition awards up to 15 points for near-duplicate posting.
func scoreContentRepetition(a Account) (int, string) {
	switch {
	case a.RepetitiveContent > 70:
		return 15, fmt.Sprintf("🚩 Very repetitive content (%g%% similar posts)", a.RepetitiveContent)
	case a.RepetitiveContent > 50:
		return 8, fmt.Sprintf("⚠️ Moderately repetitive content (%g%% - could be marketing)", a.RepetitiveContent)
	case a.RepetitiveContent > 30:
		return 3, fmt.Sprintf("ℹ️ Some content repetition (%g%% - possibly promotional)", a.RepetitiveContent)
	default:
		return 0, ""
	}
}

// scoreMessagingVolume awards up to 15 points for mass-messaging behavior.
func scoreMessagingVolume(a Account) (int, string) {
	switch {
	case a.MessagesSentPerDay > 50:
		return 15, fmt.Sprintf("🚩 Mass messaging activity (%g messages/day)", a.MessagesSentPerDay)
	case a.MessagesSentPerDay > 20:
		return 8, fmt.Sprintf("⚠️ High messaging volume (%g messages/day)", a.MessagesSentPerDay)
	default:
		return 0, ""
	}
}

// scoreSuspiciousLinks awards up to 10 points for link-heavy posting.
func scoreSuspiciousLinks(a Account) (int, string) {
	switch {
	case a.SuspiciousLinks > 40:
		return 10, fmt.Sprintf("🚩 Many suspicious links (%g%% of posts)", a.SuspiciousLinks)
	case a.SuspiciousLinks > 20:
		return 6, fmt.Sprintf("⚠️ Moderate suspicious links (%g%% of posts)", a.SuspiciousLinks)
	case a.SuspiciousLinks > 10:
		return 2, fmt.Sprintf("ℹ️ Some external links (%g%% - possibly promotional)", a.SuspiciousLinks)
	default:
		return 0, ""
	}
}

// scoreNetworkFlags awards up to 5 points for ties to already-flagged accounts.
func scoreNetworkFlags(a Account) (int, string) {
	switch {
	case a.NetworkFlags > 3:
		return 5, fmt.Sprintf("🚩 Connected to %d flagged accounts (coordinated behavior)", a.NetworkFlags)
	case a.NetworkFlags > 0:
		return 2, fmt.Sprintf("⚠️ Connected to %d flagged account(s)", a.NetworkFlags)
	default:
		return 0, ""
	}
}

// positiveSignals returns the trust indicators for low-risk accounts, in
// fixed order: verified, profile picture, completed bio, established age.
func positiveSignals(a Account, ageDays int) []string {
	var signals []string
	if a.Verified {
		signals = append(signals, "✅ Verified account")
	}
	if a.HasProfilePic {
		signals = append(signals, "✅ Has profile picture")
	}
	if a.BioLength > 50 {
		signals = append(signals, "✅ Complete profile with bio")
	}
	if ageDays > 365 {
		signals = append(signals, "✅ Established account (over 1 year old)")
	}
	return signals
}

func levelFor(score int) RiskLevel {
	switch {
	case score >= HighRiskThreshold:
		return HighRisk
	case score >= ModerateRiskThreshold:
		return ModerateRisk
	default:
		return LowRisk
	}
}

func colorFor(level RiskLevel) string {
	switch level {
	case HighRisk:
		return "🔴"
	case ModerateRisk:
		return "🟡"
	default:
		return "🟢"
	}
}

func recommendationFor(level RiskLevel) string {
	switch level {
	case HighRisk:
		return recommendationHigh
	case ModerateRisk:
		return recommendationModerate
	default:
		return recommendationLow
	}
}
