package risk

import (
	"fmt"
	"time"

	"github.com/riskwatch/account-risk-api/internal/errors"
)

// Account holds the profile attributes consulted by the risk engine.
// All numeric fields are expected to be non-negative; percentages are in [0,100].
type Account struct {
	AccountID          string    `json:"account_id"`
	AccountType        string    `json:"account_type,omitempty"`
	CreatedDate        time.Time `json:"created_date"`
	Followers          int       `json:"followers"`
	Following          int       `json:"following"`
	Posts              int       `json:"posts"`
	PostsPerDay        float64   `json:"posts_per_day"`
	BioLength          int       `json:"bio_length"`
	HasProfilePic      bool      `json:"has_profile_pic"`
	Verified           bool      `json:"verified"`
	AvgLikesPerPost    float64   `json:"avg_likes_per_post"`
	MessagesSentPerDay float64   `json:"messages_sent_per_day"`
	RepetitiveContent  float64   `json:"repetitive_content"`
	SuspiciousLinks    float64   `json:"suspicious_links"`
	NetworkFlags       int       `json:"network_flags"`
}

// AgeDays returns the account age in whole days relative to now.
func (a Account) AgeDays(now time.Time) int {
	return int(now.Sub(a.CreatedDate).Hours() / 24)
}

// Validate rejects accounts that fall outside the engine's declared domain.
// The engine itself is total over valid inputs, so this is the only place an
// account can be refused. Callers derive posts_per_day upstream; it is not
// recomputed here.
func (a Account) Validate() error {
	if a.AccountID == "" {
		return errors.InvalidAccountData("account_id is required", nil)
	}
	checks := []struct {
		name  string
		value float64
	}{
		{"followers", float64(a.Followers)},
		{"following", float64(a.Following)},
		{"posts", float64(a.Posts)},
		{"posts_per_day", a.PostsPerDay},
		{"bio_length", float64(a.BioLength)},
		{"avg_likes_per_post", a.AvgLikesPerPost},
		{"messages_sent_per_day", a.MessagesSentPerDay},
		{"network_flags", float64(a.NetworkFlags)},
	}
	for _, c := range checks {
		if c.value < 0 {
			return errors.InvalidAccountData(fmt.Sprintf("%s must be non-negative", c.name), nil)
		}
	}
	percentages := []struct {
		name  string
		value float64
	}{
		{"repetitive_content", a.RepetitiveContent},
		{"suspicious_links", a.SuspiciousLinks},
	}
	for _, p := range percentages {
		if p.value < 0 || p.value > 100 {
			return errors.InvalidAccountData(fmt.Sprintf("%s must be a percentage in [0,100]", p.name), nil)
		}
	}
	return nil
}
