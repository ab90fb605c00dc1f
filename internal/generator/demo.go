package generator

import (
	"time"

	"github.com/riskwatch/account-risk-api/internal/risk"
)

// DemoAccounts returns three fixed accounts that showcase different risk
// profiles: a new coffee shop, an up-and-coming influencer, and a textbook
// scam account. Ages are anchored to the supplied reference time so the
// assessments stay stable under a pinned clock.
func DemoAccounts(now time.Time) []risk.Account {
	return []risk.Account{
		{
			AccountID:          "demo_coffee_shop",
			AccountType:        "Business",
			CreatedDate:        now.AddDate(0, 0, -45),
			Followers:          250,
			Following:          150,
			Posts:              60,
			PostsPerDay:        1.33,
			BioLength:          180,
			HasProfilePic:      true,
			Verified:           false,
			AvgLikesPerPost:    45,
			MessagesSentPerDay: 8,
			RepetitiveContent:  35,
			SuspiciousLinks:    5,
			NetworkFlags:       0,
		},
		{
			AccountID:          "demo_influencer",
			AccountType:        "Normal User",
			CreatedDate:        now.AddDate(0, 0, -90),
			Followers:          5000,
			Following:          200,
			Posts:              300,
			PostsPerDay:        3.33,
			BioLength:          150,
			HasProfilePic:      true,
			Verified:           false,
			AvgLikesPerPost:    200,
			MessagesSentPerDay: 15,
			RepetitiveContent:  40,
			SuspiciousLinks:    15,
			NetworkFlags:       1,
		},
		{
			AccountID:          "demo_scammer",
			AccountType:        "Scammer",
			CreatedDate:        now.AddDate(0, 0, -10),
			Followers:          50,
			Following:          3000,
			Posts:              150,
			PostsPerDay:        15.0,
			BioLength:          80,
			HasProfilePic:      true,
			Verified:           false,
			AvgLikesPerPost:    2,
			MessagesSentPerDay: 80,
			RepetitiveContent:  85,
			SuspiciousLinks:    60,
			NetworkFlags:       5,
		},
	}
}
