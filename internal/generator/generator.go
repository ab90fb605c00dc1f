// Package generator produces synthetic social-media accounts for demos and
// batch analysis. Four archetypes are modeled: normal users, businesses
// (legitimate but often flagged), bots, and scammers.
package generator

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/riskwatch/account-risk-api/internal/risk"
)

// Archetype proportions: 40% normal, 15% business, 25% bot, 20% scammer.
var archetypes = []struct {
	kind   string
	weight float64
}{
	{"normal", 0.40},
	{"business", 0.15},
	{"bot", 0.25},
	{"scammer", 0.20},
}

// Generator creates randomized account records. Not safe for concurrent use;
// create one per goroutine if generating in parallel.
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

// New creates a clock-seeded generator.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded creates a generator with a fixed seed for reproducible output.
func NewSeeded(seed int64) *Generator {
	return &Generator{
		rng: rand.New(rand.NewSource(seed)),
		now: time.Now,
	}
}

// Generate produces n synthetic accounts with archetypes drawn according to
// the fixed proportions.
func (g *Generator) Generate(n int) []risk.Account {
	accounts := make([]risk.Account, 0, n)
	for i := 0; i < n; i++ {
		switch g.pickArchetype() {
		case "normal":
			accounts = append(accounts, g.NormalUser())
		case "business":
			accounts = append(accounts, g.Business())
		case "bot":
			accounts = append(accounts, g.Bot())
		default:
			accounts = append(accounts, g.Scammer())
		}
	}
	return accounts
}

func (g *Generator) pickArchetype() string {
	r := g.rng.Float64()
	cumulative := 0.0
	for _, a := range archetypes {
		cumulative += a.weight
		if r < cumulative {
			return a.kind
		}
	}
	return archetypes[len(archetypes)-1].kind
}

// NormalUser generates a legitimate personal account: established age,
// balanced follow counts, modest activity.
func (g *Generator) NormalUser() risk.Account {
	daysOld := g.intBetween(30, 1825)
	posts := g.intBetween(20, 500)
	return risk.Account{
		AccountID:          accountID("user"),
		AccountType:        "Normal User",
		CreatedDate:        g.now().AddDate(0, 0, -daysOld),
		Followers:          g.intBetween(50, 2000),
		Following:          g.intBetween(100, 1500),
		Posts:              posts,
		PostsPerDay:        round2(float64(posts) / float64(daysOld)),
		BioLength:          g.intBetween(50, 200),
		HasProfilePic:      true,
		Verified:           g.rng.Intn(2) == 0,
		AvgLikesPerPost:    float64(g.intBetween(10, 100)),
		MessagesSentPerDay: float64(g.intBetween(0, 10)),
		RepetitiveContent:  float64(g.intBetween(0, 20)),
		SuspiciousLinks:    0,
		NetworkFlags:       0,
	}
}

// Business generates a legitimate business account. These post marketing
// content on a schedule and are the classic false-positive case.
func (g *Generator) Business() risk.Account {
	daysOld := g.intBetween(30, 365)
	posts := g.intBetween(100, 1000)
	return risk.Account{
		AccountID:          accountID("biz"),
		AccountType:        "Business",
		CreatedDate:        g.now().AddDate(0, 0, -daysOld),
		Followers:          g.intBetween(500, 10000),
		Following:          g.intBetween(50, 300),
		Posts:              posts,
		PostsPerDay:        round2(float64(posts) / float64(daysOld)),
		BioLength:          g.intBetween(100, 300),
		HasProfilePic:      true,
		Verified:           g.rng.Intn(2) == 0,
		AvgLikesPerPost:    float64(g.intBetween(50, 500)),
		MessagesSentPerDay: float64(g.intBetween(5, 20)),
		RepetitiveContent:  float64(g.intBetween(30, 50)),
		SuspiciousLinks:    float64(g.intBetween(0, 10)),
		NetworkFlags:       0,
	}
}

// Bot generates a spam bot: very new, follows thousands, posts constantly,
// near-duplicate content.
func (g *Generator) Bot() risk.Account {
	daysOld := g.intBetween(1, 60)
	posts := g.intBetween(100, 2000)
	return risk.Account{
		AccountID:          accountID("bot"),
		AccountType:        "Bot",
		CreatedDate:        g.now().AddDate(0, 0, -daysOld),
		Followers:          g.intBetween(0, 100),
		Following:          g.intBetween(1000, 5000),
		Posts:              posts,
		PostsPerDay:        round2(float64(posts) / float64(daysOld)),
		BioLength:          g.intBetween(0, 50),
		HasProfilePic:      g.rng.Intn(2) == 0,
		Verified:           false,
		AvgLikesPerPost:    float64(g.intBetween(0, 5)),
		MessagesSentPerDay: float64(g.intBetween(20, 100)),
		RepetitiveContent:  float64(g.intBetween(70, 95)),
		SuspiciousLinks:    float64(g.intBetween(10, 50)),
		NetworkFlags:       g.intBetween(1, 5),
	}
}

// Scammer generates a scam or impersonation account: new, mass messaging,
// phishing links, embedded in a flagged network.
func (g *Generator) Scammer() risk.Account {
	daysOld := g.intBetween(1, 90)
	posts := g.intBetween(10, 200)
	return risk.Account{
		AccountID:          accountID("scam"),
		AccountType:        "Scammer",
		CreatedDate:        g.now().AddDate(0, 0, -daysOld),
		Followers:          g.intBetween(100, 1000),
		Following:          g.intBetween(500, 2000),
		Posts:              posts,
		PostsPerDay:        round2(float64(posts) / float64(daysOld)),
		BioLength:          g.intBetween(50, 150),
		HasProfilePic:      true, // often stolen pictures
		Verified:           false,
		AvgLikesPerPost:    float64(g.intBetween(5, 30)),
		MessagesSentPerDay: float64(g.intBetween(30, 100)),
		RepetitiveContent:  float64(g.intBetween(60, 85)),
		SuspiciousLinks:    float64(g.intBetween(20, 80)),
		NetworkFlags:       g.intBetween(2, 8),
	}
}

// intBetween returns a random int in [min, max] inclusive.
func (g *Generator) intBetween(min, max int) int {
	return min + g.rng.Intn(max-min+1)
}

func accountID(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, uuid.NewString()[:8])
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
