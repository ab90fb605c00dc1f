// riskdemo scores the three showcase accounts plus a randomly generated
// batch and prints the results as cards, exercising the full scoring path
// without the HTTP server.
package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/riskwatch/account-risk-api/internal/generator"
	"github.com/riskwatch/account-risk-api/internal/risk"
)

func main() {
	count := flag.Int("count", 20, "number of synthetic accounts to generate")
	seed := flag.Int64("seed", 0, "generator seed (0 = seed from the clock)")
	flag.Parse()

	engine := risk.NewEngine()

	fmt.Println("🛡️  Social Account Risk Assessment")
	fmt.Println("==================================")

	fmt.Println("\n🎯 Demo Accounts")
	fmt.Println("----------------")
	demoAssessments := engine.AnalyzeBatch(generator.DemoAccounts(time.Now()))
	for _, a := range demoAssessments {
		printCard(a)
	}

	fmt.Printf("\n📊 Random Batch (%d accounts)\n", *count)
	fmt.Println("-----------------------------")
	var gen *generator.Generator
	if *seed != 0 {
		gen = generator.NewSeeded(*seed)
	} else {
		gen = generator.New()
	}

	accounts := gen.Generate(*count)
	assessments := engine.AnalyzeBatch(accounts)
	for i, a := range assessments {
		fmt.Printf("%s %-22s %-12s score %3d/100  (%s)\n",
			a.RiskColor, a.AccountID, accounts[i].AccountType, a.RiskScore, a.RiskLevel)
	}

	printSummary(risk.GetRiskDistribution(assessments))
}

func printCard(a *risk.Assessment) {
	fmt.Printf("\n%s %s — %s (%d/100)\n", a.RiskColor, a.AccountID, a.RiskLevel, a.RiskScore)
	fmt.Printf("   Recommendation: %s\n", a.Recommendation)
	for _, explanation := range a.Explanations {
		fmt.Printf("   - %s\n", explanation)
	}
}

func printSummary(dist risk.Distribution) {
	fmt.Println("\n📈 Summary")
	fmt.Println("----------")
	fmt.Printf("Total accounts:   %d\n", dist.Total)
	fmt.Printf("🟢 Low risk:      %d\n", dist.LowRisk)
	fmt.Printf("🟡 Moderate risk: %d\n", dist.ModerateRisk)
	fmt.Printf("🔴 High risk:     %d\n", dist.HighRisk)
	fmt.Printf("Average score:    %.1f/100\n", dist.AvgScore)
}
