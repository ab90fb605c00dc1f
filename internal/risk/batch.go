package risk

// Distribution summarizes a batch of assessments: counts per band plus the
// unweighted mean score. An empty batch yields zero counts and AvgScore 0.
type Distribution struct {
	HighRisk     int     `json:"high_risk"`
	ModerateRisk int     `json:"moderate_risk"`
	LowRisk      int     `json:"low_risk"`
	Total        int     `json:"total"`
	AvgScore     float64 `json:"avg_score"`
}

// AnalyzeBatch scores every account in order. Output is one-to-one with the
// input; records are independent so the only ordering guarantee needed is
// that position i of the result corresponds to position i of the input.
func (e *Engine) AnalyzeBatch(accounts []Account) []*Assessment {
	assessments := make([]*Assessment, len(accounts))
	for i, account := range accounts {
		assessments[i] = e.Score(account)
	}
	return assessments
}

// GetRiskDistribution tallies assessments per band and averages the scores.
func GetRiskDistribution(assessments []*Assessment) Distribution {
	dist := Distribution{Total: len(assessments)}
	if len(assessments) == 0 {
		return dist
	}

	sum := 0
	for _, a := range assessments {
		sum += a.RiskScore
		switch a.RiskLevel {
		case HighRisk:
			dist.HighRisk++
		case ModerateRisk:
			dist.ModerateRisk++
		default:
			dist.LowRisk++
		}
	}
	dist.AvgScore = float64(sum) / float64(len(assessments))
	return dist
}
