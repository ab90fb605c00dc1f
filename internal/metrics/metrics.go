// Package metrics provides Prometheus instrumentation for the risk service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/riskwatch/account-risk-api/internal/risk"
)

var (
	// AssessmentsTotal counts scored accounts by resulting risk band.
	AssessmentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "riskwatch",
			Name:      "assessments_total",
			Help:      "Total account assessments by risk level.",
		},
		[]string{"risk_level"},
	)

	// RiskScores observes the distribution of computed risk scores.
	RiskScores = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "riskwatch",
			Name:      "risk_score",
			Help:      "Distribution of computed risk scores.",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		},
	)

	// BatchSizes observes how many accounts arrive per batch request.
	BatchSizes = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "riskwatch",
			Name:      "batch_size",
			Help:      "Number of accounts per analyzed batch.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 11),
		},
	)

	// SkippedAccountsTotal counts batch entries rejected by validation.
	SkippedAccountsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "riskwatch",
			Name:      "skipped_accounts_total",
			Help:      "Total batch entries skipped due to invalid data.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		AssessmentsTotal,
		RiskScores,
		BatchSizes,
		SkippedAccountsTotal,
	)
}

// ObserveAssessment records one scored account.
func ObserveAssessment(a *risk.Assessment) {
	AssessmentsTotal.WithLabelValues(string(a.RiskLevel)).Inc()
	RiskScores.Observe(float64(a.RiskScore))
}
