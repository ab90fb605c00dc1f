package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/riskwatch/account-risk-api/internal/errors"
	"github.com/riskwatch/account-risk-api/internal/generator"
	"github.com/riskwatch/account-risk-api/internal/logger"
	"github.com/riskwatch/account-risk-api/internal/metrics"
	"github.com/riskwatch/account-risk-api/internal/risk"
	"github.com/riskwatch/account-risk-api/internal/storage"
)

// riskServiceImpl implements RiskService
type riskServiceImpl struct {
	engine *risk.Engine
	store  storage.BatchStore
	logger logger.Logger

	// generator access is serialized; math/rand sources are not safe for
	// concurrent use
	genMu sync.Mutex
	gen   *generator.Generator
}

// newRiskService creates a new risk service implementation
func newRiskService(engine *risk.Engine, gen *generator.Generator, store storage.BatchStore) RiskService {
	return &riskServiceImpl{
		engine: engine,
		gen:    gen,
		store:  store,
		logger: logger.NewSimpleLogger(),
	}
}

// AssessAccount validates one account and scores it.
func (s *riskServiceImpl) AssessAccount(account risk.Account) (*risk.Assessment, error) {
	if err := account.Validate(); err != nil {
		return nil, err
	}

	assessment := s.engine.Score(account)
	metrics.ObserveAssessment(assessment)

	s.logger.Info("account assessed",
		"account_id", assessment.AccountID,
		"risk_score", assessment.RiskScore,
		"risk_level", assessment.RiskLevel)
	return assessment, nil
}

// AssessBatch scores a collection of accounts. One malformed record does not
// abort the batch: it is skipped and reported alongside the results.
func (s *riskServiceImpl) AssessBatch(accounts []risk.Account) (*storage.Batch, error) {
	if len(accounts) == 0 {
		return nil, errors.InvalidInput("batch contains no accounts", nil)
	}
	return s.assessAndStore(accounts, "upload")
}

// GenerateAndAssess creates count synthetic accounts and scores them.
func (s *riskServiceImpl) GenerateAndAssess(count int) (*storage.Batch, error) {
	if count <= 0 {
		return nil, errors.InvalidInput("count must be positive", nil)
	}

	s.genMu.Lock()
	accounts := s.gen.Generate(count)
	s.genMu.Unlock()

	return s.assessAndStore(accounts, "generated")
}

// DemoAssessments scores the three fixed showcase accounts. Demo results are
// computed fresh on each call and not stored.
func (s *riskServiceImpl) DemoAssessments() (*storage.Batch, error) {
	accounts := generator.DemoAccounts(time.Now())
	assessments := s.engine.AnalyzeBatch(accounts)
	for _, a := range assessments {
		metrics.ObserveAssessment(a)
	}

	return &storage.Batch{
		ID:          uuid.NewString(),
		Source:      "demo",
		CreatedAt:   time.Now(),
		Assessments: assessments,
		Summary:     risk.GetRiskDistribution(assessments),
	}, nil
}

// GetBatch returns a stored batch by ID.
func (s *riskServiceImpl) GetBatch(id string) (*storage.Batch, error) {
	batch, err := s.store.Get(id)
	if err != nil {
		return nil, errors.NotFound(fmt.Sprintf("batch %s not found", id), err)
	}
	return batch, nil
}

// ListBatches returns stored batches, most recent first.
func (s *riskServiceImpl) ListBatches() ([]*storage.Batch, error) {
	batches, err := s.store.List()
	if err != nil {
		return nil, errors.ServiceError("failed to list batches", err).WithOperation("ListBatches")
	}
	return batches, nil
}

func (s *riskServiceImpl) assessAndStore(accounts []risk.Account, source string) (*storage.Batch, error) {
	valid := make([]risk.Account, 0, len(accounts))
	var skipped []storage.SkippedAccount

	for _, account := range accounts {
		if err := account.Validate(); err != nil {
			skipped = append(skipped, storage.SkippedAccount{
				AccountID: account.AccountID,
				Reason:    err.Error(),
			})
			metrics.SkippedAccountsTotal.Inc()
			s.logger.Warn("skipping invalid account", "account_id", account.AccountID, "reason", err.Error())
			continue
		}
		valid = append(valid, account)
	}

	assessments := s.engine.AnalyzeBatch(valid)
	for _, a := range assessments {
		metrics.ObserveAssessment(a)
	}
	metrics.BatchSizes.Observe(float64(len(accounts)))

	batch := &storage.Batch{
		ID:          uuid.NewString(),
		Source:      source,
		CreatedAt:   time.Now(),
		Assessments: assessments,
		Summary:     risk.GetRiskDistribution(assessments),
		Skipped:     skipped,
	}

	if err := s.store.Save(batch); err != nil {
		return nil, errors.ServiceError("failed to store batch", err).WithOperation("AssessBatch")
	}

	s.logger.Info("batch assessed",
		"batch_id", batch.ID,
		"source", source,
		"scored", len(assessments),
		"skipped", len(skipped),
		"avg_score", batch.Summary.AvgScore)
	return batch, nil
}
