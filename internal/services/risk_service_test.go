package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskwatch/account-risk-api/internal/errors"
	"github.com/riskwatch/account-risk-api/internal/generator"
	"github.com/riskwatch/account-risk-api/internal/risk"
	"github.com/riskwatch/account-risk-api/internal/storage"
)

func newTestService() RiskService {
	return newRiskService(risk.NewEngine(), generator.NewSeeded(42), storage.NewMemoryStore(10))
}

func validAccount(id string) risk.Account {
	return risk.Account{
		AccountID:          id,
		CreatedDate:        time.Now().AddDate(0, 0, -45),
		Followers:          250,
		Following:          150,
		Posts:              60,
		PostsPerDay:        1.33,
		BioLength:          180,
		HasProfilePic:      true,
		MessagesSentPerDay: 8,
		RepetitiveContent:  35,
		SuspiciousLinks:    5,
	}
}

func TestRiskService_AssessAccount(t *testing.T) {
	svc := newTestService()

	assessment, err := svc.AssessAccount(validAccount("acct-1"))
	require.NoError(t, err)
	assert.Equal(t, "acct-1", assessment.AccountID)
	assert.Equal(t, risk.LowRisk, assessment.RiskLevel)
	assert.GreaterOrEqual(t, assessment.RiskScore, 0)
	assert.LessOrEqual(t, assessment.RiskScore, 100)
}

func TestRiskService_AssessAccountRejectsInvalid(t *testing.T) {
	svc := newTestService()

	account := validAccount("bad")
	account.Followers = -5

	_, err := svc.AssessAccount(account)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidAccountData))
}

func TestRiskService_AssessBatchSkipsInvalid(t *testing.T) {
	svc := newTestService()

	bad := validAccount("broken")
	bad.RepetitiveContent = 150

	batch, err := svc.AssessBatch([]risk.Account{
		validAccount("good-1"),
		bad,
		validAccount("good-2"),
	})
	require.NoError(t, err)

	assert.Len(t, batch.Assessments, 2, "invalid record must not abort the batch")
	require.Len(t, batch.Skipped, 1)
	assert.Equal(t, "broken", batch.Skipped[0].AccountID)
	assert.Equal(t, 2, batch.Summary.Total)

	// Order preserved among the valid records
	assert.Equal(t, "good-1", batch.Assessments[0].AccountID)
	assert.Equal(t, "good-2", batch.Assessments[1].AccountID)
}

func TestRiskService_AssessBatchEmpty(t *testing.T) {
	svc := newTestService()

	_, err := svc.AssessBatch(nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidInput))
}

func TestRiskService_GenerateAndAssess(t *testing.T) {
	svc := newTestService()

	batch, err := svc.GenerateAndAssess(30)
	require.NoError(t, err)

	assert.Equal(t, "generated", batch.Source)
	assert.Len(t, batch.Assessments, 30)
	assert.Equal(t, 30, batch.Summary.Total)
	assert.Equal(t, batch.Summary.Total,
		batch.Summary.HighRisk+batch.Summary.ModerateRisk+batch.Summary.LowRisk)

	// Stored and retrievable
	stored, err := svc.GetBatch(batch.ID)
	require.NoError(t, err)
	assert.Equal(t, batch.ID, stored.ID)
}

func TestRiskService_GenerateAndAssessRejectsNonPositive(t *testing.T) {
	svc := newTestService()

	_, err := svc.GenerateAndAssess(0)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidInput))
}

func TestRiskService_DemoAssessments(t *testing.T) {
	svc := newTestService()

	batch, err := svc.DemoAssessments()
	require.NoError(t, err)

	assert.Equal(t, "demo", batch.Source)
	require.Len(t, batch.Assessments, 3)
	assert.Equal(t, "demo_coffee_shop", batch.Assessments[0].AccountID)
	assert.Equal(t, "demo_scammer", batch.Assessments[2].AccountID)
	assert.Equal(t, risk.HighRisk, batch.Assessments[2].RiskLevel)
	assert.Equal(t, 100, batch.Assessments[2].RiskScore)

	// Demo batches are not stored
	_, err = svc.GetBatch(batch.ID)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))
}

func TestRiskService_ListBatches(t *testing.T) {
	svc := newTestService()

	first, err := svc.GenerateAndAssess(5)
	require.NoError(t, err)
	second, err := svc.GenerateAndAssess(5)
	require.NoError(t, err)

	batches, err := svc.ListBatches()
	require.NoError(t, err)
	require.Len(t, batches, 2)
	assert.Equal(t, second.ID, batches[0].ID, "newest first")
	assert.Equal(t, first.ID, batches[1].ID)
}

func TestRiskService_GetBatchNotFound(t *testing.T) {
	svc := newTestService()

	_, err := svc.GetBatch("missing")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))
}
