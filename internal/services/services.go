package services

import (
	"github.com/riskwatch/account-risk-api/internal/generator"
	"github.com/riskwatch/account-risk-api/internal/risk"
	"github.com/riskwatch/account-risk-api/internal/storage"
	"github.com/riskwatch/account-risk-api/pkg/config"
)

// Services contains all application services
type Services struct {
	Risk RiskService
}

// RiskService defines the interface for risk assessment business logic
type RiskService interface {
	// Single-account assessment: validate then score.
	AssessAccount(account risk.Account) (*risk.Assessment, error)

	// Batch assessment with skip-and-report semantics: malformed records are
	// excluded and listed, valid records are scored in input order.
	AssessBatch(accounts []risk.Account) (*storage.Batch, error)

	// Synthetic workloads.
	GenerateAndAssess(count int) (*storage.Batch, error)
	DemoAssessments() (*storage.Batch, error)

	// Stored batch results.
	GetBatch(id string) (*storage.Batch, error)
	ListBatches() ([]*storage.Batch, error)
}

// NewServices creates a new Services instance with all dependencies
func NewServices(store storage.BatchStore, cfg *config.Config) *Services {
	var gen *generator.Generator
	if cfg.GeneratorSeed != 0 {
		gen = generator.NewSeeded(cfg.GeneratorSeed)
	} else {
		gen = generator.New()
	}

	return &Services{
		Risk: newRiskService(risk.NewEngine(), gen, store),
	}
}
