package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/riskwatch/account-risk-api/internal/errors"
	"github.com/riskwatch/account-risk-api/internal/risk"
	"github.com/riskwatch/account-risk-api/internal/services"
)

// RiskHandler handles account risk assessment operations
type RiskHandler struct {
	riskService  services.RiskService
	maxBatchSize int
}

// NewRiskHandler creates a new risk handler with service injection
func NewRiskHandler(riskService services.RiskService, maxBatchSize int) *RiskHandler {
	return &RiskHandler{
		riskService:  riskService,
		maxBatchSize: maxBatchSize,
	}
}

// assessRequest is an Account plus an optional age shorthand. Manual entry
// forms send account_age_days instead of a created_date timestamp.
type assessRequest struct {
	risk.Account
	AccountAgeDays *int `json:"account_age_days,omitempty"`
}

func (r *assessRequest) account() risk.Account {
	account := r.Account
	if account.CreatedDate.IsZero() && r.AccountAgeDays != nil {
		account.CreatedDate = time.Now().AddDate(0, 0, -*r.AccountAgeDays)
	}
	return account
}

// AssessAccount scores a single account
func (h *RiskHandler) AssessAccount(c *gin.Context) {
	var req assessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account format: " + err.Error()})
		return
	}

	assessment, err := h.riskService.AssessAccount(req.account())
	if err != nil {
		respondError(c, err, "Failed to assess account")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"assessment": assessment,
		"timestamp":  time.Now(),
	})
}

// batchRequest carries the accounts for a batch assessment
type batchRequest struct {
	Accounts []assessRequest `json:"accounts" binding:"required"`
}

// AssessBatch scores a collection of accounts and stores the result
func (h *RiskHandler) AssessBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid batch format: " + err.Error()})
		return
	}
	if len(req.Accounts) > h.maxBatchSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Batch too large", "max_batch_size": h.maxBatchSize})
		return
	}

	accounts := make([]risk.Account, len(req.Accounts))
	for i := range req.Accounts {
		accounts[i] = req.Accounts[i].account()
	}

	batch, err := h.riskService.AssessBatch(accounts)
	if err != nil {
		respondError(c, err, "Failed to assess batch")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"batch":     batch,
		"timestamp": time.Now(),
	})
}

// GetDemoAssessments scores the three showcase accounts
func (h *RiskHandler) GetDemoAssessments(c *gin.Context) {
	batch, err := h.riskService.DemoAssessments()
	if err != nil {
		respondError(c, err, "Failed to assess demo accounts")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"batch":     batch,
		"timestamp": time.Now(),
	})
}

// generateRequest carries the size of a synthetic batch
type generateRequest struct {
	Count int `json:"count"`
}

// GenerateBatch creates and scores a synthetic batch
func (h *RiskHandler) GenerateBatch(c *gin.Context) {
	req := generateRequest{Count: 50}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if req.Count > h.maxBatchSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Batch too large", "max_batch_size": h.maxBatchSize})
		return
	}

	batch, err := h.riskService.GenerateAndAssess(req.Count)
	if err != nil {
		respondError(c, err, "Failed to generate batch")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"batch":     batch,
		"timestamp": time.Now(),
	})
}

// ListBatches returns stored batch results, most recent first
func (h *RiskHandler) ListBatches(c *gin.Context) {
	batches, err := h.riskService.ListBatches()
	if err != nil {
		respondError(c, err, "Failed to list batches")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"batches":   batches,
		"timestamp": time.Now(),
	})
}

// GetBatch returns a stored batch by ID
func (h *RiskHandler) GetBatch(c *gin.Context) {
	batch, err := h.riskService.GetBatch(c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get batch")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"batch":     batch,
		"timestamp": time.Now(),
	})
}

// GetBatchSummary returns the band distribution and a score histogram for a
// stored batch, sized for chart rendering.
func (h *RiskHandler) GetBatchSummary(c *gin.Context) {
	batch, err := h.riskService.GetBatch(c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get batch")
		return
	}

	bins := 10
	if raw := c.Query("bins"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 100 {
			bins = parsed
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"batch_id":  batch.ID,
		"summary":   batch.Summary,
		"histogram": scoreHistogram(batch.Assessments, bins),
		"timestamp": time.Now(),
	})
}

// histogramBucket is one bar of a score histogram
type histogramBucket struct {
	From  int `json:"from"`
	To    int `json:"to"`
	Count int `json:"count"`
}

// scoreHistogram buckets scores over [0,100]. The top bucket is inclusive of
// 100 so every score lands somewhere.
func scoreHistogram(assessments []*risk.Assessment, bins int) []histogramBucket {
	width := 100 / bins
	if width < 1 {
		width = 1
	}
	buckets := make([]histogramBucket, bins)
	for i := range buckets {
		buckets[i].From = i * width
		buckets[i].To = (i + 1) * width
	}
	buckets[bins-1].To = 100

	for _, a := range assessments {
		idx := a.RiskScore / width
		if idx >= bins {
			idx = bins - 1
		}
		buckets[idx].Count++
	}
	return buckets
}

// respondError maps service errors to HTTP status codes
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.IsCode(err, errors.ErrCodeInvalidAccountData), errors.IsCode(err, errors.ErrCodeInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.IsCode(err, errors.ErrCodeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback + ": " + err.Error()})
	}
}
