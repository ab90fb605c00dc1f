package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/riskwatch/account-risk-api/internal/errors"
	"github.com/riskwatch/account-risk-api/internal/risk"
	"github.com/riskwatch/account-risk-api/internal/storage"
)

// Mock risk service for testing
type mockRiskService struct {
	batches     map[string]*storage.Batch
	shouldError bool
}

func newMockRiskService() *mockRiskService {
	return &mockRiskService{batches: make(map[string]*storage.Batch)}
}

func (m *mockRiskService) AssessAccount(account risk.Account) (*risk.Assessment, error) {
	if m.shouldError {
		return nil, errors.ServiceError("mock error", nil)
	}
	if err := account.Validate(); err != nil {
		return nil, err
	}
	return &risk.Assessment{
		AccountID:      account.AccountID,
		RiskScore:      11,
		RiskLevel:      risk.LowRisk,
		RiskColor:      "🟢",
		Recommendation: "Activity appears normal. Account likely legitimate.",
		Explanations:   []string{"⚠️ Relatively new account (less than 3 months)"},
		AssessedAt:     time.Now(),
	}, nil
}

func (m *mockRiskService) AssessBatch(accounts []risk.Account) (*storage.Batch, error) {
	if m.shouldError {
		return nil, errors.ServiceError("mock error", nil)
	}
	assessments := make([]*risk.Assessment, len(accounts))
	for i, account := range accounts {
		assessments[i] = &risk.Assessment{AccountID: account.AccountID, RiskLevel: risk.LowRisk}
	}
	batch := &storage.Batch{
		ID:          "batch-mock",
		Source:      "upload",
		CreatedAt:   time.Now(),
		Assessments: assessments,
		Summary:     risk.GetRiskDistribution(assessments),
	}
	m.batches[batch.ID] = batch
	return batch, nil
}

func (m *mockRiskService) GenerateAndAssess(count int) (*storage.Batch, error) {
	if m.shouldError {
		return nil, errors.ServiceError("mock error", nil)
	}
	if count <= 0 {
		return nil, errors.InvalidInput("count must be positive", nil)
	}
	assessments := make([]*risk.Assessment, count)
	for i := range assessments {
		assessments[i] = &risk.Assessment{
			AccountID: fmt.Sprintf("gen_%d", i),
			RiskScore: 50,
			RiskLevel: risk.ModerateRisk,
		}
	}
	batch := &storage.Batch{
		ID:          "batch-generated",
		Source:      "generated",
		CreatedAt:   time.Now(),
		Assessments: assessments,
		Summary:     risk.GetRiskDistribution(assessments),
	}
	m.batches[batch.ID] = batch
	return batch, nil
}

func (m *mockRiskService) DemoAssessments() (*storage.Batch, error) {
	if m.shouldError {
		return nil, errors.ServiceError("mock error", nil)
	}
	return &storage.Batch{
		ID:     "batch-demo",
		Source: "demo",
		Assessments: []*risk.Assessment{
			{AccountID: "demo_coffee_shop", RiskLevel: risk.LowRisk},
			{AccountID: "demo_influencer", RiskLevel: risk.LowRisk},
			{AccountID: "demo_scammer", RiskScore: 100, RiskLevel: risk.HighRisk},
		},
	}, nil
}

func (m *mockRiskService) GetBatch(id string) (*storage.Batch, error) {
	if m.shouldError {
		return nil, errors.ServiceError("mock error", nil)
	}
	batch, exists := m.batches[id]
	if !exists {
		return nil, errors.NotFound("batch "+id+" not found", nil)
	}
	return batch, nil
}

func (m *mockRiskService) ListBatches() ([]*storage.Batch, error) {
	if m.shouldError {
		return nil, errors.ServiceError("mock error", nil)
	}
	result := make([]*storage.Batch, 0, len(m.batches))
	for _, batch := range m.batches {
		result = append(result, batch)
	}
	return result, nil
}

func setupTestRouter(mockService *mockRiskService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewRiskHandler(mockService, 100)

	router := gin.New()
	router.POST("/assess", handler.AssessAccount)
	router.POST("/assess/batch", handler.AssessBatch)
	router.GET("/demo", handler.GetDemoAssessments)
	router.POST("/batches/generate", handler.GenerateBatch)
	router.GET("/batches", handler.ListBatches)
	router.GET("/batches/:id", handler.GetBatch)
	router.GET("/batches/:id/summary", handler.GetBatchSummary)
	return router
}

func TestRiskHandler_AssessAccount(t *testing.T) {
	mockService := newMockRiskService()
	router := setupTestRouter(mockService)

	account := map[string]interface{}{
		"account_id":            "acct-1",
		"created_date":          time.Now().AddDate(0, 0, -45).Format(time.RFC3339),
		"followers":             250,
		"following":             150,
		"posts_per_day":         1.33,
		"bio_length":            180,
		"has_profile_pic":       true,
		"messages_sent_per_day": 8,
	}
	body, _ := json.Marshal(account)
	req, _ := http.NewRequest("POST", "/assess", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var response map[string]interface{}
	if err := json.Unmarshal(resp.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	assessment, exists := response["assessment"].(map[string]interface{})
	if !exists {
		t.Fatal("Expected 'assessment' field in response")
	}
	if assessment["account_id"] != "acct-1" {
		t.Errorf("Expected account_id 'acct-1', got %v", assessment["account_id"])
	}

	// Error case
	mockService.shouldError = true
	req, _ = http.NewRequest("POST", "/assess", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500 for error case, got %d", resp.Code)
	}
}

func TestRiskHandler_AssessAccountAgeShorthand(t *testing.T) {
	router := setupTestRouter(newMockRiskService())

	// No created_date; account_age_days stands in for it
	account := map[string]interface{}{
		"account_id":       "acct-age",
		"account_age_days": 45,
		"followers":        100,
		"following":        50,
	}
	body, _ := json.Marshal(account)
	req, _ := http.NewRequest("POST", "/assess", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Errorf("Expected status 200 with age shorthand, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestRiskHandler_AssessAccountInvalidData(t *testing.T) {
	router := setupTestRouter(newMockRiskService())

	account := map[string]interface{}{
		"account_id": "bad",
		"followers":  -10,
	}
	body, _ := json.Marshal(account)
	req, _ := http.NewRequest("POST", "/assess", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for invalid account data, got %d", resp.Code)
	}
}

func TestRiskHandler_AssessAccountInvalidJSON(t *testing.T) {
	router := setupTestRouter(newMockRiskService())

	req, _ := http.NewRequest("POST", "/assess", bytes.NewBufferString("{invalid json"))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for invalid JSON, got %d", resp.Code)
	}
}

func TestRiskHandler_AssessBatch(t *testing.T) {
	router := setupTestRouter(newMockRiskService())

	payload := map[string]interface{}{
		"accounts": []map[string]interface{}{
			{"account_id": "a1", "account_age_days": 100},
			{"account_id": "a2", "account_age_days": 400},
		},
	}
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", "/assess/batch", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var response map[string]interface{}
	if err := json.Unmarshal(resp.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	batch, exists := response["batch"].(map[string]interface{})
	if !exists {
		t.Fatal("Expected 'batch' field in response")
	}
	assessments, ok := batch["assessments"].([]interface{})
	if !ok || len(assessments) != 2 {
		t.Errorf("Expected 2 assessments, got %v", batch["assessments"])
	}
}

func TestRiskHandler_AssessBatchTooLarge(t *testing.T) {
	router := setupTestRouter(newMockRiskService())

	accounts := make([]map[string]interface{}, 101)
	for i := range accounts {
		accounts[i] = map[string]interface{}{"account_id": fmt.Sprintf("a%d", i)}
	}
	body, _ := json.Marshal(map[string]interface{}{"accounts": accounts})
	req, _ := http.NewRequest("POST", "/assess/batch", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for oversized batch, got %d", resp.Code)
	}
}

func TestRiskHandler_GetDemoAssessments(t *testing.T) {
	router := setupTestRouter(newMockRiskService())

	req, _ := http.NewRequest("GET", "/demo", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.Code)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(resp.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	batch := response["batch"].(map[string]interface{})
	assessments := batch["assessments"].([]interface{})
	if len(assessments) != 3 {
		t.Errorf("Expected 3 demo assessments, got %d", len(assessments))
	}
}

func TestRiskHandler_GenerateBatch(t *testing.T) {
	mockService := newMockRiskService()
	router := setupTestRouter(mockService)

	body, _ := json.Marshal(map[string]int{"count": 10})
	req, _ := http.NewRequest("POST", "/batches/generate", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	// Nonsense count is rejected
	body, _ = json.Marshal(map[string]int{"count": -3})
	req, _ = http.NewRequest("POST", "/batches/generate", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for negative count, got %d", resp.Code)
	}
}

func TestRiskHandler_GetBatch(t *testing.T) {
	mockService := newMockRiskService()
	router := setupTestRouter(mockService)

	// Seed a stored batch via generate
	body, _ := json.Marshal(map[string]int{"count": 5})
	req, _ := http.NewRequest("POST", "/batches/generate", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	req, _ = http.NewRequest("GET", "/batches/batch-generated", nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.Code)
	}

	// Missing batch
	req, _ = http.NewRequest("GET", "/batches/nonexistent", nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for missing batch, got %d", resp.Code)
	}
}

func TestRiskHandler_GetBatchSummary(t *testing.T) {
	mockService := newMockRiskService()
	router := setupTestRouter(mockService)

	body, _ := json.Marshal(map[string]int{"count": 10})
	req, _ := http.NewRequest("POST", "/batches/generate", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	req, _ = http.NewRequest("GET", "/batches/batch-generated/summary?bins=5", nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.Code)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(resp.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	histogram, ok := response["histogram"].([]interface{})
	if !ok || len(histogram) != 5 {
		t.Errorf("Expected 5 histogram buckets, got %v", response["histogram"])
	}
}

func TestScoreHistogram(t *testing.T) {
	assessments := []*risk.Assessment{
		{RiskScore: 0},
		{RiskScore: 9},
		{RiskScore: 10},
		{RiskScore: 55},
		{RiskScore: 100}, // top bucket is inclusive
	}

	buckets := scoreHistogram(assessments, 10)
	if len(buckets) != 10 {
		t.Fatalf("Expected 10 buckets, got %d", len(buckets))
	}

	if buckets[0].Count != 2 {
		t.Errorf("Expected 2 scores in [0,10), got %d", buckets[0].Count)
	}
	if buckets[1].Count != 1 {
		t.Errorf("Expected 1 score in [10,20), got %d", buckets[1].Count)
	}
	if buckets[5].Count != 1 {
		t.Errorf("Expected 1 score in [50,60), got %d", buckets[5].Count)
	}
	if buckets[9].Count != 1 {
		t.Errorf("Expected score 100 in the top bucket, got %d", buckets[9].Count)
	}

	total := 0
	for _, b := range buckets {
		total += b.Count
	}
	if total != len(assessments) {
		t.Errorf("Histogram counts sum to %d, expected %d", total, len(assessments))
	}
}
