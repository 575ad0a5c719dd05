package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackAnalysisRiskLevels(t *testing.T) {
	tests := []struct {
		name    string
		issue   string
		details string
		risk    string
	}{
		{"court-martial is high", "court-martial", "summary court-martial pending", "high"},
		{"awol in details is high", "administrative", "client went AWOL for two weeks", "high"},
		{"article 15 is medium", "article 15", "received NJP paperwork", "medium"},
		{"clearance is medium", "security", "clearance suspended pending review", "medium"},
		{"unmatched text is low", "family-law", "custody during deployment", "low"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := fallbackAnalysis(tt.issue, tt.details)
			assert.Equal(t, tt.risk, result.RiskLevel)
			assert.Equal(t, "fallback", result.Source)
			assert.NotEmpty(t, result.Summary)
			assert.NotEmpty(t, result.Recommendations)
		})
	}
}

func TestAnalyzeUsesCompletionEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req oaiChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		require.Len(t, req.Messages, 2)

		content, _ := json.Marshal(AnalysisResult{
			Summary:         "Client faces a special court-martial.",
			Recommendations: "Retain counsel before the Article 32 hearing.",
			RiskLevel:       "high",
		})
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": string(content)}},
			},
		})
	}))
	defer srv.Close()

	analyzer := &CaseAnalyzer{
		baseURL:    srv.URL,
		apiKey:     "test-key",
		model:      "test-model",
		httpClient: srv.Client(),
	}

	result, err := analyzer.Analyze(context.Background(), "court-martial", "charge sheet served yesterday")
	require.NoError(t, err)
	assert.Equal(t, "Client faces a special court-martial.", result.Summary)
	assert.Equal(t, "high", result.RiskLevel)
	assert.Equal(t, "test-model", result.Source)
}

func TestAnalyzeFallsBackOnProviderFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream overloaded", http.StatusBadGateway)
	}))
	defer srv.Close()

	analyzer := &CaseAnalyzer{
		baseURL:    srv.URL,
		model:      "test-model",
		httpClient: srv.Client(),
	}

	result, err := analyzer.Analyze(context.Background(), "court-martial", "charge sheet served")
	require.NoError(t, err)
	assert.Equal(t, "fallback", result.Source)
	assert.Equal(t, "high", result.RiskLevel)
}

func TestAnalyzeWithoutEndpointUsesFallback(t *testing.T) {
	analyzer := &CaseAnalyzer{}
	result, err := analyzer.Analyze(context.Background(), "finance", "debt collection letter")
	require.NoError(t, err)
	assert.Equal(t, "fallback", result.Source)
	assert.Equal(t, "low", result.RiskLevel)
}
