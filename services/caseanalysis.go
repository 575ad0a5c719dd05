package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

// CaseAnalyzer produces an AI-assisted analysis of a legal issue. When no
// completion endpoint is configured it falls back to a deterministic
// keyword-based analysis so the endpoint always answers.
type CaseAnalyzer struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// AnalysisResult is the outcome of a case analysis.
type AnalysisResult struct {
	Summary         string `json:"summary"`
	Recommendations string `json:"recommendations"`
	RiskLevel       string `json:"risk_level"`
	Source          string `json:"source"`
}

// NewCaseAnalyzer reads AI_* environment variables. baseURL should include
// the /v1 prefix of an OpenAI-compatible endpoint; empty means fallback only.
func NewCaseAnalyzer() *CaseAnalyzer {
	return &CaseAnalyzer{
		baseURL: strings.TrimRight(strings.TrimSpace(os.Getenv("AI_BASE_URL")), "/"),
		apiKey:  strings.TrimSpace(os.Getenv("AI_API_KEY")),
		model:   strings.TrimSpace(os.Getenv("AI_MODEL")),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

const analysisSystemPrompt = "You are a military legal assistant. Summarize the case, " +
	"recommend next steps, and rate the risk as low, medium or high. " +
	"Respond with JSON: {\"summary\":..., \"recommendations\":..., \"risk_level\":...}."

// Analyze runs the completion call when configured, otherwise the fallback.
func (c *CaseAnalyzer) Analyze(ctx context.Context, issueType, caseDetails string) (*AnalysisResult, error) {
	if c.baseURL == "" || c.model == "" {
		return fallbackAnalysis(issueType, caseDetails), nil
	}

	userPrompt := fmt.Sprintf("Issue type: %s\nCase details: %s", issueType, caseDetails)
	reqBody := oaiChatRequest{
		Model: c.model,
		Messages: []oaiMessage{
			{Role: "system", Content: analysisSystemPrompt},
			{Role: "user", Content: userPrompt},
		},
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// The stub endpoint must keep answering when the provider is down.
		return fallbackAnalysis(issueType, caseDetails), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fallbackAnalysis(issueType, caseDetails), nil
	}

	var chatResp oaiChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return fallbackAnalysis(issueType, caseDetails), nil
	}
	if len(chatResp.Choices) == 0 {
		return fallbackAnalysis(issueType, caseDetails), nil
	}

	var parsed AnalysisResult
	content := strings.TrimSpace(chatResp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &parsed); err != nil || parsed.Summary == "" {
		return fallbackAnalysis(issueType, caseDetails), nil
	}
	parsed.Source = c.model
	return &parsed, nil
}

// riskKeywords drive the fallback risk rating.
var riskKeywords = map[string]string{
	"court-martial": "high",
	"desertion":     "high",
	"awol":          "high",
	"article 15":    "medium",
	"njp":           "medium",
	"clearance":     "medium",
	"separation":    "medium",
}

func fallbackAnalysis(issueType, caseDetails string) *AnalysisResult {
	risk := "low"
	text := strings.ToLower(issueType + " " + caseDetails)
	for keyword, level := range riskKeywords {
		if !strings.Contains(text, keyword) {
			continue
		}
		if level == "high" {
			risk = "high"
			break
		}
		risk = "medium"
	}

	return &AnalysisResult{
		Summary: fmt.Sprintf("Preliminary review of a %s matter. An attorney consultation is recommended to assess the specifics.", issueType),
		Recommendations: "Document the timeline of events, preserve all written orders and correspondence, " +
			"and do not make statements before speaking with counsel. Book a consultation through the attorney directory.",
		RiskLevel: risk,
		Source:    "fallback",
	}
}

// OpenAI-compatible request/response types.

type oaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type oaiChatRequest struct {
	Model    string       `json:"model"`
	Messages []oaiMessage `json:"messages"`
}

type oaiChatResponse struct {
	Choices []struct {
		Message oaiMessage `json:"message"`
	} `json:"choices"`
}
