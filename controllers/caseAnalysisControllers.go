package controllers

import (
	"net/http"

	"legal-shield/configuration"
	"legal-shield/models"
	"legal-shield/services"

	"github.com/gin-gonic/gin"
)

// Analyzer is the AI case analysis client; wired at startup.
var Analyzer *services.CaseAnalyzer

// AnalyzeCase runs the AI-assisted case analysis and persists the result.
func AnalyzeCase(c *gin.Context) {
	var req struct {
		IssueType   string `json:"issue_type" binding:"required"`
		CaseDetails string `json:"case_details" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := c.Get("userID")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	result, err := Analyzer.Analyze(c.Request.Context(), req.IssueType, req.CaseDetails)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze the case"})
		return
	}

	analysis := models.CaseAnalysis{
		UserID:          userID.(int),
		IssueType:       req.IssueType,
		CaseDetails:     req.CaseDetails,
		Summary:         result.Summary,
		Recommendations: result.Recommendations,
		RiskLevel:       result.RiskLevel,
		Source:          result.Source,
	}
	if err := configuration.DB.Create(&analysis).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save the analysis"})
		return
	}

	IncrMetric("case_analyses")
	c.JSON(http.StatusOK, gin.H{
		"Status": "Success",
		"data":   analysis,
	})
}

// GetCaseAnalysisHistory lists the caller's previous analyses.
func GetCaseAnalysisHistory(c *gin.Context) {
	userID, ok := c.Get("userID")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var analyses []models.CaseAnalysis
	if err := configuration.DB.Where("user_id = ?", userID.(int)).
		Order("created_at DESC").Find(&analyses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch analyses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status": "Success",
		"data":   analyses,
	})
}
