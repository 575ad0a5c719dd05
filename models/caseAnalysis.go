package models

import "time"

type CaseAnalysis struct {
	AnalysisID      uint   `gorm:"primaryKey"`
	UserID          int    `json:"user_id"`
	IssueType       string `json:"issue_type"`
	CaseDetails     string `json:"case_details"`
	Summary         string `json:"summary"`
	Recommendations string `json:"recommendations"`
	RiskLevel       string `json:"risk_level"` // low, medium or high
	Source          string `json:"source"`     // model name or "fallback"
	CreatedAt       time.Time `gorm:"autoCreateTime"`
}
