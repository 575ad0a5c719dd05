package models

import "time"

type LegalChallenge struct {
	ChallengeID   uint   `gorm:"primaryKey"`
	Title         string `json:"title" gorm:"not null" validate:"required"`
	Category      string `json:"category"` // ucmj, security-clearance, family-law ...
	Difficulty    string `json:"difficulty"`
	Points        int    `json:"points"`
	Question      string `json:"question" gorm:"not null" validate:"required"`
	CorrectAnswer string `json:"correct_answer" gorm:"not null" validate:"required"`
	IsActive      bool   `json:"is_active"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

type ChallengeAttempt struct {
	AttemptID    uint   `gorm:"primaryKey"`
	ChallengeID  uint   `json:"challenge_id"`
	UserID       int    `json:"user_id"`
	Answer       string `json:"answer"`
	Correct      bool   `json:"correct"`
	PointsEarned int    `json:"points_earned"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}
