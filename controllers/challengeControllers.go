package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"legal-shield/configuration"
	"legal-shield/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const leaderboardKey = "challenges:leaderboard"

// ListChallenges returns the active challenge catalog, optionally filtered
// by category. Correct answers are stripped from the payload.
func ListChallenges(c *gin.Context) {
	query := configuration.DB.Where("is_active = ?", true)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var challenges []models.LegalChallenge
	if err := query.Find(&challenges).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch challenges"})
		return
	}
	for i := range challenges {
		challenges[i].CorrectAnswer = ""
	}

	c.JSON(http.StatusOK, gin.H{
		"Status": "Success",
		"data":   challenges,
	})
}

// AddChallenge creates a new challenge (attorney-curated content).
func AddChallenge(c *gin.Context) {
	var challenge models.LegalChallenge
	if err := c.BindJSON(&challenge); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validate.Struct(challenge); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"Status":  "Failed",
			"message": "Please fill all the mandatory fields",
			"data":    err.Error(),
		})
		return
	}

	challenge.IsActive = true
	if challenge.Points <= 0 {
		challenge.Points = 10
	}

	if err := configuration.DB.Create(&challenge).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create challenge"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"Status": "Success", "data": challenge})
}

// SubmitChallengeAttempt grades an answer and awards leaderboard points.
func SubmitChallengeAttempt(c *gin.Context) {
	var req struct {
		ChallengeID uint   `json:"challenge_id" binding:"required"`
		Answer      string `json:"answer" binding:"required"`
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

	var challenge models.LegalChallenge
	if err := configuration.DB.First(&challenge, req.ChallengeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Challenge not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch challenge"})
		return
	}

	correct := strings.EqualFold(strings.TrimSpace(req.Answer), strings.TrimSpace(challenge.CorrectAnswer))
	attempt := models.ChallengeAttempt{
		ChallengeID: challenge.ChallengeID,
		UserID:      userID.(int),
		Answer:      req.Answer,
		Correct:     correct,
	}
	if correct {
		attempt.PointsEarned = challenge.Points
	}

	if err := configuration.DB.Create(&attempt).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record attempt"})
		return
	}

	IncrMetric("challenge_attempts")
	if correct && configuration.Client != nil {
		member := fmt.Sprintf("user:%d", attempt.UserID)
		configuration.Client.ZIncrBy(context.Background(), leaderboardKey, float64(attempt.PointsEarned), member)
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"correct": correct,
		"points":  attempt.PointsEarned,
	})
}

// GetLeaderboard returns the top ten point earners.
func GetLeaderboard(c *gin.Context) {
	entries, err := configuration.Client.ZRevRangeWithScores(context.Background(), leaderboardKey, 0, 9).Result()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leaderboard"})
		return
	}

	type leaderboardEntry struct {
		Member string  `json:"member"`
		Points float64 `json:"points"`
	}
	board := make([]leaderboardEntry, 0, len(entries))
	for _, e := range entries {
		member, _ := e.Member.(string)
		board = append(board, leaderboardEntry{Member: member, Points: e.Score})
	}

	c.JSON(http.StatusOK, gin.H{
		"Status": "Success",
		"data":   board,
	})
}
