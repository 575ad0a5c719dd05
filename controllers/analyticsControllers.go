package controllers

import (
	"context"
	"log"
	"net/http"

	"legal-shield/configuration"

	"github.com/gin-gonic/gin"
)

// Metrics tracked as plain Redis counters. Counts are best effort and carry
// no consistency guarantees.
var trackedMetrics = []string{
	"page_views",
	"consultations_requested",
	"bookings_confirmed",
	"case_analyses",
	"challenge_attempts",
}

const metricKeyPrefix = "analytics:"

// IncrMetric bumps a counter; a missing Redis client is not an error.
func IncrMetric(name string) {
	if configuration.Client == nil {
		return
	}
	if err := configuration.Client.Incr(context.Background(), metricKeyPrefix+name).Err(); err != nil {
		log.Println("Failed to increment metric:", err)
	}
}

// TrackPageView counts a marketing page hit.
func TrackPageView(c *gin.Context) {
	IncrMetric("page_views")
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetAnalytics returns a snapshot of all tracked counters.
func GetAnalytics(c *gin.Context) {
	keys := make([]string, len(trackedMetrics))
	for i, m := range trackedMetrics {
		keys[i] = metricKeyPrefix + m
	}

	values, err := configuration.Client.MGet(context.Background(), keys...).Result()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch analytics",
		})
		return
	}

	counters := make(map[string]interface{}, len(trackedMetrics))
	for i, m := range trackedMetrics {
		if values[i] == nil {
			counters[m] = "0"
		} else {
			counters[m] = values[i]
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"counters": counters,
	})
}
