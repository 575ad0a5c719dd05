package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legal-shield/configuration"
)

func TestTrackPageView(t *testing.T) {
	client, mock := redismock.NewClientMock()
	configuration.Client = client
	t.Cleanup(func() { configuration.Client = nil })

	mock.ExpectIncr("analytics:page_views").SetVal(1)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/track/pageview", TrackPageView)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/track/pageview", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrMetricWithoutRedis(t *testing.T) {
	configuration.Client = nil
	assert.NotPanics(t, func() { IncrMetric("page_views") })
}

func TestGetAnalytics(t *testing.T) {
	client, mock := redismock.NewClientMock()
	configuration.Client = client
	t.Cleanup(func() { configuration.Client = nil })

	mock.ExpectMGet(
		"analytics:page_views",
		"analytics:consultations_requested",
		"analytics:bookings_confirmed",
		"analytics:case_analyses",
		"analytics:challenge_attempts",
	).SetVal([]interface{}{"42", "7", nil, "3", nil})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/attorney/analytics", GetAnalytics)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/attorney/analytics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"page_views":"42"`)
	assert.Contains(t, w.Body.String(), `"bookings_confirmed":"0"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}
