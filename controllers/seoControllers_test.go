package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"legal-shield/configuration"
)

func useMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	configuration.DB = db
	t.Cleanup(func() { configuration.DB = nil })
	return mock
}

func TestGetSitemap(t *testing.T) {
	mock := useMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "attorneys"`).
		WithArgs(true, "true").
		WillReturnRows(sqlmock.NewRows([]string{"attorney_id", "name", "is_active", "verified"}).
			AddRow(2, "Maj. Carter (Ret.)", true, "true"))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/sitemap.xml", GetSitemap)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/xml", w.Header().Get("Content-Type"))

	body := w.Body.String()
	assert.Contains(t, body, "<?xml")
	assert.Contains(t, body, "https://www.legalshield.example.com/emergency-consultation")
	assert.Contains(t, body, "https://www.legalshield.example.com/attorneys/2")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRobots(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/robots.txt", GetRobots)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/robots.txt", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sitemap: https://www.legalshield.example.com/sitemap.xml")
}
