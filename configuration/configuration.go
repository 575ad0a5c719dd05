package configuration

import (
	"legal-shield/models"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// hold connection to db
var DB *gorm.DB

// initializing db connection
func ConfigDB() {

	err1 := godotenv.Load(".env")
	if err1 != nil {
		log.Println("No .env file found, relying on environment variables")
	}
	dsn := os.Getenv("DB")
	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("Failed to connect to the database")
	}

	DB.AutoMigrate(
		&models.Attorney{},
		&models.AttorneyAvailability{},
		&models.User{},
		&models.EmergencyBooking{},
		&models.NotificationOutbox{},
		&models.Subscription{},
		&models.RazorPay{},
		&models.LegalChallenge{},
		&models.ChallengeAttempt{},
		&models.CaseAnalysis{},
	)
}
