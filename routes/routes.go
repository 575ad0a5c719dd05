package routes

import (
	"legal-shield/authentication"
	"legal-shield/configuration"
	"legal-shield/controllers"
	"legal-shield/services"

	"github.com/gin-gonic/gin"
)

func SetupRoutes() *gin.Engine {
	//creates a new Gin engine instance with default configurations
	r := gin.Default()

	emergencyService := services.NewEmergencyService(configuration.DB, services.NewTwilioSender())
	emergencyController := controllers.NewEmergencyController(emergencyService)
	controllers.Analyzer = services.NewCaseAnalyzer()

	//public routes
	r.POST("/users/login", controllers.UserLogin)
	r.POST("/users/signup", controllers.UserSignup)
	r.POST("/users/verify", controllers.UserOtpVerify)
	r.GET("/attorneys", controllers.SearchAttorneys)
	r.GET("/attorneys/:id", controllers.GetAttorneyByID)
	r.GET("/subscription/plans", controllers.GetSubscriptionPlans)
	r.GET("/payment/success", controllers.PaymentSuccess)
	r.GET("/sitemap.xml", controllers.GetSitemap)
	r.GET("/robots.txt", controllers.GetRobots)
	r.POST("/track/pageview", controllers.TrackPageView)
	r.GET("/challenges", controllers.ListChallenges)
	r.GET("/challenges/leaderboard", controllers.GetLeaderboard)

	//emergency consultation routes; booking lookup stays public so a shared
	//reference works without an account
	r.POST("/emergency-consultation", emergencyController.RequestEmergencyConsultation)
	r.GET("/emergency-consultation/:reference", emergencyController.GetEmergencyBooking)

	user := r.Group("/user")
	user.Use(authentication.UserAuthMiddleware())
	{
		user.GET("/logout", controllers.UserLogout)
		user.POST("/confirm-emergency-booking", emergencyController.ConfirmEmergencyBooking)
		user.POST("/subscribe", controllers.CreateSubscription)
		user.POST("/case-analysis", controllers.AnalyzeCase)
		user.GET("/case-analysis/history", controllers.GetCaseAnalysisHistory)
		user.POST("/challenges/attempt", controllers.SubmitChallengeAttempt)
	}

	//Attorney routes
	r.POST("/attorney/signup", controllers.AttorneySignup)
	r.POST("/attorney/login", controllers.AttorneyLogin)

	attorneys := r.Group("/attorney")
	attorneys.Use(authentication.AttorneyAuthMiddleware())
	{
		attorneys.GET("/logout", controllers.AttorneyLogout)
		attorneys.POST("/update/availability", controllers.SaveAvailability)
		attorneys.POST("/update/emergency-availability", controllers.SetEmergencyAvailability)
		attorneys.POST("/emergency-consultation/:reference/status", emergencyController.UpdateEmergencyBookingStatus)
		attorneys.POST("/add/challenge", controllers.AddChallenge)
		attorneys.GET("/analytics", controllers.GetAnalytics)
	}

	return r
}
