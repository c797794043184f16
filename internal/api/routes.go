package api

import (
	"time"

	"aebox-api/internal/config"
	"aebox-api/internal/database"
	"aebox-api/internal/services"

	"github.com/gin-gonic/gin"
)

var (
	paymentProvider     services.PaymentProvider
	subscriptionService *services.SubscriptionService
	replayProtection    *services.ReplayProtection
	openAIService       *services.OpenAIService
	chatLimiter         *services.RateLimiter
)

// SetupRoutes wires services and registers all routes
func SetupRoutes(r *gin.Engine) {
	paymentProvider = services.NewStripeService()
	subscriptionService = services.NewSubscriptionService(paymentProvider, services.NewBrevoService())
	replayProtection = services.NewReplayProtection(database.GetRedis())
	openAIService = services.NewOpenAIService()
	chatLimiter = services.NewRateLimiter(database.GetRedis(),
		time.Duration(config.AppConfig.ChatRateLimitSeconds)*time.Second)

	api := r.Group("/api")
	{
		users := api.Group("/users")
		{
			users.GET("", GetAllUsers)
			users.GET("/:id", GetUser)
			users.POST("", CreateUser)
			users.PUT("/:id", UpdateUser)
			users.DELETE("/:id", DeleteUser)
		}

		spaces := api.Group("/spaces")
		{
			spaces.GET("", GetAllSpaces)
			spaces.GET("/:id", GetSpace)
			spaces.POST("", CreateSpace)
			spaces.PUT("/:id", UpdateSpace)
			spaces.DELETE("/:id", DeleteSpace)
		}

		applications := api.Group("/applications")
		{
			applications.GET("", GetAllApplications)
			applications.GET("/:id", GetApplication)
			applications.POST("", CreateApplication)
			applications.PUT("/:id", UpdateApplication)
			applications.DELETE("/:id", DeleteApplication)
			applications.GET("/box/:box_id", GetApplicationsByBox)
		}

		boxes := api.Group("/boxes")
		{
			boxes.PUT("/:box_id/order", ReorderBox)
		}

		sessions := api.Group("/sessions")
		{
			sessions.GET("", GetAllSessions)
			sessions.GET("/:id", GetSession)
			sessions.POST("", CreateSession)
			sessions.PUT("/:id", UpdateSession)
			sessions.DELETE("/:id", DeleteSession)
		}

		devices := api.Group("/devices")
		{
			devices.GET("", GetAllDeviceSyncs)
			devices.GET("/:id", GetDeviceSync)
			devices.POST("", CreateDeviceSync)
			devices.PUT("/:id", UpdateDeviceSync)
			devices.DELETE("/:id", DeleteDeviceSync)
		}

		subscriptions := api.Group("/subscriptions")
		{
			// gin rejects static children next to a wildcard in the same
			// method tree, so "webhook" and "checkout" are reserved names
			// dispatched out of the :username route.
			subscriptions.POST("/:username", func(c *gin.Context) {
				switch c.Param("username") {
				case "webhook":
					StripeWebhook(c)
				case "checkout":
					CreateCheckoutSession(c)
				default:
					UpsertSubscription(c)
				}
			})
			subscriptions.GET("/:username", GetSubscription)
			subscriptions.PUT("/:username", UpsertSubscription)
			subscriptions.DELETE("/:username", DeleteSubscription)
			subscriptions.GET("/:username/payments", GetPaymentHistory)
		}

		openai := api.Group("/openai")
		{
			openai.POST("/chat", ChatWithOpenAI)
		}
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "aebox-api",
		})
	})
}
