package api

import (
	"net/http"

	"allball/practice-server/internal/billing"
	"allball/practice-server/internal/entitlement"
	"allball/practice-server/internal/media"
	"allball/practice-server/internal/runner"
	"allball/practice-server/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Services bundles everything the routes need. Kept as one struct so main.go
// stays readable as the app grows.
type Services struct {
	Players      service.PlayerService
	Drills       service.DrillService
	Sessions     service.SessionService
	Templates    service.TemplateService
	Settings     service.SettingsService
	Entitlements entitlement.Service
	Billing      billing.Service
	Prices       entitlement.PriceTable
	Media        media.VideoStorage // nil disables the media routes
	Runner       *runner.Runner
	Timer        *runner.PracticeTimer
	JWTSecret    string
	ClientOrigin string
}

func SetupRoutes(router *gin.Engine, svcs Services) {

	playerHandler := NewPlayerHandler(svcs.Players, svcs.Drills)
	drillHandler := NewDrillHandler(svcs.Drills)
	sessionHandler := NewSessionHandler(svcs.Sessions, svcs.Drills)
	templateHandler := NewTemplateHandler(svcs.Templates, svcs.Sessions)
	viewsHandler := NewViewsHandler(svcs.Sessions, svcs.Players)
	runnerHandler := NewRunnerHandler(svcs.Runner, svcs.Timer, svcs.Sessions)
	settingsHandler := NewSettingsHandler(svcs.Settings, svcs.Entitlements)
	billingHandler := NewBillingHandler(svcs.Billing, svcs.Entitlements, svcs.Prices)
	mediaHandler := NewMediaHandler(svcs.Media)

	authMiddleware := AuthMiddleware(svcs.JWTSecret, svcs.Entitlements)

	// The SPA is the only browser client.
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{svcs.ClientOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Stripe-Signature"},
		AllowCredentials: true,
	}))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Billing endpoints live at the root: the payment provider calls the
	// webhook directly and the checkout paths predate the versioned API.
	router.POST("/create-checkout-session", billingHandler.CreateCheckoutSession)
	router.POST("/create-portal-link", billingHandler.CreatePortalLink)
	router.POST("/webhook", billingHandler.Webhook)

	apiV1 := router.Group("/api/v1")
	apiV1.Use(authMiddleware)
	{
		// --- Roster ---
		playerGroup := apiV1.Group("/players")
		{
			playerGroup.GET("", playerHandler.ListPlayers)
			playerGroup.POST("", playerHandler.AddPlayer)
			playerGroup.DELETE("/:id", playerHandler.RemovePlayer)
			playerGroup.POST("/:id/performance", playerHandler.AddPerformanceRecord)
			playerGroup.GET("/:id/summary", RequireCapability(entitlement.CapabilityAnalytics), playerHandler.PlayerSummary)
			playerGroup.GET("/:id/suggestions", RequireCapability(entitlement.CapabilityAnalytics), playerHandler.SuggestedDrills)
		}

		// --- Drill library ---
		drillGroup := apiV1.Group("/drills")
		{
			drillGroup.GET("", drillHandler.ListDrills)
			drillGroup.GET("/filtered", drillHandler.FilteredDrills)
			drillGroup.PUT("/filter", drillHandler.SetFilter)
			drillGroup.GET("/manage", drillHandler.ManageDrills)
			drillGroup.GET("/presets", drillHandler.Presets)
			drillGroup.POST("", drillHandler.CreateDrill)
			drillGroup.PUT("/:id", drillHandler.UpdateDrill)
			drillGroup.DELETE("/:id", drillHandler.DeleteDrill)
			drillGroup.GET("/:id/video", drillHandler.DrillVideo)

			// Media routes answer 503 when no bucket is configured.
			drillGroup.POST("/:id/video/upload", mediaHandler.PresignUpload)
			drillGroup.GET("/:id/video/download", mediaHandler.PresignDownload)
			drillGroup.DELETE("/:id/video/object", mediaHandler.DeleteVideo)
		}

		// --- Sessions and the draft form ---
		sessionGroup := apiV1.Group("/sessions")
		{
			sessionGroup.GET("", sessionHandler.ListSessions)
			sessionGroup.GET("/:id", sessionHandler.GetSession)
			sessionGroup.DELETE("/:id", sessionHandler.DeleteSession)
			sessionGroup.POST("/:id/duplicate", sessionHandler.DuplicateSession)
			sessionGroup.GET("/:id/export", sessionHandler.ExportSession)
			sessionGroup.POST("/:id/edit", sessionHandler.EditSession)
		}

		draftGroup := apiV1.Group("/draft")
		{
			draftGroup.GET("", sessionHandler.GetDraft)
			draftGroup.PUT("", sessionHandler.UpdateDraftInfo)
			draftGroup.POST("/drills", sessionHandler.AddDraftDrill)
			draftGroup.DELETE("/drills/:uniqueId", sessionHandler.RemoveDraftDrill)
			draftGroup.POST("/reorder", sessionHandler.ReorderDraftDrills)
			draftGroup.PUT("/metrics", sessionHandler.SetDraftMetric)
			draftGroup.POST("/save", sessionHandler.SaveDraft)
			draftGroup.POST("/cancel", sessionHandler.CancelDraft)
		}

		// --- Templates (paid plans only) ---
		templateGroup := apiV1.Group("/templates")
		templateGroup.Use(RequireCapability(entitlement.CapabilityTemplates))
		{
			templateGroup.GET("", templateHandler.ListTemplates)
			templateGroup.POST("", templateHandler.SaveTemplate)
			templateGroup.DELETE("/:id", templateHandler.DeleteTemplate)
			templateGroup.POST("/:id/load", templateHandler.LoadTemplate)
		}

		// --- Computed views ---
		apiV1.GET("/dashboard", RequireCapability(entitlement.CapabilityAnalytics), viewsHandler.Dashboard)
		apiV1.POST("/stations/rotation", viewsHandler.GenerateRotation)

		// --- On-court runner ---
		oncourtGroup := apiV1.Group("/oncourt")
		{
			oncourtGroup.GET("", runnerHandler.State)
			oncourtGroup.POST("/load", runnerHandler.LoadSession)
			oncourtGroup.POST("/start", runnerHandler.Start)
			oncourtGroup.POST("/pause", runnerHandler.Pause)
			oncourtGroup.POST("/reset", runnerHandler.Reset)
			oncourtGroup.POST("/add-time", runnerHandler.AddTime)
			oncourtGroup.POST("/prev", runnerHandler.Prev)
			oncourtGroup.POST("/next", runnerHandler.Next)
			oncourtGroup.POST("/done", runnerHandler.MarkDone)
		}

		// --- Practice stopwatch ---
		timerGroup := apiV1.Group("/timer")
		{
			timerGroup.GET("", runnerHandler.TimerState)
			timerGroup.POST("/start", runnerHandler.TimerStart)
			timerGroup.POST("/pause", runnerHandler.TimerPause)
			timerGroup.POST("/reset", runnerHandler.TimerReset)
		}

		// --- Settings ---
		settingsGroup := apiV1.Group("/settings")
		{
			settingsGroup.GET("", settingsHandler.GetSettings)
			settingsGroup.PUT("/mode", settingsHandler.SetMode)
			settingsGroup.PUT("/onboarding", settingsHandler.SetOnboardingSeen)
		}
	}
}
