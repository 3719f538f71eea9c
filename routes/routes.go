package routes

import (
	"net/http"
	"slices"
	"time"

	"snapbook-backend/config"
	"snapbook-backend/controllers"
	"snapbook-backend/services"
	"snapbook-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps are the collaborators the router hands to its controllers.
type Deps struct {
	Config    config.Config
	Logger    *zap.Logger
	Accounts  services.Accounts
	Sessions  *services.Sessions
	Catalog   *services.Catalog
	Reminders *services.ReminderService
	Now       func() time.Time
}

func SetupRouter(d Deps) *gin.Engine {
	if d.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	origins := d.Config.AllowedOrigins()
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return slices.Contains(origins, origin)
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(config.PerformanceLogger(d.Logger, d.Config.SlowRequestThreshold()))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	catalog := &controllers.CatalogController{Catalog: d.Catalog}
	authCtl := &controllers.AuthController{
		Accounts:     d.Accounts,
		Sessions:     d.Sessions,
		Secret:       d.Config.JWTSecret,
		Expiry:       d.Config.JWTExpiry(),
		SecureCookie: d.Config.IsProduction(),
		Log:          d.Logger,
	}
	dash := &controllers.DashboardController{
		Sessions:  d.Sessions,
		Reminders: d.Reminders,
		Now:       d.Now,
		Log:       d.Logger,
	}
	requireLogin := utils.AuthMiddleware(d.Config.JWTSecret)

	auth := r.Group("/auth")
	{
		auth.POST("/register", authCtl.Register)
		auth.POST("/login", authCtl.Login)

		auth.Use(requireLogin)
		auth.GET("/me", authCtl.Me)
		auth.POST("/logout", authCtl.Logout)
	}

	api := r.Group("/api")
	{
		api.GET("/photographers", catalog.ListPhotographers)
		api.GET("/photographers/featured", catalog.FeaturedPhotographers)
		api.GET("/photographers/:id", catalog.GetPhotographer)
		api.GET("/about", catalog.About)
	}

	dashboard := api.Group("/dashboard", requireLogin)
	{
		dashboard.GET("/overview", dash.GetOverview)
		dashboard.GET("/notifications", dash.GetNotifications)
		dashboard.POST("/reminders/run", dash.RunReminders)

		profile := dashboard.Group("/profile")
		{
			profile.GET("", dash.GetProfile)
			profile.POST("/edit", dash.EditProfile)
			profile.PATCH("", dash.UpdateProfile)
			profile.POST("/specialties", dash.AddSpecialty)
			profile.DELETE("/specialties/:name", dash.RemoveSpecialty)
			profile.POST("/avatar", dash.UploadAvatar)
			profile.POST("/save", dash.SaveProfile)
		}

		portfolio := dashboard.Group("/portfolio")
		{
			portfolio.GET("", dash.ListPortfolio)
			portfolio.POST("", dash.UploadPortfolio)
			portfolio.PATCH("/:id", dash.UpdateImageCategory)
			portfolio.DELETE("/:id", dash.DeleteImage)
		}

		packages := dashboard.Group("/packages")
		{
			packages.GET("", dash.ListPackages)
			packages.POST("", dash.SavePackage)

			packages.GET("/draft", dash.GetDraft)
			packages.POST("/draft", dash.NewDraft)
			packages.PUT("/draft", dash.UpdateDraft)
			packages.DELETE("/draft", dash.DiscardDraft)
			packages.POST("/draft/features", dash.AddDraftFeature)
			packages.DELETE("/draft/features/:index", dash.RemoveDraftFeature)
			packages.POST("/draft/commit", dash.CommitDraft)

			packages.PUT("/:id", dash.SavePackage)
			packages.DELETE("/:id", dash.DeletePackage)
			packages.POST("/:id/popular", dash.TogglePopular)
			packages.POST("/:id/edit", dash.EditPackage)
		}

		availability := dashboard.Group("/availability")
		{
			availability.GET("", dash.ListAvailability)
			availability.GET("/day", dash.GetDay)
			availability.GET("/new", dash.NewSlot)
			availability.GET("/upcoming", dash.UpcomingBookings)
			availability.POST("", dash.SaveSlot)
			availability.POST("/block", dash.BlockRange)
			availability.DELETE("/:id", dash.DeleteSlot)
		}

		bookings := dashboard.Group("/bookings")
		{
			bookings.GET("", dash.ListBookings)
			bookings.GET("/stats", dash.BookingStats)
			bookings.POST("", dash.CreateBooking)
			bookings.GET("/:id", dash.GetBooking)
			bookings.PATCH("/:id/status", dash.UpdateBookingStatus)
			bookings.POST("/:id/messages", dash.SendMessage)
		}
	}

	return r
}
