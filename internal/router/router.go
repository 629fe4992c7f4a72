package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/launchdeck/internal/config"
	"github.com/launchdeck/internal/handler"
)

// SetupRouter configures the Gin engine and routes.
func SetupRouter(api *handler.API, cfg config.AppConfig) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("launchdeck_session", store))

	r.Static(cfg.UploadURLPath, cfg.UploadDir)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Public surfaces need no session.
	r.GET("/p/:slug", api.ShowPublishedPage)
	r.POST("/webhooks/stripe", api.StripeWebhook(cfg.StripeWebhookSecret))

	apiGroup := r.Group("/api")
	{
		apiGroup.POST("/login", api.Login)
		apiGroup.POST("/logout", api.Logout)

		auth := apiGroup.Group("")
		auth.Use(handler.AuthRequired())
		{
			auth.GET("/me", api.Me)

			auth.GET("/templates", api.ListTemplates)
			auth.GET("/sections", api.ListSectionTypes)

			auth.GET("/projects", api.ListProjects)
			auth.POST("/projects", api.CreateProject)
			auth.GET("/projects/:id", api.GetProject)
			auth.PUT("/projects/:id", api.UpdateProject)
			auth.DELETE("/projects/:id", api.DeleteProject)

			auth.POST("/projects/:id/generate", api.GeneratePage)
			auth.POST("/projects/:id/editor", api.OpenEditor)

			auth.POST("/projects/:id/signals/search", api.SearchSignals)
			auth.GET("/projects/:id/signals", api.ListSignals)
			auth.PUT("/signals/:id/status", api.UpdateSignalStatus)
			auth.DELETE("/signals/:id", api.DeleteSignal)

			auth.GET("/projects/:id/outreach", api.ListOutreach)
			auth.POST("/projects/:id/outreach", api.CreateOutreach)
			auth.PUT("/outreach/:id", api.UpdateOutreach)
			auth.PUT("/outreach/:id/status", api.UpdateOutreachStatus)
			auth.DELETE("/outreach/:id", api.DeleteOutreach)

			auth.GET("/settings", api.GetSettings)
			auth.PUT("/settings", api.UpdateSettings)

			auth.POST("/uploads", api.UploadImage)

			editor := auth.Group("/editor/:token")
			{
				editor.GET("", api.GetEditorState)
				editor.DELETE("", api.CloseEditor)

				editor.POST("/sections", api.AddSection)
				editor.PUT("/sections/:sectionId", api.UpdateSection)
				editor.DELETE("/sections/:sectionId", api.DeleteSection)
				editor.POST("/sections/:sectionId/duplicate", api.DuplicateSection)
				editor.POST("/sections/:sectionId/toggle", api.ToggleSection)
				editor.POST("/move", api.MoveSection)
				editor.POST("/select", api.SelectSection)

				editor.PUT("/styles", api.UpdateGlobalStyle)
				editor.PUT("/meta", api.UpdateMeta)
				editor.PUT("/social", api.UpdateSocialLinks)

				editor.POST("/undo", api.Undo)
				editor.POST("/redo", api.Redo)

				editor.POST("/save", api.SaveEditor)
				editor.POST("/publish", api.PublishEditor)
				editor.POST("/unpublish", api.UnpublishEditor)
			}
		}
	}

	return r
}
