package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yardvine/yardvine-backend/internal/http/handlers"
	httpMW "github.com/yardvine/yardvine-backend/internal/http/middleware"
	"github.com/yardvine/yardvine-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	ServiceName    string
	AuthMiddleware *httpMW.AuthMiddleware

	AuthHandler          *httpH.AuthHandler
	ClientHandler        *httpH.ClientHandler
	JobHandler           *httpH.JobHandler
	QuoteHandler         *httpH.QuoteHandler
	NoteHandler          *httpH.NoteHandler
	CommunicationHandler *httpH.CommunicationHandler
	ExportHandler        *httpH.ExportHandler
	HealthHandler        *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "yardvine"
	}
	r.Use(otelgin.Middleware(serviceName))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
		}
	}

	protected := api.Group("/")
	{
		// Middleware
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Auth (protected)
		if cfg.AuthHandler != nil {
			protected.POST("/refresh", cfg.AuthHandler.Refresh)
			protected.POST("/logout", cfg.AuthHandler.Logout)
		}

		// Clients (directory, profile, CRUD)
		if cfg.ClientHandler != nil {
			protected.GET("/clients", cfg.ClientHandler.ListClients)
			protected.GET("/clients/summary", cfg.ClientHandler.Summary)
			protected.POST("/clients", cfg.ClientHandler.CreateClient)
			protected.GET("/clients/:id", cfg.ClientHandler.GetProfile)
			protected.PUT("/clients/:id", cfg.ClientHandler.UpdateClient)
			protected.DELETE("/clients/:id", cfg.ClientHandler.DeleteClient)
			protected.POST("/clients/:id/tags", cfg.ClientHandler.AddTag)
			protected.DELETE("/clients/:id/tags/:tag", cfg.ClientHandler.RemoveTag)
			protected.PUT("/clients/:id/rating", cfg.ClientHandler.SetRating)
			protected.GET("/clients/:id/avatar.png", cfg.ClientHandler.AvatarPNG)
		}

		// Jobs
		if cfg.JobHandler != nil {
			protected.GET("/clients/:id/jobs", cfg.JobHandler.ListClientJobs)
			protected.POST("/jobs", cfg.JobHandler.CreateJob)
			protected.PUT("/jobs/:id", cfg.JobHandler.UpdateJob)
			protected.DELETE("/jobs/:id", cfg.JobHandler.DeleteJob)
		}

		// Quotes
		if cfg.QuoteHandler != nil {
			protected.GET("/clients/:id/quotes", cfg.QuoteHandler.ListClientQuotes)
			protected.POST("/quotes", cfg.QuoteHandler.CreateQuote)
			protected.PUT("/quotes/:id", cfg.QuoteHandler.UpdateQuote)
			protected.PUT("/quotes/:id/status", cfg.QuoteHandler.UpdateQuoteStatus)
			protected.DELETE("/quotes/:id", cfg.QuoteHandler.DeleteQuote)
		}

		// Notes
		if cfg.NoteHandler != nil {
			protected.GET("/clients/:id/notes", cfg.NoteHandler.ListClientNotes)
			protected.POST("/clients/:id/notes", cfg.NoteHandler.AddNote)
			protected.PUT("/notes/:id", cfg.NoteHandler.UpdateNote)
			protected.DELETE("/notes/:id", cfg.NoteHandler.DeleteNote)
		}

		// Communication log
		if cfg.CommunicationHandler != nil {
			protected.GET("/clients/:id/communications", cfg.CommunicationHandler.ListClientCommunications)
			protected.POST("/clients/:id/communications", cfg.CommunicationHandler.LogCommunication)
		}

		// CSV export
		if cfg.ExportHandler != nil {
			protected.GET("/export/clients.csv", cfg.ExportHandler.ExportClients)
			protected.GET("/clients/:id/jobs.csv", cfg.ExportHandler.ExportJobHistory)
		}
	}

	return r
}
