package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/internhub/internal/api/handlers"
	"github.com/yoockh/internhub/internal/api/middleware"
	"github.com/yoockh/internhub/internal/security"
)

type Deps struct {
	Auth        *handlers.AuthHandler
	Internship  *handlers.InternshipHandler
	Application *handlers.ApplicationHandler
	Tokens      *security.TokenProvider
	Limiter     *middleware.RedisLimiter
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	api := r.Group("/api")

	// Public auth routes, throttled against credential stuffing
	auth := api.Group("/auth")
	auth.Use(middleware.RateLimit(d.Limiter, "auth", 20, time.Minute))
	auth.POST("/register", d.Auth.Register)
	auth.POST("/login", d.Auth.Login)
	auth.GET("/me", middleware.JWTAuth(d.Tokens), d.Auth.Me)

	// Everything below requires an authenticated caller
	protected := api.Group("/")
	protected.Use(middleware.JWTAuth(d.Tokens))

	internships := protected.Group("/internships")
	internships.GET("", d.Internship.List)
	internships.GET("/:id", d.Internship.Get)
	internships.POST("", middleware.RequireReviewer(), d.Internship.Create)
	internships.PUT("/:id", middleware.RequireReviewer(), d.Internship.Update)
	internships.DELETE("/:id", middleware.RequireReviewer(), d.Internship.Delete)

	// first wildcard segment is ":id" on every route: the apply route reads
	// it as an internship id, the rest as an application id
	applications := protected.Group("/applications")
	applications.POST("/:id/apply", d.Application.Apply)
	applications.GET("/my", d.Application.ListMine)
	applications.GET("/internship/:internshipId", middleware.RequireReviewer(), d.Application.ListForInternship)
	applications.PUT("/:id/status", middleware.RequireReviewer(), d.Application.UpdateStatus)
	applications.POST("/:id/certificate", d.Application.UploadCertificate)
	applications.PUT("/:id/certificate-verify", middleware.RequireReviewer(), d.Application.VerifyCertificate)
}
