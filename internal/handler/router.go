package handler

import (
	"fmt"
	"time"

	"github.com/Baaaki/resume-backend/internal/dto"
	"github.com/Baaaki/resume-backend/internal/middleware"
	"github.com/Baaaki/resume-backend/internal/models"
	"github.com/Baaaki/resume-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// RouterDeps is everything NewRouter wires into the HTTP surface.
type RouterDeps struct {
	DB    *gorm.DB
	Redis *redis.Client // optional

	Auth           *service.AuthService
	Profiles       *service.ProfileService
	Experiences    *service.ExperienceService
	Educations     *service.EducationService
	Skills         *service.SkillService
	Certifications *service.CertificationService

	RateLimiter    *middleware.RateLimiter // optional
	AllowedOrigins []string
	Production     bool
	PermitAll      bool

	// Today returns the date derived fields are computed against.
	Today func() time.Time
}

// NewRouter builds the engine with the full middleware chain:
// request id, access log, recovery, CORS, security headers, error
// translation, authentication and route authorization.
func NewRouter(deps RouterDeps) (*gin.Engine, error) {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil, fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	if err := dto.RegisterValidators(v); err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}

	today := deps.Today
	if today == nil {
		today = models.Today
	}

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		Recovery(),
		middleware.CORS(deps.AllowedOrigins),
		middleware.SecurityHeaders(deps.Production),
		ErrorHandler(),
		middleware.Authenticate(deps.Auth),
		middleware.Authorize(middleware.DefaultRules(), deps.PermitAll),
	)

	health := NewHealthHandler(deps.DB, deps.Redis)
	router.GET("/health", health.Check)

	authHandler := NewAuthHandler(deps.Auth)
	auth := router.Group("/auth")
	auth.Use(deps.RateLimiter.Middleware())
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
	}

	profileHandler := NewProfileHandler(deps.Profiles, today)
	profiles := router.Group("/profiles")
	{
		profiles.POST("", profileHandler.Create)
		profiles.GET("/active", profileHandler.ListActive)
		profiles.GET("/email/:email", profileHandler.GetByEmail)
		profiles.GET("/:id", profileHandler.Get)
		profiles.GET("/:id/full", profileHandler.GetFull)
		profiles.GET("/:id/export", profileHandler.Export)
		profiles.PUT("/:id", profileHandler.Update)
		profiles.DELETE("/:id", profileHandler.Delete)
		profiles.PATCH("/:id/deactivate", profileHandler.Deactivate)
	}

	experienceHandler := NewExperienceHandler(deps.Experiences, today)
	experiences := profiles.Group("/:id/experiences")
	{
		experiences.GET("", experienceHandler.List)
		experiences.GET("/current", experienceHandler.ListCurrent)
		experiences.GET("/:experienceId", experienceHandler.Get)
		experiences.POST("", experienceHandler.Create)
		experiences.PUT("/reorder", experienceHandler.Reorder)
		experiences.PUT("/:experienceId", experienceHandler.Update)
		experiences.DELETE("/:experienceId", experienceHandler.Delete)
	}

	educationHandler := NewEducationHandler(deps.Educations)
	educations := profiles.Group("/:id/educations")
	{
		educations.GET("", educationHandler.List)
		educations.GET("/:educationId", educationHandler.Get)
		educations.POST("", educationHandler.Create)
		educations.PUT("/reorder", educationHandler.Reorder)
		educations.PUT("/:educationId", educationHandler.Update)
		educations.DELETE("/:educationId", educationHandler.Delete)
	}

	skillHandler := NewSkillHandler(deps.Skills)
	skills := profiles.Group("/:id/skills")
	{
		skills.GET("", skillHandler.List)
		skills.GET("/primary", skillHandler.ListPrimary)
		skills.GET("/:skillId", skillHandler.Get)
		skills.POST("", skillHandler.Create)
		skills.PUT("/reorder", skillHandler.Reorder)
		skills.PUT("/:skillId", skillHandler.Update)
		skills.DELETE("/:skillId", skillHandler.Delete)
	}

	certificationHandler := NewCertificationHandler(deps.Certifications, today)
	certifications := profiles.Group("/:id/certifications")
	{
		certifications.GET("", certificationHandler.List)
		certifications.GET("/expired", certificationHandler.ListExpired)
		certifications.GET("/expiring-soon", certificationHandler.ListExpiringSoon)
		certifications.GET("/organization/:organization", certificationHandler.ListByOrganization)
		certifications.GET("/:certificationId", certificationHandler.Get)
		certifications.POST("", certificationHandler.Create)
		certifications.PUT("/order", certificationHandler.Reorder)
		certifications.PUT("/:certificationId", certificationHandler.Update)
		certifications.DELETE("/:certificationId", certificationHandler.Delete)
		certifications.DELETE("", certificationHandler.DeleteAll)
	}

	return router, nil
}
