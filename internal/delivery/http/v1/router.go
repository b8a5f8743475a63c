package v1

import (
	"time"

	"go-candidate-backend/config"
	"go-candidate-backend/internal/delivery/http/middleware"
	"go-candidate-backend/internal/domain"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	CandidateUC domain.CandidateUsecase
	ResumeUC    domain.ResumeUsecase
	ExportUC    domain.ExportUsecase
	HealthUC    domain.HealthUsecase
	Config      *config.Config
	// RedisClient backs the rate limiter; nil uses the shared client or the in-memory fallback.
	RedisClient *goredis.Client
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	rateLimit := middleware.NewRateLimitConfig(
		deps.Config.RateLimitGlobalThreshold,
		time.Duration(deps.Config.RateLimitWindowSeconds)*time.Second,
	)
	rateLimit.Client = deps.RedisClient

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.CORSAllowedOrigins)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger("candidate-api"))
	r.Use(middleware.SecurityHeadersMiddleware(deps.Config.IsProduction()))
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	// Health and docs stay outside the rate limit
	NewHealthHandler(v1, deps.HealthUC)
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := v1.Group("")
	api.Use(middleware.RateLimitMiddleware(rateLimit))
	{
		NewCandidateHandler(api, deps.CandidateUC, deps.ExportUC)
		NewResumeHandler(api, deps.ResumeUC)
	}

	return r
}
