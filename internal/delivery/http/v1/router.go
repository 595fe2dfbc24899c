package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"go-jobboard-backend/config"
	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/storage"
)

type RouterDeps struct {
	AuthUC        domain.AuthUsecase
	CandidateUC   domain.CandidateUsecase
	EmployerUC    domain.EmployerUsecase
	JobOfferUC    domain.JobOfferUsecase
	ApplicationUC domain.ApplicationUsecase
	MeetingUC     domain.MeetingUsecase
	CVUC          domain.CVUsecase
	AccountUC     domain.AccountUsecase
	HealthUC      usecase.HealthUsecase
	CVStore       *storage.CVStore
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// CORS must run before anything that can short-circuit the request
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL))
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.RequestID())
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(
		deps.Config.RateLimitGlobalThreshold,
		time.Duration(deps.Config.RateLimitWindowSeconds)*time.Second,
	)))
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System status", deps.HealthUC.Check(c.Request.Context()))
	})

	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes
	authGroup := v1.Group("", middleware.RateLimitMiddleware(middleware.AuthRateLimitConfig()))
	NewAuthHandler(authGroup, deps.AuthUC, deps.Config)

	// Authenticated routes, split per role
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Config))

	candidate := protected.Group("")
	candidate.Use(middleware.RequireRole(domain.RoleCandidate))

	employer := protected.Group("")
	employer.Use(middleware.RequireRole(domain.RoleEmployer))

	NewAccountHandler(protected, deps.AccountUC)
	NewApplicationHandler(candidate, employer.Group("/employers"), deps.ApplicationUC)
	NewMeetingHandler(employer, deps.MeetingUC)
	NewJobOfferHandler(v1, employer.Group("/employers"), deps.JobOfferUC)
	NewCVHandler(candidate, deps.CVUC, deps.CVStore)
	NewProfileHandler(candidate.Group("/candidates"), employer.Group("/employers"), deps.CandidateUC, deps.EmployerUC)

	return r
}
