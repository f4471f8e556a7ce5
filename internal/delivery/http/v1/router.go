package v1

import (
	"net/http"
	"time"

	"area1337-backend/config"
	"area1337-backend/internal/delivery/http/middleware"
	"area1337-backend/internal/delivery/http/response"
	"area1337-backend/internal/domain"
	"area1337-backend/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ContactUC domain.ContactUsecase
	BlogUC    domain.BlogUsecase
	FeedUC    domain.FeedUsecase
	CatalogUC domain.CatalogUsecase
	HealthUC  usecase.HealthUsecase
	Config    *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	if !deps.Config.TrustProxy {
		_ = r.SetTrustedProxies(nil)
	}

	// Global Middlewares
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.CORSMiddleware(corsConfig(deps.Config)))
	r.Use(middleware.SecurityHeadersMiddleware("/api/swagger"))
	r.Use(middleware.ErrorHandler())

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "Not found.")
	})
	r.NoMethod(func(c *gin.Context) {
		response.Error(c, http.StatusMethodNotAllowed, "Method not allowed.")
	})

	api := r.Group("/api")

	NewHealthHandler(api, deps.HealthUC)

	contactLimit := middleware.RateLimitMiddleware(middleware.ContactRateLimitConfig(
		deps.Config.ContactRateLimit,
		time.Duration(deps.Config.ContactRateWindowSeconds)*time.Second,
		deps.Config.ContactRateLimitFailClosed,
	))
	NewContactHandler(api, deps.ContactUC, contactLimit)
	NewBlogHandler(r, api, deps.BlogUC, deps.FeedUC)
	NewCatalogHandler(api, deps.CatalogUC)

	// Swagger
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func corsConfig(cfg *config.Config) middleware.CORSConfig {
	return middleware.CORSConfig{
		AllowedOrigins: []string{cfg.SiteURL, wwwVariant(cfg.SiteURL), cfg.FrontendURL},
		DevOrigins:     []string{"http://localhost:4321", "http://127.0.0.1:4321", "http://localhost:3000"},
		PreviewSuffix:  "area1337.pages.dev",
		Production:     cfg.IsProduction(),
	}
}

// wwwVariant maps https://example.com to https://www.example.com
func wwwVariant(siteURL string) string {
	const scheme = "https://"
	if len(siteURL) > len(scheme) && siteURL[:len(scheme)] == scheme {
		host := siteURL[len(scheme):]
		if len(host) < 4 || host[:4] != "www." {
			return scheme + "www." + host
		}
	}
	return siteURL
}
