package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/ucetportal/campus-api/docs"
	"github.com/ucetportal/campus-api/internal/api/handler"
	"github.com/ucetportal/campus-api/internal/api/middleware"
	"github.com/ucetportal/campus-api/internal/core/domain"
	"github.com/ucetportal/campus-api/internal/core/ports"
	"github.com/ucetportal/campus-api/internal/core/token"
)

// Dependencies carries everything the router wires into handlers. Services
// and the token issuer are constructed in main so tests can swap in stubs.
type Dependencies struct {
	Auth      ports.AuthService
	News      ports.ContentService
	Resources ports.ContentService
	Tokens    *token.Issuer
	Mongo     *mongo.Database
	Redis     *redis.Client
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("campus"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	newsHandler := handler.NewNewsHandler(deps.News)
	resourceHandler := handler.NewResourceHandler(deps.Resources)

	// --- Auth routes (public) ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Admin routes: valid token first, then the admin role gate ---
	admin := e.Group("/admin", middleware.Auth(deps.Tokens), middleware.RBAC(domain.RoleAdmin))
	admin.GET("/users", authHandler.ListUsers)

	admin.GET("/news", newsHandler.List)
	admin.POST("/news", newsHandler.Create)
	admin.PUT("/news/:id", newsHandler.Update)
	admin.DELETE("/news/:id", newsHandler.Delete)

	admin.GET("/resources", resourceHandler.List)
	admin.POST("/resources", resourceHandler.Create)
	admin.PUT("/resources/:id", resourceHandler.Update)
	admin.DELETE("/resources/:id", resourceHandler.Delete)

	// --- Public portal reads ---
	portal := e.Group("/portal")
	portal.GET("/news", newsHandler.List)
	portal.GET("/resources", resourceHandler.List)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
