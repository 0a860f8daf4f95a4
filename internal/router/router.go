package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"mangahub/internal/auth"
	"mangahub/internal/config"
	"mangahub/internal/handler"
	"mangahub/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	catalogHandler *handler.CatalogHandler,
	socialHandler *handler.SocialHandler,
	progressHandler *handler.ProgressHandler,
	adminHandler *handler.AdminHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Auth routes are rate limited per client IP to slow down credential
	// stuffing and verification-code guessing.
	authLimiter := middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(
		rate.Limit(float64(cfg.AuthRatePerMin) / 60.0),
	))
	authGroup := api.Group("/auth", authLimiter)
	authGroup.POST("/signup", authHandler.Signup)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh", authHandler.Refresh)
	authGroup.POST("/logout", authHandler.Logout)
	authGroup.POST("/password-reset/request", authHandler.RequestPasswordReset)
	authGroup.POST("/password-reset/confirm", authHandler.ConfirmPasswordReset)

	// Public catalog routes
	api.GET("/series", catalogHandler.ListSeries)
	api.GET("/series/:slug", catalogHandler.GetSeries)
	api.GET("/series/:slug/chapters", catalogHandler.ListChapters)
	api.GET("/chapters/:id", catalogHandler.GetChapter)
	api.GET("/chapters/:id/comments", socialHandler.ListComments)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			return jwtService.ValidateAccessToken(tokenString)
		},
	}))

	secured.POST("/auth/verify-email/request", authHandler.RequestEmailVerification)
	secured.POST("/auth/verify-email/confirm", authHandler.ConfirmEmailVerification)

	secured.GET("/me", userHandler.GetMe)
	secured.PUT("/me/preferences", userHandler.UpdatePreferences)
	secured.GET("/favorites", socialHandler.ListFavorites)
	secured.PUT("/favorites/:seriesID", socialHandler.AddFavorite)
	secured.DELETE("/favorites/:seriesID", socialHandler.RemoveFavorite)
	secured.GET("/me/progress", progressHandler.ListProgress)

	secured.PUT("/series/:id/rating", socialHandler.RateSeries)
	secured.POST("/chapters/:id/comments", socialHandler.AddComment)
	secured.DELETE("/comments/:id", socialHandler.DeleteComment)
	secured.PUT("/chapters/:id/progress", progressHandler.SaveProgress)
	secured.GET("/chapters/:id/progress", progressHandler.GetProgress)

	// Admin routes
	admin := secured.Group("/admin", RequireAdmin)
	admin.GET("/users", adminHandler.ListUsers)
	admin.POST("/users/:id/ban", adminHandler.BanUser)
	admin.DELETE("/users/:id/ban", adminHandler.UnbanUser)
	admin.PUT("/users/:id/role", adminHandler.SetRole)
	admin.POST("/series", adminHandler.CreateSeries)
	admin.PUT("/series/:id", adminHandler.UpdateSeries)
	admin.DELETE("/series/:id", adminHandler.DeleteSeries)
	admin.POST("/volumes", adminHandler.CreateVolume)
	admin.DELETE("/volumes/:id", adminHandler.DeleteVolume)
	admin.POST("/chapters", adminHandler.CreateChapter)
	admin.PUT("/chapters/:id", adminHandler.UpdateChapter)
	admin.DELETE("/chapters/:id", adminHandler.DeleteChapter)
	admin.PUT("/chapters/:id/pages", adminHandler.SetChapterPages)
}

// RequireAdmin allows only callers whose access token carries the admin role.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := c.Get("user").(*auth.AccessClaims)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		if claims.Role != model.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return next(c)
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
