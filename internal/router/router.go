package router

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"quickthumb/internal/config"
	"quickthumb/internal/handler"
	"quickthumb/internal/middleware"
	"quickthumb/internal/service"
	"quickthumb/internal/storage"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authService service.AuthService,
	authHandler *handler.AuthHandler,
	generationHandler *handler.GenerationHandler,
	billingHandler *handler.BillingHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     strings.Split(cfg.CORSOrigins, ","),
		AllowCredentials: true,
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization, "X-Session-ID"},
	}))

	e.Validator = &CustomValidator{validator: validator.New()}

	statusOK := func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}
	e.GET("/", statusOK)
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	if cfg.ImagesDir != "" {
		e.Static(storage.PublicImagePath, cfg.ImagesDir)
	}

	api := e.Group("/api")

	// Public routes
	api.GET("/", statusOK)
	api.GET("/auth/session-data", authHandler.SessionData)
	api.POST("/auth/logout", authHandler.Logout)
	api.POST("/webhook", billingHandler.Webhook)

	// Secured routes (require a valid session)
	secured := api.Group("", middleware.RequireSession(authService))
	secured.GET("/auth/me", authHandler.Me)
	secured.GET("/thumbnails", generationHandler.ListThumbnails)
	secured.POST("/generate", generationHandler.Generate)
	secured.POST("/create-checkout-session", billingHandler.CreateCheckout)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
