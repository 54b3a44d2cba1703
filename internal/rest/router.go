package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func SetupBadgeRoutes(api *echo.Group, handler *BadgeHandler) {
	badges := api.Group("/badges")

	badges.GET("", handler.GetAllBadges)
	badges.POST("", handler.MintBadge)
	badges.GET("/suggested-images", handler.GetSuggestedImages)
	badges.PATCH("/:id", handler.UpdateBadge)
	badges.DELETE("/:id", handler.DeleteBadge)
	badges.DELETE("", handler.ClearBadges)

	prefs := api.Group("/preferences")
	prefs.GET("/dark-mode", handler.GetDarkMode)
	prefs.PUT("/dark-mode", handler.SetDarkMode)
}

func SetupAdvisorRoutes(api *echo.Group, handler *AdvisorHandler) {
	reco := api.Group("/recommendations")
	reco.POST("/ask", handler.Ask)
	reco.GET("/transcript", handler.GetTranscript)
}

// NewServer wires middleware and every route onto a fresh echo instance.
func NewServer(badges *BadgeHandler, advisor *AdvisorHandler, log *zap.Logger, allowOrigins []string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			log.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status))
			return nil
		},
	}))
	if len(allowOrigins) > 0 {
		e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
			AllowOrigins: allowOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		}))
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")
	SetupBadgeRoutes(api, badges)
	SetupAdvisorRoutes(api, advisor)
	return e
}
