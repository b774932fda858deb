package router

import (
	"diaPredict/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupPredictionRoutes(api *echo.Group, handler *rest.PredictionHandler, authRequired echo.MiddlewareFunc) {
	predictions := api.Group("/predictions", authRequired)

	predictions.POST("", handler.Create)
	predictions.GET("", handler.List)
	predictions.GET("/:id", handler.GetByID)
	predictions.DELETE("/:id", handler.Delete)
}

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler) {
	users := api.Group("/users")

	users.POST("/register", handler.Register)
	users.POST("/login", handler.Login)
}
