package rest

import (
	"context"
	"net/http"

	"diaPredict/pkg/response"

	"github.com/labstack/echo/v4"
)

type StoreStatus interface {
	Available(ctx context.Context) bool
}

type HealthHandler struct {
	store   StoreStatus
	version string
}

func NewHealthHandler(store StoreStatus, version string) *HealthHandler {
	return &HealthHandler{
		store:   store,
		version: version,
	}
}

// Health reports whether the service is up and whether it is currently
// serving from the real store or in degraded mock mode.
func (h *HealthHandler) Health(c echo.Context) error {
	storeStatus := "available"
	if !h.store.Available(c.Request().Context()) {
		storeStatus = "unavailable"
	}

	return c.JSON(http.StatusOK, response.Success(echo.Map{
		"service": "ok",
		"store":   storeStatus,
		"version": h.version,
	}))
}
