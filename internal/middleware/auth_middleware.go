package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"diaPredict/pkg/logger"
	"diaPredict/pkg/response"
	"diaPredict/pkg/utils"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware verifies the Bearer token and stores the authenticated
// user id in the request context. Every prediction endpoint sits behind it.
func AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, response.Error("Missing authorization header"))
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return c.JSON(http.StatusUnauthorized, response.Error("Invalid authorization format"))
			}

			tokenString := tokenParts[1]

			claims, err := utils.ParseJWT(tokenString)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, response.Error("Invalid token"))
			}

			expAt, err := claims.GetExpirationTime()
			if err != nil || expAt == nil {
				return c.JSON(http.StatusForbidden, response.Error("Invalid token"))
			}

			if time.Now().After(expAt.Time) {
				return c.JSON(http.StatusForbidden, response.Error("Token expired"))
			}

			userIDUint, err := strconv.ParseUint(claims.UserID, 10, 64)
			if err != nil {
				logger.Error("Invalid user ID in token", err)
				return c.JSON(http.StatusForbidden, response.Error("Invalid user ID in token"))
			}

			c.Set("user_id", uint(userIDUint))
			c.Set("token", tokenString)

			return next(c)
		}
	}
}
