package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxClaims extracts the identity injected by the Auth middleware and
// fast-fails before any service call: a non-empty user_id proves the
// middleware ran on this route.
func ctxClaims(c echo.Context) (userID, username string, err error) {
	userID, _ = c.Get("user_id").(string)
	if userID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	username, _ = c.Get("username").(string)
	return userID, username, nil
}
