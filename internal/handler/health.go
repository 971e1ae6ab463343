package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health reports liveness. It does not touch the database so that the
// probe stays cheap.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
