package helpers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// All services speak the same envelope: "success" on every payload, "count"
// on lists, "error" on failures (rendered by the error handler).

func ListResponse(ctx echo.Context, data interface{}, count int) error {
	return ctx.JSON(http.StatusOK, echo.Map{
		"success": true,
		"count":   count,
		"data":    data,
	})
}

func DataResponse(ctx echo.Context, data interface{}) error {
	return ctx.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    data,
	})
}

func MessageResponse(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": message,
	})
}
