package studentapi

import (
	"github.com/labstack/echo/v4"

	"github.com/edukube/gradebook/api/helpers"
	"github.com/edukube/gradebook/core/student"
)

func NewServer(opts *helpers.Options, svc *student.Service) helpers.Server {
	return helpers.NewServer(opts, func(app *echo.Echo) {
		registerStudentAPI(app, svc)
	})
}
