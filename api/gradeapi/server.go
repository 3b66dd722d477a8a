package gradeapi

import (
	"github.com/labstack/echo/v4"

	"github.com/edukube/gradebook/api/helpers"
	"github.com/edukube/gradebook/core/grade"
)

func NewServer(opts *helpers.Options, svc *grade.Service, hook WebhookService) helpers.Server {
	return helpers.NewServer(opts, func(app *echo.Echo) {
		registerGradeAPI(app, svc)
		registerWebhookAPI(app, hook)
	})
}
