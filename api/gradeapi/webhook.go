package gradeapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edukube/gradebook/core/grade"
	"github.com/edukube/gradebook/services/notifier"
)

// WebhookService exposes the notifier's demo surface: delivery statistics and
// a manual connectivity probe for showing NetworkPolicy egress being toggled.
type WebhookService interface {
	Status() notifier.Status
	TestConnection(ctx context.Context) grade.NotifyResult
}

type webhookAPI struct {
	hook WebhookService
}

func registerWebhookAPI(app *echo.Echo, hook WebhookService) {
	api := webhookAPI{hook: hook}

	g := app.Group("/api/webhook")
	g.GET("/status", api.status)
	g.POST("/test", api.test)
}

type statusResponse struct {
	Success bool `json:"success"`
	notifier.Status
}

func (api *webhookAPI) status(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, statusResponse{Success: true, Status: api.hook.Status()})
}

func (api *webhookAPI) test(ctx echo.Context) error {
	res := api.hook.TestConnection(ctx.Request().Context())

	switch {
	case res.Blocked:
		return ctx.JSON(http.StatusOK, echo.Map{
			"success": false,
			"message": "Webhook BLOCKED by NetworkPolicy",
			"details": "The grade service cannot reach the webhook receiver in the external-services namespace.",
			"hint":    "Apply the allow-webhook-egress NetworkPolicy to enable this.",
			"result":  res,
		})
	case res.Delivered:
		return ctx.JSON(http.StatusOK, echo.Map{
			"success": true,
			"message": "Webhook sent successfully",
			"details": "The grade service can reach the webhook receiver.",
			"result":  res,
		})
	default:
		return ctx.JSON(http.StatusOK, echo.Map{
			"success": false,
			"message": "Webhook failed",
			"result":  res,
		})
	}
}
