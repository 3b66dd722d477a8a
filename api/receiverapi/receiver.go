// Package receiverapi implements the stand-in external webhook service. It
// runs in a separate namespace so that egress from the grade service to it
// can be toggled with NetworkPolicies.
package receiverapi

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/edukube/gradebook/api/helpers"
	"github.com/edukube/gradebook/core"
)

// historyLimit caps the in-memory log of received webhooks.
const historyLimit = 50

type (
	entry struct {
		ID        int                    `json:"id"`
		Timestamp string                 `json:"timestamp"`
		Type      string                 `json:"type"`
		Data      map[string]interface{} `json:"data"`
		SourceIP  string                 `json:"source_ip"`
	}

	receiverAPI struct {
		logger core.Logger

		mutex   sync.Mutex
		seq     int
		history []entry
	}
)

func NewServer(opts *helpers.Options) helpers.Server {
	api := &receiverAPI{logger: opts.Logger}
	return helpers.NewServer(opts, func(app *echo.Echo) {
		g := app.Group("/webhook")
		g.POST("/grade-notification", api.receive)
		g.GET("/history", api.queryHistory)
		g.POST("/clear", api.clear)
	})
}

// Handlers

func (api *receiverAPI) receive(ctx echo.Context) error {
	data := make(map[string]interface{})
	_ = ctx.Bind(&data) // an empty or malformed body is still recorded

	api.mutex.Lock()
	api.seq++
	e := entry{
		ID:        api.seq,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Type:      "grade_notification",
		Data:      data,
		SourceIP:  ctx.RealIP(),
	}
	api.history = append(api.history, e)
	if len(api.history) > historyLimit {
		api.history = api.history[len(api.history)-historyLimit:]
	}
	api.mutex.Unlock()

	api.logger.Info("received webhook", data)

	return ctx.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"message":    "Webhook received successfully",
		"webhook_id": e.ID,
	})
}

// queryHistory returns received webhooks, most recent first.
func (api *receiverAPI) queryHistory(ctx echo.Context) error {
	api.mutex.Lock()
	webhooks := make([]entry, 0, len(api.history))
	for i := len(api.history) - 1; i >= 0; i-- {
		webhooks = append(webhooks, api.history[i])
	}
	api.mutex.Unlock()

	return ctx.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"count":    len(webhooks),
		"webhooks": webhooks,
	})
}

func (api *receiverAPI) clear(ctx echo.Context) error {
	api.mutex.Lock()
	api.history = nil
	api.mutex.Unlock()

	return helpers.MessageResponse(ctx, "Webhook history cleared")
}
