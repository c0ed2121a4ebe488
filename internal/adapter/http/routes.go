package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Routes struct {
	Health    *Handler
	Requests  *RequestHandler
	Lifecycle *LifecycleHandler
	Sweep     *SweepHandler

	// applied to the mutating endpoints only; nil skips
	Idempotency echo.MiddlewareFunc

	// nil leaves /metrics unregistered
	Metrics     http.Handler
	MetricsPath string
}

func Register(e *echo.Echo, r Routes) {
	e.GET("/health", r.Health.Health)
	e.GET("/ready", r.Health.Ready)
	if r.Metrics != nil {
		path := r.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		e.GET(path, echo.WrapHandler(r.Metrics))
	}

	api := e.Group("/api")
	api.GET("/request/:request_id", r.Requests.GetRequest)
	api.GET("/request/:request_id/history", r.Requests.GetHistory)
	api.GET("/:staff_id/pending", r.Requests.GetPending)
	api.GET("/manager/:manager_id/team_schedule", r.Requests.GetTeamSchedule)
	api.GET("/managers", r.Requests.GetManagers)
	api.GET("/auto-reject", r.Sweep.AutoReject)

	var mw []echo.MiddlewareFunc
	if r.Idempotency != nil {
		mw = append(mw, r.Idempotency)
	}
	api.POST("/apply", r.Lifecycle.Apply, mw...)
	api.POST("/approve", r.Lifecycle.Approve, mw...)
	api.POST("/approve_recurring", r.Lifecycle.Approve, mw...)
	api.POST("/reject", r.Lifecycle.Reject, mw...)
	api.POST("/withdraw", r.Lifecycle.Withdraw, mw...)
	api.POST("/cancel", r.Lifecycle.Cancel, mw...)
}
