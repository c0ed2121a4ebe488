package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"wfh-backend/internal/usecase/sweep"
	"wfh-backend/pkg/dateutil"
)

type SweepHandler struct{ svc *sweep.Service }

func NewSweepHandler(svc *sweep.Service) *SweepHandler { return &SweepHandler{svc: svc} }

// AutoReject: GET /api/auto-reject, called by an external scheduler.
func (h *SweepHandler) AutoReject(c echo.Context) error {
	res, err := h.svc.Run(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Auto-rejection complete",
		"count":   res.Cancelled,
		"cutoff":  dateutil.Format(res.Cutoff),
	})
}
