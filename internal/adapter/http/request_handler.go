package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"wfh-backend/internal/domain/wfhrequest"
	"wfh-backend/internal/usecase/request"
	"wfh-backend/pkg/dateutil"
)

type RequestHandler struct{ uc *request.Usecase }

func NewRequestHandler(uc *request.Usecase) *RequestHandler { return &RequestHandler{uc: uc} }

// GetRequest: GET /api/request/:request_id
func (h *RequestHandler) GetRequest(c echo.Context) error {
	view, err := h.uc.Get(c.Request().Context(), c.Param("request_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// GetHistory: GET /api/request/:request_id/history
func (h *RequestHandler) GetHistory(c echo.Context) error {
	logs, err := h.uc.History(c.Request().Context(), c.Param("request_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"data": logs})
}

// GetPending: GET /api/:staff_id/pending
func (h *RequestHandler) GetPending(c echo.Context) error {
	staffID, err := strconv.ParseInt(c.Param("staff_id"), 10, 64)
	if err != nil {
		// not a number cannot be in the directory either
		return writeError(c, wfhrequest.ErrStaffNotFound)
	}
	rows, err := h.uc.Pending(c.Request().Context(), staffID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"data": rows})
}

// GetTeamSchedule: GET /api/manager/:manager_id/team_schedule?start_date&end_date
func (h *RequestHandler) GetTeamSchedule(c echo.Context) error {
	managerID, err := strconv.ParseInt(c.Param("manager_id"), 10, 64)
	if err != nil {
		return writeError(c, wfhrequest.ErrStaffNotFound)
	}
	from, err := dateutil.Parse(c.QueryParam("start_date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "start_date must be YYYY-MM-DD"})
	}
	to, err := dateutil.Parse(c.QueryParam("end_date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "end_date must be YYYY-MM-DD"})
	}
	out, err := h.uc.TeamSchedule(c.Request().Context(), managerID, from, to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GetManagers: GET /api/managers
func (h *RequestHandler) GetManagers(c echo.Context) error {
	out, err := h.uc.Managers(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
