package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"wfh-backend/internal/domain/wfhrequest"
	"wfh-backend/internal/usecase/lifecycle"
	"wfh-backend/pkg/dateutil"
)

type LifecycleHandler struct{ uc *lifecycle.Usecase }

func NewLifecycleHandler(uc *lifecycle.Usecase) *LifecycleHandler { return &LifecycleHandler{uc: uc} }

type applyReq struct {
	StaffID   int64    `json:"staff_id"   validate:"gt=0"`
	ManagerID int64    `json:"manager_id" validate:"gt=0"`
	Dates     []string `json:"dates"      validate:"required,min=1,max=60,unique,dive,datetime=2006-01-02"`
	IsAM      bool     `json:"is_am"`
	IsPM      bool     `json:"is_pm"`
	Reason    string   `json:"reason"     validate:"max=500"`
}

type decideReq struct {
	RequestID      string `json:"request_id"      validate:"required,reqid"`
	DecisionStatus string `json:"decision_status" validate:"required,oneof=Approved Rejected"`
	DecisionNotes  string `json:"decision_notes"  validate:"max=500"`
	ManagerID      int64  `json:"manager_id"      validate:"gte=0"`
}

type rejectReq struct {
	RequestID string `json:"request_id" validate:"required,reqid"`
	Reason    string `json:"reason"     validate:"max=500"`
}

type requestIDReq struct {
	RequestID string `json:"request_id" validate:"required,reqid"`
}

type transitionResp struct {
	Message       string            `json:"message"`
	RequestID     string            `json:"request_id"`
	RequestStatus wfhrequest.Status `json:"request_status"`
	Rows          int               `json:"rows"`
}

func toTransitionResp(msg string, res *lifecycle.TransitionResult) transitionResp {
	return transitionResp{Message: msg, RequestID: res.RequestID, RequestStatus: res.Status, Rows: res.Rows}
}

// Apply: POST /api/apply
func (h *LifecycleHandler) Apply(c echo.Context) error {
	var req applyReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dates := make([]time.Time, 0, len(req.Dates))
	for _, s := range req.Dates {
		d, err := dateutil.Parse(s)
		if err != nil { // already checked by the validator
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid date " + s})
		}
		dates = append(dates, d)
	}
	res, err := h.uc.Apply(c.Request().Context(), lifecycle.ApplyInput{
		StaffID:   req.StaffID,
		ManagerID: req.ManagerID,
		Dates:     dates,
		IsAM:      req.IsAM,
		IsPM:      req.IsPM,
		Reason:    req.Reason,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"message":      "Request submitted",
		"request_id":   res.RequestID,
		"is_recurring": res.IsRecurring,
		"rows":         res.Rows,
		"apply_date":   dateutil.Format(res.ApplyDate),
	})
}

// Approve: POST /api/approve, the manager decision endpoint (Approved or Rejected).
func (h *LifecycleHandler) Approve(c echo.Context) error {
	var req decideReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	res, err := h.uc.Decide(c.Request().Context(), lifecycle.DecideInput{
		RequestID: req.RequestID,
		Decision:  wfhrequest.Status(req.DecisionStatus),
		Notes:     req.DecisionNotes,
		ManagerID: req.ManagerID,
	})
	if err != nil {
		return writeError(c, err)
	}
	msg := "Request approved"
	if res.Status == wfhrequest.StatusRejected {
		msg = "Request rejected"
	}
	return c.JSON(http.StatusOK, toTransitionResp(msg, res))
}

// Reject: POST /api/reject
func (h *LifecycleHandler) Reject(c echo.Context) error {
	var req rejectReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	res, err := h.uc.Reject(c.Request().Context(), req.RequestID, req.Reason)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toTransitionResp("Request rejected", res))
}

// Withdraw: POST /api/withdraw
func (h *LifecycleHandler) Withdraw(c echo.Context) error {
	var req requestIDReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	res, err := h.uc.Withdraw(c.Request().Context(), req.RequestID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toTransitionResp("Request withdrawn", res))
}

// Cancel: POST /api/cancel
func (h *LifecycleHandler) Cancel(c echo.Context) error {
	var req requestIDReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	res, err := h.uc.Cancel(c.Request().Context(), req.RequestID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toTransitionResp("Request cancelled", res))
}
