package http

import (
	"errors"
	"strings"
	"testing"
)

func validApply() applyReq {
	return applyReq{
		StaffID:   140008,
		ManagerID: 140001,
		Dates:     []string{"2024-11-01", "2024-11-08"},
		IsAM:      true,
		IsPM:      true,
		Reason:    "Regular WFH",
	}
}

func TestApplyReqValidation(t *testing.T) {
	cv := NewValidator()
	if err := cv.Validate(validApply()); err != nil {
		t.Fatalf("expected valid apply, got %v", err)
	}

	tests := []struct {
		name  string
		mut   func(r *applyReq)
		field string
		msg   string
	}{
		{"no dates", func(r *applyReq) { r.Dates = nil }, "dates", "is required"},
		{"empty dates", func(r *applyReq) { r.Dates = []string{} }, "dates", "at least 1"},
		{"bad date", func(r *applyReq) { r.Dates = []string{"01/11/2024"} }, "dates[0]", "YYYY-MM-DD"},
		{"duplicate dates", func(r *applyReq) { r.Dates = []string{"2024-11-01", "2024-11-01"} }, "dates", "duplicates"},
		{"no half day", func(r *applyReq) { r.IsAM, r.IsPM = false, false }, "is_pm", "is_am or is_pm"},
		{"zero staff", func(r *applyReq) { r.StaffID = 0 }, "staff_id", "greater than 0"},
		{"negative manager", func(r *applyReq) { r.ManagerID = -1 }, "manager_id", "greater than 0"},
		{"long reason", func(r *applyReq) { r.Reason = strings.Repeat("x", 501) }, "reason", "at most 500"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validApply()
			tt.mut(&req)
			err := cv.Validate(req)
			if err == nil {
				t.Fatalf("expected validation error")
			}
			fe := ToFieldErrors(err)
			if !containsFieldMsg(fe, tt.field, tt.msg) {
				t.Fatalf("expected %s: %q, got %+v", tt.field, tt.msg, fe)
			}
		})
	}
}

func TestOnlyAMOrOnlyPMIsValid(t *testing.T) {
	cv := NewValidator()
	for _, flags := range [][2]bool{{true, false}, {false, true}} {
		req := validApply()
		req.IsAM, req.IsPM = flags[0], flags[1]
		if err := cv.Validate(req); err != nil {
			t.Fatalf("am=%v pm=%v should be valid: %v", flags[0], flags[1], err)
		}
	}
}

func TestRequestIDValidation(t *testing.T) {
	cv := NewValidator()
	for _, id := range []string{"REC123", "SINGLE456", strings.Repeat("a", 32), "req_1-a"} {
		if err := cv.Validate(requestIDReq{RequestID: id}); err != nil {
			t.Fatalf("expected %q valid, got %v", id, err)
		}
	}
	for _, id := range []string{"has space", "semi;colon", strings.Repeat("a", 65), "ünïcode"} {
		err := cv.Validate(requestIDReq{RequestID: id})
		if err == nil {
			t.Fatalf("expected error for %q", id)
		}
		if !containsFieldMsg(ToFieldErrors(err), "request_id", "1-64 letters") {
			t.Fatalf("expected reqid message for %q, got %+v", id, ToFieldErrors(err))
		}
	}
	err := cv.Validate(requestIDReq{})
	if err == nil || !containsFieldMsg(ToFieldErrors(err), "request_id", "is required") {
		t.Fatalf("expected required error, got %v", err)
	}
}

func TestDecideReqValidation(t *testing.T) {
	cv := NewValidator()
	ok := decideReq{RequestID: "REC123", DecisionStatus: "Rejected", ManagerID: 140001}
	if err := cv.Validate(ok); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}

	bad := decideReq{RequestID: "REC123", DecisionStatus: "Withdrawn", ManagerID: -3}
	err := cv.Validate(bad)
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	fe := ToFieldErrors(err)
	if !containsFieldMsg(fe, "decision_status", "one of: Approved Rejected") {
		t.Fatalf("missing oneof message: %+v", fe)
	}
	if !containsFieldMsg(fe, "manager_id", "greater than or equal to 0") {
		t.Fatalf("missing gte message: %+v", fe)
	}
}

func TestToFieldErrors_NonValidation(t *testing.T) {
	err := errors.New("boom")
	fe := ToFieldErrors(err)
	if len(fe) != 1 {
		t.Fatalf("expected 1 field error, got %d", len(fe))
	}
	if fe[0].Field != "_" || fe[0].Message != "boom" {
		t.Fatalf("unexpected mapping: %+v", fe[0])
	}
}
