package requestlog

import (
	"testing"
	"time"

	"wfh-backend/internal/domain/wfhrequest"
)

func TestSnapshot_CopiesEveryField(t *testing.T) {
	day := time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)
	applied := time.Date(2024, 10, 15, 0, 0, 0, 0, time.UTC)
	at := time.Date(2024, 10, 16, 9, 0, 0, 0, time.FixedZone("SGT", 8*3600))
	r := &wfhrequest.WFHRequest{
		ID: 7, RequestID: "REC123", StaffID: 140008, ManagerID: 140001,
		SpecificDate: day, IsAM: true, IsPM: false,
		Status: wfhrequest.StatusApproved, ApplyDate: applied, Reason: "Regular WFH",
	}

	e := Snapshot(r, at)

	if e.RowID != 7 || e.RequestID != "REC123" || e.StaffID != 140008 || e.ManagerID != 140001 {
		t.Fatalf("identity fields not copied: %+v", e)
	}
	if !e.SpecificDate.Equal(day) || !e.ApplyDate.Equal(applied) || !e.IsAM || e.IsPM {
		t.Fatalf("date fields not copied: %+v", e)
	}
	if e.Status != wfhrequest.StatusApproved || e.Reason != "Regular WFH" {
		t.Fatalf("status/reason not copied: %+v", e)
	}
	if e.LoggedAt.Location() != time.UTC || !e.LoggedAt.Equal(at) {
		t.Fatalf("LoggedAt = %v", e.LoggedAt)
	}

	// later mutation of the row must not leak into the snapshot
	r.Status = wfhrequest.StatusCancelled
	if e.Status != wfhrequest.StatusApproved {
		t.Fatal("snapshot aliased the row")
	}
}
