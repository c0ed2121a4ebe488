package gormrepo

import (
	"context"
	"testing"

	"wfh-backend/internal/domain/wfhrequest"
	"wfh-backend/internal/testutil/testdb"
	"wfh-backend/pkg/id"
)

func TestCreateBatchAndListByRequestID(t *testing.T) {
	db := testdb.Open(t)
	repo := NewRequestRepository(db)
	ctx := context.Background()

	reqID := id.NewID32()
	applied := testdb.Date(2024, 10, 1)
	rows := []*wfhrequest.WFHRequest{
		testdb.Row(reqID, 140008, 140001, testdb.Date(2024, 10, 9), applied),
		testdb.Row(reqID, 140008, 140001, testdb.Date(2024, 10, 2), applied),
		testdb.Row(reqID, 140008, 140001, testdb.Date(2024, 10, 16), applied),
	}
	if err := repo.CreateBatch(ctx, rows); err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}
	for _, r := range rows {
		if r.ID == 0 {
			t.Fatalf("CreateBatch did not set auto-increment ID")
		}
	}

	got, err := repo.ListByRequestID(ctx, reqID)
	if err != nil {
		t.Fatalf("ListByRequestID: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("want 3 rows, got %d", len(got))
	}
	// insertion order, not date order
	if !got[0].SpecificDate.Equal(testdb.Date(2024, 10, 9)) || !got[1].SpecificDate.Equal(testdb.Date(2024, 10, 2)) {
		t.Fatalf("rows not in insertion order: %v, %v", got[0].SpecificDate, got[1].SpecificDate)
	}
	if got[0].Status != wfhrequest.StatusPending || got[0].StaffID != 140008 || got[0].ManagerID != 140001 {
		t.Fatalf("unexpected row: %+v", got[0])
	}
	if !got[0].ApplyDate.Equal(applied) {
		t.Fatalf("apply_date round trip: got %v", got[0].ApplyDate)
	}

	locked, err := repo.ListByRequestIDForUpdate(ctx, reqID)
	if err != nil || len(locked) != 3 {
		t.Fatalf("ListByRequestIDForUpdate: %d rows, err=%v", len(locked), err)
	}
}

func TestCreateBatch_Empty(t *testing.T) {
	db := testdb.Open(t)
	if err := NewRequestRepository(db).CreateBatch(context.Background(), nil); err != nil {
		t.Fatalf("CreateBatch(nil): %v", err)
	}
}

func TestListByRequestID_Unknown(t *testing.T) {
	db := testdb.Open(t)
	got, err := NewRequestRepository(db).ListByRequestID(context.Background(), "nope")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("want no rows, got %d", len(got))
	}
}

func TestSave_UpdatesStatusAndReason(t *testing.T) {
	db := testdb.Open(t)
	repo := NewRequestRepository(db)
	ctx := context.Background()

	r := testdb.Row("SINGLE456", 140008, 140001, testdb.Date(2024, 11, 4), testdb.Date(2024, 11, 1))
	testdb.Seed(t, db, r)

	r.Status = wfhrequest.StatusRejected
	r.Reason = "Team offsite"
	if err := repo.Save(ctx, r); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, _ := repo.ListByRequestID(ctx, "SINGLE456")
	if len(got) != 1 || got[0].Status != wfhrequest.StatusRejected || got[0].Reason != "Team offsite" {
		t.Fatalf("update not persisted: %+v", got)
	}
}

func TestListPendingByStaffID(t *testing.T) {
	db := testdb.Open(t)
	repo := NewRequestRepository(db)
	ctx := context.Background()

	applied := testdb.Date(2024, 10, 1)
	a := testdb.Row("A", 7, 1, testdb.Date(2024, 10, 20), applied)
	b := testdb.Row("B", 7, 1, testdb.Date(2024, 10, 5), applied)
	b.Status = wfhrequest.StatusApproved
	c := testdb.Row("C", 7, 1, testdb.Date(2024, 10, 10), applied)
	other := testdb.Row("D", 8, 1, testdb.Date(2024, 10, 10), applied)
	testdb.Seed(t, db, a, b, c, other)

	got, err := repo.ListPendingByStaffID(ctx, 7)
	if err != nil {
		t.Fatalf("ListPendingByStaffID: %v", err)
	}
	if len(got) != 2 || got[0].RequestID != "A" || got[1].RequestID != "C" {
		t.Fatalf("want [A C] in insertion order, got %+v", got)
	}

	none, err := repo.ListPendingByStaffID(ctx, 99)
	if err != nil || len(none) != 0 {
		t.Fatalf("want empty for unknown staff, got %d rows err=%v", len(none), err)
	}
}

func TestStalePending(t *testing.T) {
	db := testdb.Open(t)
	repo := NewRequestRepository(db)
	ctx := context.Background()

	cutoff := testdb.Date(2024, 8, 15)
	old := testdb.Row("OLD", 1, 2, testdb.Date(2024, 8, 20), testdb.Date(2024, 8, 1))
	edge := testdb.Row("EDGE", 1, 2, testdb.Date(2024, 8, 20), cutoff) // not strictly before
	fresh := testdb.Row("NEW", 1, 2, testdb.Date(2024, 9, 20), testdb.Date(2024, 9, 1))
	oldApproved := testdb.Row("OLDAPP", 1, 2, testdb.Date(2024, 7, 20), testdb.Date(2024, 7, 1))
	oldApproved.Status = wfhrequest.StatusApproved
	testdb.Seed(t, db, old, edge, fresh, oldApproved)

	n, err := repo.CountStalePending(ctx, cutoff)
	if err != nil || n != 1 {
		t.Fatalf("CountStalePending = %d, %v; want 1", n, err)
	}
	got, err := repo.ListStalePendingForUpdate(ctx, cutoff)
	if err != nil {
		t.Fatalf("ListStalePendingForUpdate: %v", err)
	}
	if len(got) != 1 || got[0].RequestID != "OLD" {
		t.Fatalf("want only OLD, got %+v", got)
	}
}

func TestListByStaffIDsInRange(t *testing.T) {
	db := testdb.Open(t)
	repo := NewRequestRepository(db)
	ctx := context.Background()

	applied := testdb.Date(2024, 9, 1)
	in1 := testdb.Row("R1", 10, 1, testdb.Date(2024, 9, 30), applied)
	in1.Status = wfhrequest.StatusApproved
	in2 := testdb.Row("R2", 11, 1, testdb.Date(2024, 9, 2), applied)
	outOfRange := testdb.Row("R3", 10, 1, testdb.Date(2024, 10, 1), applied)
	withdrawn := testdb.Row("R4", 10, 1, testdb.Date(2024, 9, 10), applied)
	withdrawn.Status = wfhrequest.StatusWithdrawn
	otherStaff := testdb.Row("R5", 12, 1, testdb.Date(2024, 9, 10), applied)
	testdb.Seed(t, db, in1, in2, outOfRange, withdrawn, otherStaff)

	got, err := repo.ListByStaffIDsInRange(ctx, []int64{10, 11},
		testdb.Date(2024, 9, 2), testdb.Date(2024, 9, 30),
		[]wfhrequest.Status{wfhrequest.StatusApproved, wfhrequest.StatusPending})
	if err != nil {
		t.Fatalf("ListByStaffIDsInRange: %v", err)
	}
	// inclusive on both ends, ordered by date
	if len(got) != 2 || got[0].RequestID != "R2" || got[1].RequestID != "R1" {
		t.Fatalf("want [R2 R1], got %+v", got)
	}

	all, err := repo.ListByStaffIDsInRange(ctx, []int64{10}, testdb.Date(2024, 9, 1), testdb.Date(2024, 9, 30), nil)
	if err != nil || len(all) != 2 {
		t.Fatalf("no status filter: want 2 rows, got %d err=%v", len(all), err)
	}

	empty, err := repo.ListByStaffIDsInRange(ctx, nil, testdb.Date(2024, 9, 1), testdb.Date(2024, 9, 30), nil)
	if err != nil || len(empty) != 0 {
		t.Fatalf("no staff: got %d rows err=%v", len(empty), err)
	}
}
