// Package testdb opens a migrated in-memory sqlite database for tests.
package testdb

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"wfh-backend/internal/domain/employee"
	"wfh-backend/internal/domain/wfhrequest"
	"wfh-backend/internal/infrastructure/db"
)

func Open(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// every new connection would get its own empty :memory: database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Row builds a pending full-day row; tweak fields after the call.
func Row(requestID string, staffID, managerID int64, day, applied time.Time) *wfhrequest.WFHRequest {
	return &wfhrequest.WFHRequest{
		RequestID:    requestID,
		StaffID:      staffID,
		ManagerID:    managerID,
		SpecificDate: day,
		IsAM:         true,
		IsPM:         true,
		Status:       wfhrequest.StatusPending,
		ApplyDate:    applied,
		Reason:       "Regular WFH",
	}
}

func Seed(t *testing.T, gdb *gorm.DB, values ...any) {
	t.Helper()
	for _, v := range values {
		if err := gdb.Create(v).Error; err != nil {
			t.Fatalf("seed %T: %v", v, err)
		}
	}
}

func Employee(staffID, managerID int64, first string) *employee.Employee {
	return &employee.Employee{
		StaffID:          staffID,
		FirstName:        first,
		LastName:         "Tan",
		Dept:             "Sales",
		Position:         "Account Manager",
		Country:          "Singapore",
		Email:            first + "@allinone.com.sg",
		ReportingManager: managerID,
		Role:             2,
	}
}
