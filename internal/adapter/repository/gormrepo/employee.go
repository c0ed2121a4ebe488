package gormrepo

import (
	"context"

	gerrors "github.com/go-faster/errors"
	"gorm.io/gorm"

	"wfh-backend/internal/domain/employee"
)

// EmployeeDirectory reads the HR-owned employees table.
type EmployeeDirectory struct{ db *gorm.DB }

func NewEmployeeDirectory(db *gorm.DB) *EmployeeDirectory { return &EmployeeDirectory{db: db} }

func (d *EmployeeDirectory) Exists(ctx context.Context, staffID int64) (bool, error) {
	var n int64
	res := d.db.WithContext(ctx).Model(&employee.Employee{}).Where("staff_id = ?", staffID).Count(&n)
	if res.Error != nil {
		return false, gerrors.Wrapf(res.Error, "lookup staff %d", staffID)
	}
	return n > 0, nil
}

func (d *EmployeeDirectory) ListByManager(ctx context.Context, managerID int64) ([]*employee.Employee, error) {
	var out []*employee.Employee
	res := d.db.WithContext(ctx).
		Where("reporting_manager = ? AND staff_id <> ?", managerID, managerID).
		Order("staff_id ASC").
		Find(&out)
	if res.Error != nil {
		return nil, gerrors.Wrapf(res.Error, "list team of manager %d", managerID)
	}
	return out, nil
}

func (d *EmployeeDirectory) ListManagers(ctx context.Context) ([]*employee.Employee, error) {
	reportsTo := d.db.Model(&employee.Employee{}).
		Distinct("reporting_manager").
		Where("reporting_manager <> staff_id")
	var out []*employee.Employee
	res := d.db.WithContext(ctx).
		Where("staff_id IN (?)", reportsTo).
		Order("dept ASC, staff_id ASC").
		Find(&out)
	if res.Error != nil {
		return nil, gerrors.Wrap(res.Error, "list managers")
	}
	return out, nil
}
