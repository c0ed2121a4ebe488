package employee

// Employee is owned by the HR directory; this service only reads it.
// Table: employees
type Employee struct {
	StaffID          int64  `gorm:"column:staff_id;primaryKey;autoIncrement:false" json:"staff_id"`
	FirstName        string `gorm:"column:staff_fname;size:50;not null" json:"staff_fname"`
	LastName         string `gorm:"column:staff_lname;size:50;not null" json:"staff_lname"`
	Dept             string `gorm:"column:dept;size:50;not null" json:"dept"`
	Position         string `gorm:"column:position;size:50;not null" json:"position"`
	Country          string `gorm:"column:country;size:50;not null" json:"country"`
	Email            string `gorm:"column:email;size:50;not null" json:"email"`
	ReportingManager int64  `gorm:"column:reporting_manager;index" json:"reporting_manager"`
	Role             int    `gorm:"column:role;not null" json:"role"`
}

func (Employee) TableName() string { return "employees" }
