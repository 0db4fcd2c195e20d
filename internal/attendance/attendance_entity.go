package attendance

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceRecord holds one Present/Absent status for one employee on one
// calendar day. The date is the literal YYYY-MM-DD string so zero-padded
// lexicographic comparison doubles as chronological comparison. The composite
// unique index is the authority for mark races: two concurrent marks on the
// same (employee_id, attendance_date) converge to a single row.
type AttendanceRecord struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID string    `gorm:"column:employee_id;type:varchar(50);not null;uniqueIndex:uq_attendance_employee_date,priority:1;index"`
	Date       string    `gorm:"column:attendance_date;type:varchar(10);not null;uniqueIndex:uq_attendance_employee_date,priority:2"`
	Status     string    `gorm:"column:status;type:varchar(10);not null"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}
