package employee

import (
	"time"

	"github.com/google/uuid"
)

// Employee is keyed internally by a storage uuid; EmployeeID is the
// caller-assigned business key. Its uniqueness is enforced by the schema,
// not just the pre-insert check in the service.
type Employee struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID string    `gorm:"column:employee_id;type:varchar(50);not null;uniqueIndex:uq_employees_employee_id"`
	FullName   string    `gorm:"column:full_name;type:varchar(150);not null"`
	Email      string    `gorm:"column:email;type:varchar(150);not null"`
	Department string    `gorm:"column:department;type:varchar(100);not null"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}
