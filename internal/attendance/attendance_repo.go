package attendance

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	Upsert(ctx context.Context, employeeID, date, status string) (*AttendanceRecord, bool, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]AttendanceRecord, error)
	FindAllInRange(ctx context.Context, startDate, endDate string) ([]AttendanceRecord, error)
	FindAll(ctx context.Context) ([]AttendanceRecord, error)
	DeleteAllByEmployee(ctx context.Context, employeeID string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Upsert writes the day's status in one atomic statement. xmax is zero for a
// freshly inserted row, so (xmax <> 0) tells an insert from an overwrite
// without a separate read.
func (r *repository) Upsert(ctx context.Context, employeeID, date, status string) (*AttendanceRecord, bool, error) {
	var row struct {
		AttendanceRecord
		Updated bool
	}

	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO attendance_records (id, employee_id, attendance_date, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, now(), now())
		ON CONFLICT (employee_id, attendance_date) DO UPDATE
		SET status = EXCLUDED.status, updated_at = now()
		RETURNING id, employee_id, attendance_date, status, created_at, updated_at, (xmax <> 0) AS updated
	`, uuid.New(), employeeID, date, status).Scan(&row).Error
	if err != nil {
		return nil, false, err
	}

	return &row.AttendanceRecord, row.Updated, nil
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]AttendanceRecord, error) {
	var rows []AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("attendance_date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllInRange(ctx context.Context, startDate, endDate string) ([]AttendanceRecord, error) {
	var rows []AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("attendance_date BETWEEN ? AND ?", startDate, endDate).
		Order("attendance_date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAll(ctx context.Context) ([]AttendanceRecord, error) {
	var rows []AttendanceRecord
	err := r.db.WithContext(ctx).
		Order("attendance_date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) DeleteAllByEmployee(ctx context.Context, employeeID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Delete(&AttendanceRecord{}, "employee_id = ?", employeeID)
	return res.RowsAffected, res.Error
}
