package attendance

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	attendanceerrors "github.com/Ashu-Az/employee-attendance/internal/attendance/errors"
	"github.com/Ashu-Az/employee-attendance/internal/events"
	"github.com/Ashu-Az/employee-attendance/internal/messaging/kafka"
	"github.com/Ashu-Az/employee-attendance/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"

	dateLayout = "2006-01-02"
)

// Directory answers whether a business key names a registered employee.
// Satisfied by the employee repository; keeps this package from importing it.
type Directory interface {
	ExistsByEmployeeID(ctx context.Context, employeeID string) (bool, error)
}

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	Mark(ctx context.Context, req MarkAttendanceRequest) (MarkAttendanceResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]AttendanceResponse, error)
	GetAll(ctx context.Context, startDate, endDate string) ([]AttendanceResponse, error)
	RemoveAllForEmployee(ctx context.Context, employeeID string) (int64, error)
}

type service struct {
	repo      Repository
	directory Directory
	cache     *RecordCache
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(repo Repository, directory Directory, cache *RecordCache, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(repo, directory, cache, nil, logger...)
}

func NewServiceWithOutbox(
	repo Repository,
	directory Directory,
	cache *RecordCache,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	if cache == nil {
		cache = NewRecordCache(nil, 0, l)
	}
	return &service{
		repo:      repo,
		directory: directory,
		cache:     cache,
		outbox:    outboxRepo,
		logger:    l,
	}
}

// Mark upserts the day's status keyed by (employeeId, date). The find-free
// single-statement upsert makes the composite unique index the only
// serialization point: concurrent marks for the same pair converge to one
// row, last write wins.
func (s *service) Mark(ctx context.Context, req MarkAttendanceRequest) (MarkAttendanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	employeeID := strings.TrimSpace(req.EmployeeID)
	status := strings.TrimSpace(req.Status)
	date := strings.TrimSpace(req.Date)

	if employeeID == "" || date == "" || status == "" {
		return MarkAttendanceResponse{}, attendanceerrors.ErrMissingRequiredFields
	}
	if status != StatusPresent && status != StatusAbsent {
		s.logger.Warn("mark attendance invalid status",
			zap.String("request_id", rid),
			zap.String("status", status),
		)
		return MarkAttendanceResponse{}, attendanceerrors.ErrInvalidStatus
	}
	parsed, err := time.Parse(dateLayout, date)
	if err != nil || parsed.Format(dateLayout) != date {
		s.logger.Warn("mark attendance invalid date",
			zap.String("request_id", rid),
			zap.String("date", date),
		)
		return MarkAttendanceResponse{}, attendanceerrors.ErrInvalidDate
	}

	exists, err := s.directory.ExistsByEmployeeID(ctx, employeeID)
	if err != nil {
		s.logger.Error("mark attendance directory lookup failed", zap.Error(err))
		return MarkAttendanceResponse{}, err
	}
	if !exists {
		s.logger.Warn("mark attendance unknown employee",
			zap.String("request_id", rid),
			zap.String("business_key", employeeID),
		)
		return MarkAttendanceResponse{}, attendanceerrors.ErrEmployeeNotFound
	}

	row, updated, err := s.repo.Upsert(ctx, employeeID, date, status)
	if err != nil {
		s.logger.Error("mark attendance upsert failed", zap.Error(err))
		return MarkAttendanceResponse{}, err
	}

	s.cache.Invalidate(ctx, employeeID)

	s.enqueueOutbox(ctx, events.AttendanceMarkedEvent{
		EventType:  "attendance_marked",
		RequestID:  rid,
		EmployeeID: employeeID,
		Date:       date,
		Status:     status,
		Updated:    updated,
		OccurredAt: time.Now().UTC(),
	})

	s.logger.Info("mark attendance success",
		zap.String("request_id", rid),
		zap.String("business_key", employeeID),
		zap.String("date", date),
		zap.String("status", status),
		zap.Bool("updated", updated),
	)

	return MarkAttendanceResponse{
		AttendanceResponse: mapToResponse(*row),
		Updated:            updated,
	}, nil
}

// GetByEmployee does not check the directory: an unknown business key yields
// an empty list rather than an error.
func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]AttendanceResponse, error) {
	return s.cache.GetOrFetch(ctx, employeeID, func() ([]AttendanceResponse, error) {
		rows, err := s.repo.FindAllByEmployee(ctx, employeeID)
		if err != nil {
			s.logger.Error("get attendance by employee failed", zap.Error(err))
			return nil, err
		}
		return mapToListResponse(rows), nil
	})
}

// GetAll filters by date only when both bounds are present; a single bound is
// ignored rather than treated as open-ended.
func (s *service) GetAll(ctx context.Context, startDate, endDate string) ([]AttendanceResponse, error) {
	startDate = strings.TrimSpace(startDate)
	endDate = strings.TrimSpace(endDate)

	var (
		rows []AttendanceRecord
		err  error
	)
	if startDate != "" && endDate != "" {
		rows, err = s.repo.FindAllInRange(ctx, startDate, endDate)
	} else {
		rows, err = s.repo.FindAll(ctx)
	}
	if err != nil {
		s.logger.Error("get all attendance failed", zap.Error(err))
		return nil, err
	}

	return mapToListResponse(rows), nil
}

// RemoveAllForEmployee is the cleanup half of the employee-delete cascade.
// Deleting zero rows is success, so retries cannot fail on an already-clean
// ledger.
func (s *service) RemoveAllForEmployee(ctx context.Context, employeeID string) (int64, error) {
	removed, err := s.repo.DeleteAllByEmployee(ctx, employeeID)
	if err != nil {
		s.logger.Error("remove attendance for employee failed",
			zap.String("business_key", employeeID),
			zap.Error(err),
		)
		return 0, err
	}

	s.cache.Invalidate(ctx, employeeID)

	s.logger.Info("attendance removed for employee",
		zap.String("business_key", employeeID),
		zap.Int64("removed", removed),
	)
	return removed, nil
}

func (s *service) enqueueOutbox(ctx context.Context, event events.AttendanceMarkedEvent) {
	if s.outbox == nil {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal event failed", zap.Error(err))
		return
	}

	if err := s.outbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     event.RequestID,
		AggregateType: "attendance",
		AggregateID:   event.EmployeeID + ":" + event.Date,
		EventType:     event.EventType,
		Topic:         events.AttendanceMarkedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("outbox enqueue failed", zap.Error(err))
	}
}

func mapToResponse(a AttendanceRecord) AttendanceResponse {
	return AttendanceResponse{
		ID:         a.ID.String(),
		EmployeeID: a.EmployeeID,
		Date:       a.Date,
		Status:     a.Status,
		CreatedAt:  a.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:  a.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func mapToListResponse(rows []AttendanceRecord) []AttendanceResponse {
	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res
}
