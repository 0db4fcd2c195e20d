package employee

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"time"

	employeeerrors "github.com/Ashu-Az/employee-attendance/internal/employee/errors"
	"github.com/Ashu-Az/employee-attendance/internal/events"
	"github.com/Ashu-Az/employee-attendance/internal/messaging/kafka"
	"github.com/Ashu-Az/employee-attendance/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Same email shape the admin UI validates against; keep the two in sync.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AttendanceCleanup removes every attendance record owned by a business key.
// Removing zero records is success; the call is safe to repeat.
type AttendanceCleanup interface {
	RemoveAllForEmployee(ctx context.Context, employeeID string) (int64, error)
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo    Repository
	cleanup AttendanceCleanup
	outbox  kafka.OutboxRepository
	logger  *zap.Logger
}

func NewService(repo Repository, cleanup AttendanceCleanup, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(repo, cleanup, nil, logger...)
}

func NewServiceWithOutbox(
	repo Repository,
	cleanup AttendanceCleanup,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		repo:    repo,
		cleanup: cleanup,
		outbox:  outboxRepo,
		logger:  l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("business_key", req.EmployeeID),
	)

	employeeID := strings.TrimSpace(req.EmployeeID)
	fullName := strings.TrimSpace(req.FullName)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	department := strings.TrimSpace(req.Department)

	if employeeID == "" || fullName == "" || email == "" || department == "" {
		s.logger.Warn("create employee missing fields", zap.String("request_id", rid))
		return EmployeeResponse{}, employeeerrors.ErrMissingRequiredFields
	}
	if !emailPattern.MatchString(email) {
		s.logger.Warn("create employee invalid email",
			zap.String("request_id", rid),
			zap.String("email", email),
		)
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmail
	}

	// Pre-insert duplicate check; the unique index on employee_id is the
	// actual authority when two creates race.
	taken, err := s.repo.ExistsByEmployeeID(ctx, employeeID)
	if err != nil {
		s.logger.Error("create employee duplicate check failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	if taken {
		s.logger.Warn("create employee business key taken",
			zap.String("business_key", employeeID),
		)
		return EmployeeResponse{}, employeeerrors.ErrEmployeeIDTaken
	}

	empl := &Employee{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		FullName:   fullName,
		Email:      email,
		Department: department,
	}

	if err := s.repo.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.enqueueOutbox(ctx, empl.ID.String(), events.EmployeeCreatedEvent{
		EventType:  "employee_created",
		RequestID:  rid,
		EmployeeID: empl.EmployeeID,
		FullName:   empl.FullName,
		Department: empl.Department,
		OccurredAt: time.Now().UTC(),
	}, "employee_created")

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("business_key", empl.EmployeeID),
	)
	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested")
	empls, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(empls), nil
}

// Delete removes the employee row first, then the attendance rows that carry
// its business key. The two steps are an ordered compensating pair, not one
// transaction: the cleanup is idempotent and zero removed rows is success.
func (s *service) Delete(ctx context.Context, id string) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete employee requested",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)

	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrEmployeeNotFound
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("delete employee fetch failed", zap.String("employee_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete employee failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	removed, err := s.cleanup.RemoveAllForEmployee(ctx, empl.EmployeeID)
	if err != nil {
		s.logger.Error("attendance cleanup failed",
			zap.String("business_key", empl.EmployeeID),
			zap.Error(err),
		)
		return err
	}

	s.enqueueOutbox(ctx, empl.ID.String(), events.EmployeeDeletedEvent{
		EventType:         "employee_deleted",
		RequestID:         rid,
		EmployeeID:        empl.EmployeeID,
		AttendanceRemoved: removed,
		OccurredAt:        time.Now().UTC(),
	}, "employee_deleted")

	s.logger.Info("delete employee success",
		zap.String("request_id", rid),
		zap.String("business_key", empl.EmployeeID),
		zap.Int64("attendance_removed", removed),
	)
	return nil
}

func (s *service) enqueueOutbox(ctx context.Context, aggregateID string, event any, eventType string) {
	if s.outbox == nil {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal event failed", zap.String("event_type", eventType), zap.Error(err))
		return
	}

	if err := s.outbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "employee",
		AggregateID:   aggregateID,
		EventType:     eventType,
		Topic:         events.EmployeeLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		// The record itself is already committed; a lost event only delays
		// downstream consumers, so log and move on.
		s.logger.Error("outbox enqueue failed", zap.String("event_type", eventType), zap.Error(err))
	}
}

func mapToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         empl.ID.String(),
		EmployeeID: empl.EmployeeID,
		FullName:   empl.FullName,
		Email:      empl.Email,
		Department: empl.Department,
		CreatedAt:  empl.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:  empl.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}
