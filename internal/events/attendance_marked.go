package events

import "time"

const AttendanceMarkedTopic = "hrms.attendance.mark.v1"

type AttendanceMarkedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	EmployeeID string    `json:"employee_id"`
	Date       string    `json:"date"`
	Status     string    `json:"status"`
	Updated    bool      `json:"updated"`
	OccurredAt time.Time `json:"occurred_at"`
}
