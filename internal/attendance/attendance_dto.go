package attendance

type MarkAttendanceRequest struct {
	EmployeeID string `json:"employeeId" binding:"required"`
	Date       string `json:"date" binding:"required"`
	Status     string `json:"status" binding:"required"`
}

type AttendanceResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employeeId"`
	Date       string `json:"date"`
	Status     string `json:"status"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

// MarkAttendanceResponse reports whether the mark overwrote an existing day
// (updated=true) or created a fresh one (updated=false).
type MarkAttendanceResponse struct {
	AttendanceResponse
	Updated bool `json:"updated"`
}
