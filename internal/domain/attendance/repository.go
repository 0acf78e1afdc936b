package attendance

import (
	"context"
	"time"
)

// AttendanceRepository is a read-only input to payroll.
type AttendanceRepository interface {
	PeriodSummary(ctx context.Context, employeeID string, from, to time.Time) (PeriodSummary, error)
}
