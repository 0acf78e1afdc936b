package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cadencehr/payroll-backend-go/internal/domain/attendance"
	"github.com/cadencehr/payroll-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) PeriodSummary(ctx context.Context, employeeID string, from, to time.Time) (attendance.PeriodSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*) AS total_records,
			   COUNT(*) FILTER (WHERE status = 'present') AS present_days
		FROM attendance_records
		WHERE employee_id = $1 AND date >= $2 AND date <= $3
	`

	summary := attendance.PeriodSummary{EmployeeID: employeeID}
	err := q.QueryRow(ctx, query, employeeID, from, to).Scan(&summary.TotalRecords, &summary.PresentDays)
	if err != nil {
		return attendance.PeriodSummary{}, fmt.Errorf("failed to summarize attendance: %w", err)
	}

	return summary, nil
}
