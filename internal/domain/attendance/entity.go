package attendance

import "time"

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLeave   Status = "leave"
)

type Record struct {
	ID         string
	EmployeeID string
	Date       time.Time
	Status     Status
	ClockIn    *time.Time
	ClockOut   *time.Time
	CreatedAt  time.Time
}

// PeriodSummary aggregates an employee's attendance over a pay period.
// TotalRecords distinguishes "marked absent every day" from "not tracked
// at all" - payroll treats the two differently.
type PeriodSummary struct {
	EmployeeID   string
	TotalRecords int
	PresentDays  int
}
