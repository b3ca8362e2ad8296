package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
)

type AttendanceJobs struct {
	attendanceSvc attendance.AttendanceService
}

func NewAttendanceJobs(attendanceSvc attendance.AttendanceService) *AttendanceJobs {
	return &AttendanceJobs{attendanceSvc: attendanceSvc}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("mark_absent_employees", 1*time.Hour, j.MarkAbsentEmployees)
}

// MarkAbsentEmployees backfills absent rows for the day that just ended.
// Employees who never produced a record for a date get one so reports count
// them; the insert skips anyone who checked in meanwhile.
func (j *AttendanceJobs) MarkAbsentEmployees(ctx context.Context) error {
	// Only run at midnight (00:00-00:59 UTC)
	if time.Now().UTC().Hour() != 0 {
		return nil
	}

	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")

	marked, err := j.attendanceSvc.MarkAbsentees(ctx, yesterday)
	if err != nil {
		return err
	}

	if marked > 0 {
		slog.Info("Cron: Marked absent employees", "date", yesterday, "count", marked)
	}

	return nil
}
