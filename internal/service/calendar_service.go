package service

import (
	"context"
	"time"

	"github.com/swiftapp/staff-service/internal/domain"
	"github.com/swiftapp/staff-service/internal/repository"
	apperrors "github.com/swiftapp/staff-service/pkg/util/errorutil"
)

// CalendarService builds per-day job listings for the calendar screens.
type CalendarService struct {
	jobs     repository.JobRepository
	location *time.Location
}

// NewCalendarService constructs the service. Dates are interpreted in loc.
func NewCalendarService(jobs repository.JobRepository, loc *time.Location) *CalendarService {
	if loc == nil {
		loc = time.UTC
	}
	return &CalendarService{jobs: jobs, location: loc}
}

// ParseCalendarRange parses two dd-mm-yyyy dates and checks start < end and that
// the range spans at most one year.
func ParseCalendarRange(startDate, endDate string, loc *time.Location) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(domain.CalendarDateLayout, startDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewValidationError("startDate must be dd-mm-yyyy", map[string]any{"startDate": startDate})
	}
	end, err := time.ParseInLocation(domain.CalendarDateLayout, endDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewValidationError("endDate must be dd-mm-yyyy", map[string]any{"endDate": endDate})
	}
	if err := domain.ValidateCalendarRange(start, end); err != nil {
		return time.Time{}, time.Time{}, apperrors.NewValidationError(err.Error(), map[string]any{
			"startDate": startDate,
			"endDate":   endDate,
		})
	}
	return start, end, nil
}

// Days returns one CalendarDay per date in the inclusive range.
func (s *CalendarService) Days(ctx context.Context, startDate, endDate string) ([]domain.CalendarDay, error) {
	start, end, err := ParseCalendarRange(startDate, endDate, s.location)
	if err != nil {
		return nil, err
	}

	jobs, err := s.jobs.ListStartingBetween(ctx, start, end.AddDate(0, 0, 1))
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	byDate := make(map[string][]domain.Job)
	for _, job := range jobs {
		key := job.StartAt.In(s.location).Format(domain.CalendarDateLayout)
		byDate[key] = append(byDate[key], job)
	}

	var days []domain.CalendarDay
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(domain.CalendarDateLayout)
		dayJobs := byDate[key]
		if dayJobs == nil {
			dayJobs = []domain.Job{}
		}
		days = append(days, domain.CalendarDay{Date: key, JobCount: len(dayJobs), Jobs: dayJobs})
	}
	return days, nil
}
