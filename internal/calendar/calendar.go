// Package calendar loads per-day job listings for a date range.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/swiftapp/staff-service/internal/api/dto"
	"github.com/swiftapp/staff-service/internal/apiclient"
	"github.com/swiftapp/staff-service/internal/domain"
)

// CalendarAPIError is the only error type LoadCalendarDays returns.
// StatusCode is zero when no HTTP response was received.
type CalendarAPIError struct {
	Message    string
	StatusCode int
}

func (e *CalendarAPIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("calendar: %s (status %d)", e.Message, e.StatusCode)
	}
	return "calendar: " + e.Message
}

// LoadCalendarDays fetches one CalendarDay per date between start and end inclusive.
// Only the calendar date of start and end is used.
func LoadCalendarDays(ctx context.Context, client *apiclient.Client, start, end time.Time) ([]domain.CalendarDay, error) {
	start, end = dateOf(start), dateOf(end)
	if err := domain.ValidateCalendarRange(start, end); err != nil {
		return nil, &CalendarAPIError{Message: err.Error()}
	}

	req := dto.CalendarDaysRequest{
		StartDate: start.Format(domain.CalendarDateLayout),
		EndDate:   end.Format(domain.CalendarDateLayout),
	}
	var days []domain.CalendarDay
	if err := client.Do(ctx, http.MethodPost, "calendar-days", nil, req, &days); err != nil {
		return nil, toCalendarError(err)
	}
	if days == nil {
		days = []domain.CalendarDay{}
	}
	return days, nil
}

func toCalendarError(err error) *CalendarAPIError {
	var se *apiclient.StatusError
	if errors.As(err, &se) {
		msg := se.Message
		if msg == "" {
			msg = http.StatusText(se.StatusCode)
		}
		return &CalendarAPIError{Message: msg, StatusCode: se.StatusCode}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &CalendarAPIError{Message: "request timed out"}
	}
	return &CalendarAPIError{Message: err.Error()}
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
