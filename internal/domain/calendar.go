package domain

import (
	"errors"
	"time"
)

// CalendarDateLayout is the wire format of calendar dates (dd-mm-yyyy).
const CalendarDateLayout = "02-01-2006"

// JobStatus enumerates the lifecycle of a moving job.
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusConfirmed  JobStatus = "confirmed"
	JobStatusInProgress JobStatus = "in-progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusCancelled  JobStatus = "cancelled"
)

// Job is a scheduled move shown on the calendar.
type Job struct {
	ID         string    `json:"id" yaml:"id"`
	Code       string    `json:"code" yaml:"code"`
	ClientName string    `json:"clientName" yaml:"clientName"`
	Address    string    `json:"address" yaml:"address"`
	Team       string    `json:"team,omitempty" yaml:"team,omitempty"`
	Status     JobStatus `json:"status" yaml:"status"`
	StartAt    time.Time `json:"startAt" yaml:"startAt"`
	EndAt      time.Time `json:"endAt" yaml:"endAt"`
}

// CalendarDay groups the jobs starting on one date.
type CalendarDay struct {
	Date     string `json:"date" yaml:"date"`
	JobCount int    `json:"jobCount" yaml:"jobCount"`
	Jobs     []Job  `json:"jobs" yaml:"jobs"`
}

// ValidateCalendarRange requires start strictly before end and end no later than
// one calendar year after start.
func ValidateCalendarRange(start, end time.Time) error {
	if !start.Before(end) {
		return errors.New("start date must be before end date")
	}
	if end.After(start.AddDate(1, 0, 0)) {
		return errors.New("date range cannot exceed one year")
	}
	return nil
}
