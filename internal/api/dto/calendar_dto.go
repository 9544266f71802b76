package dto

// CalendarDaysRequest payload for POST /calendar-days. Dates are dd-mm-yyyy.
type CalendarDaysRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}
