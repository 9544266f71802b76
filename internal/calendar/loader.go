package calendar

import (
	"context"
	"sync"
	"time"

	"github.com/swiftapp/staff-service/internal/apiclient"
	"github.com/swiftapp/staff-service/internal/domain"
)

// Loader remembers the last range it loaded so it can be refreshed.
type Loader struct {
	client *apiclient.Client

	mu      sync.Mutex
	start   time.Time
	end     time.Time
	hasLast bool
	days    []domain.CalendarDay
	err     error
	loading bool
}

// NewLoader builds a Loader over client.
func NewLoader(client *apiclient.Client) *Loader {
	return &Loader{client: client}
}

// Load fetches start..end and records it as the last query.
func (l *Loader) Load(ctx context.Context, start, end time.Time) ([]domain.CalendarDay, error) {
	l.mu.Lock()
	l.start, l.end, l.hasLast = start, end, true
	l.loading = true
	l.mu.Unlock()

	days, err := LoadCalendarDays(ctx, l.client, start, end)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.loading = false
	l.err = err
	if err == nil {
		l.days = days
	}
	return days, err
}

// Refresh repeats the last query. It is an error to refresh before any Load.
func (l *Loader) Refresh(ctx context.Context) ([]domain.CalendarDay, error) {
	l.mu.Lock()
	start, end, ok := l.start, l.end, l.hasLast
	l.mu.Unlock()
	if !ok {
		return nil, &CalendarAPIError{Message: "nothing to refresh"}
	}
	return l.Load(ctx, start, end)
}

// Days returns the result of the last successful load.
func (l *Loader) Days() []domain.CalendarDay {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]domain.CalendarDay(nil), l.days...)
}

// Err returns the error of the last load, if any.
func (l *Loader) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// IsLoading reports whether a load is in flight.
func (l *Loader) IsLoading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}
