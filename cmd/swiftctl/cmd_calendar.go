package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/swiftapp/staff-service/internal/calendar"
	"github.com/swiftapp/staff-service/internal/domain"
)

func newCalendarCmd(a *app) *cobra.Command {
	var (
		startDate, endDate string
		watch              time.Duration
	)
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show jobs per day for a date range",
		Long: `Show jobs per day for a date range.

Dates use dd-mm-yyyy. The range defaults to the coming week and may span at most
one year. With --watch the same range is reloaded until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.UseMock {
				return fmt.Errorf("calendar: %w", errMockUnsupported)
			}
			today := time.Now()
			start, err := parseDateFlag(startDate, today)
			if err != nil {
				return fmt.Errorf("--start: %w", err)
			}
			end, err := parseDateFlag(endDate, today.AddDate(0, 0, 7))
			if err != nil {
				return fmt.Errorf("--end: %w", err)
			}

			ctx := cmd.Context()
			loader := calendar.NewLoader(a.client)
			days, err := loader.Load(ctx, start, end)
			if err != nil {
				return err
			}
			if err := a.renderDays(days); err != nil {
				return err
			}
			if watch <= 0 {
				return nil
			}

			ticker := time.NewTicker(watch)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					days, err := loader.Refresh(ctx)
					if err != nil {
						a.logger.Warn("calendar refresh failed", zap.Error(err))
						continue
					}
					if err := a.renderDays(days); err != nil {
						return err
					}
				}
			}
		},
	}
	cmd.Flags().StringVar(&startDate, "start", "", "First day, dd-mm-yyyy (default today)")
	cmd.Flags().StringVar(&endDate, "end", "", "Last day, dd-mm-yyyy (default a week from today)")
	cmd.Flags().DurationVar(&watch, "watch", 0, "Reload the range at this interval")
	return cmd
}

func parseDateFlag(value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return fallback, nil
	}
	return time.ParseInLocation(domain.CalendarDateLayout, value, time.Local)
}

func (a *app) renderDays(days []domain.CalendarDay) error {
	rows := make([][]string, 0, len(days))
	for _, day := range days {
		codes := make([]string, 0, len(day.Jobs))
		for _, job := range day.Jobs {
			codes = append(codes, job.Code)
		}
		rows = append(rows, []string{day.Date, strconv.Itoa(day.JobCount), strings.Join(codes, ", ")})
	}
	return a.render(days, []string{"DATE", "JOBS", "CODES"}, rows)
}
