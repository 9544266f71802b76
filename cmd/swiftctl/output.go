package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/swiftapp/staff-service/internal/domain"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E5A50A"))
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
)

// render writes v as json or yaml, or the given rows as a table.
func (a *app) render(v any, headers []string, rows [][]string) error {
	switch a.output {
	case outputJSON:
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(a.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		_, err := fmt.Fprintln(a.out, newTable(headers, rows))
		return err
	}
}

func (a *app) title(text string) {
	if a.output == outputTable {
		fmt.Fprintln(a.out, titleStyle.Render(text))
	}
}

func (a *app) warn(msg string) {
	if msg != "" {
		fmt.Fprintln(a.errOut, warningStyle.Render(msg))
	}
}

func newTable(headers []string, rows [][]string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)
}

var staffHeaders = []string{"ID", "NAME", "TYPE", "ROLE", "TEAM", "STATUS", "RATE"}

func staffRows(list []domain.StaffMember) [][]string {
	rows := make([][]string, 0, len(list))
	for _, s := range list {
		rows = append(rows, []string{s.ID, s.FullName(), string(s.Type), s.Role, s.Team, string(s.Status), staffRate(s)})
	}
	return rows
}

func staffRate(s domain.StaffMember) string {
	if s.IsEmployee() {
		return "$" + money(s.HourlyRate) + "/hr"
	}
	return "$" + money(s.Rate) + " " + string(s.RateType)
}

var contractorHeaders = []string{"ID", "NAME", "ABN", "ROLE", "RATE", "VERIFIED"}

func contractorRows(list []domain.DirectoryContractor) [][]string {
	rows := make([][]string, 0, len(list))
	for _, c := range list {
		rows = append(rows, []string{
			c.ID, c.FullName(), c.ABN, c.Role,
			"$" + money(c.Rate) + " " + string(c.RateType),
			strconv.FormatBool(c.IsVerified),
		})
	}
	return rows
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
