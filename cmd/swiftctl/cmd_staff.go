package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/swiftapp/staff-service/internal/domain"
	"github.com/swiftapp/staff-service/internal/roster"
	"github.com/swiftapp/staff-service/internal/staffapi"
)

func newStaffCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "staff",
		Short: "Manage employees and contractors",
	}
	cmd.AddCommand(
		newStaffListCmd(a),
		newStaffStatsCmd(a),
		newStaffOverviewCmd(a),
		newInviteEmployeeCmd(a),
		newSearchContractorsCmd(a),
		newAddContractorCmd(a),
		newUpdateStaffCmd(a),
		newRemoveStaffCmd(a),
		newInviteContractorCmd(a),
	)
	return cmd
}

func newStaffListCmd(a *app) *cobra.Command {
	var filters roster.Filters
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := a.rosterStore()
			if err := store.LoadStaff(cmd.Context()); err != nil {
				return fmt.Errorf("load staff: %w", err)
			}
			a.warn(store.Warning())
			list := store.FilterStaff(filters)
			return a.render(list, staffHeaders, staffRows(list))
		},
	}
	cmd.Flags().StringVar(&filters.Type, "type", "all", "employee, contractor or all")
	cmd.Flags().StringVar(&filters.Team, "team", "", "Only this team")
	cmd.Flags().StringVar(&filters.Status, "status", "all", "active, inactive, pending or all")
	return cmd
}

func newStaffStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show roster totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := a.rosterStore()
			if err := store.LoadStaff(cmd.Context()); err != nil {
				return fmt.Errorf("load staff: %w", err)
			}
			a.warn(store.Warning())
			stats := store.Stats()
			rows := [][]string{
				{"Active", strconv.Itoa(stats.TotalActive)},
				{"Employees", strconv.Itoa(stats.TotalEmployees)},
				{"Contractors", strconv.Itoa(stats.TotalContractors)},
				{"Teams", strconv.Itoa(stats.TotalTeams)},
				{"Average employee rate", "$" + strconv.Itoa(stats.AverageEmployeeRate) + "/hr"},
			}
			return a.render(stats, []string{"METRIC", "VALUE"}, rows)
		},
	}
}

type overview struct {
	Employees   []domain.StaffMember `json:"employees" yaml:"employees"`
	Contractors []domain.StaffMember `json:"contractors" yaml:"contractors"`
}

func newStaffOverviewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Fetch employees and contractors side by side",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var result overview
			if a.cfg.UseMock {
				store := a.rosterStore()
				if err := store.LoadStaff(cmd.Context()); err != nil {
					return fmt.Errorf("load staff: %w", err)
				}
				result = overview{Employees: store.Employees(), Contractors: store.Contractors()}
			} else {
				api := staffapi.New(a.client)
				g, ctx := errgroup.WithContext(cmd.Context())
				g.Go(func() error {
					var err error
					result.Employees, err = api.FetchEmployees(ctx)
					return err
				})
				g.Go(func() error {
					var err error
					result.Contractors, err = api.FetchContractors(ctx)
					return err
				})
				if err := g.Wait(); err != nil {
					return err
				}
			}

			if a.output != outputTable {
				return a.render(result, nil, nil)
			}
			a.title(fmt.Sprintf("Employees (%d)", len(result.Employees)))
			if err := a.render(nil, staffHeaders, staffRows(result.Employees)); err != nil {
				return err
			}
			a.title(fmt.Sprintf("Contractors (%d)", len(result.Contractors)))
			return a.render(nil, staffHeaders, staffRows(result.Contractors))
		},
	}
}

func newInviteEmployeeCmd(a *app) *cobra.Command {
	var in domain.EmployeeInvite
	cmd := &cobra.Command{
		Use:   "invite-employee",
		Short: "Invite a new employee to the roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := roster.ValidateEmployeeInvite(in); err != nil {
				return fmt.Errorf("invalid invitation:\n%w", err)
			}
			store := a.rosterStore()
			if err := store.InviteEmployee(cmd.Context(), in); err != nil {
				return err
			}
			a.warn(store.Warning())
			fmt.Fprintf(a.out, "Invitation sent to %s\n", in.Email)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.FirstName, "first-name", "", "First name")
	f.StringVar(&in.LastName, "last-name", "", "Last name")
	f.StringVar(&in.Email, "email", "", "Email address")
	f.StringVar(&in.Phone, "phone", "", "Phone number")
	f.StringVar(&in.Role, "role", "", "Role, e.g. Mover")
	f.StringVar(&in.Team, "team", "", "Team")
	f.Float64Var(&in.HourlyRate, "hourly-rate", 0, "Hourly rate in AUD")
	f.StringVar(&in.TFN, "tfn", "", "Tax file number")
	return cmd
}

func newSearchContractorsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <name or ABN>",
		Short: "Search the contractor directory",
		Long: `Search the contractor directory.

A term of exactly 11 characters once spaces are removed is matched against ABNs;
anything else is a case-insensitive match on the contractor's full name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			found, err := a.rosterStore().SearchContractor(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.render(found, contractorHeaders, contractorRows(found))
		},
	}
}

func newAddContractorCmd(a *app) *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "add-contractor <directory id>",
		Short: "Add a directory contractor to the roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			contractStatus := domain.ContractStatus(status)
			if err := roster.ValidateContractorStatus(contractStatus); err != nil {
				return err
			}
			store := a.rosterStore()
			if err := store.AddContractor(cmd.Context(), args[0], contractStatus); err != nil {
				return err
			}
			a.warn(store.Warning())
			fmt.Fprintf(a.out, "Contractor %s added (%s)\n", args[0], contractStatus)
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "contract-status", string(domain.ContractStandard), "exclusive, non-exclusive, preferred or standard")
	return cmd
}

func newUpdateStaffCmd(a *app) *cobra.Command {
	var (
		team, role, phone, email, status, contractStatus, rateType string
		hourlyRate, rate                                           float64
	)
	cmd := &cobra.Command{
		Use:   "update <staff id>",
		Short: "Change fields of a staff member",
		Long: `Change fields of a staff member. Only the flags given are sent.

Employees accept --hourly-rate; contractors accept --contract-status, --rate-type and --rate.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch domain.StaffPatch
			f := cmd.Flags()
			if f.Changed("team") {
				patch.Team = &team
			}
			if f.Changed("role") {
				patch.Role = &role
			}
			if f.Changed("phone") {
				patch.Phone = &phone
			}
			if f.Changed("email") {
				patch.Email = &email
			}
			if f.Changed("status") {
				s := domain.StaffStatus(status)
				patch.Status = &s
			}
			if f.Changed("hourly-rate") {
				patch.HourlyRate = &hourlyRate
			}
			if f.Changed("contract-status") {
				cs := domain.ContractStatus(contractStatus)
				patch.ContractStatus = &cs
			}
			if f.Changed("rate-type") {
				rt := domain.RateType(rateType)
				patch.RateType = &rt
			}
			if f.Changed("rate") {
				patch.Rate = &rate
			}
			if err := roster.ValidateStaffPatch(patch); err != nil {
				return fmt.Errorf("invalid update:\n%w", err)
			}

			store := a.rosterStore()
			if err := store.UpdateStaff(cmd.Context(), args[0], patch); err != nil {
				return err
			}
			a.warn(store.Warning())
			fmt.Fprintf(a.out, "Staff member %s updated\n", args[0])
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&team, "team", "", "Team")
	f.StringVar(&role, "role", "", "Role")
	f.StringVar(&phone, "phone", "", "Phone number")
	f.StringVar(&email, "email", "", "Email address")
	f.StringVar(&status, "status", "", "active, inactive or pending")
	f.Float64Var(&hourlyRate, "hourly-rate", 0, "Employee hourly rate")
	f.StringVar(&contractStatus, "contract-status", "", "Contractor contract status")
	f.StringVar(&rateType, "rate-type", "", "Contractor rate type: hourly, fixed or project")
	f.Float64Var(&rate, "rate", 0, "Contractor rate")
	return cmd
}

func newRemoveStaffCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <staff id>",
		Short: "Remove a staff member from the roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := a.rosterStore()
			if err := store.RemoveStaff(cmd.Context(), args[0]); err != nil {
				return err
			}
			a.warn(store.Warning())
			fmt.Fprintf(a.out, "Staff member %s removed\n", args[0])
			return nil
		},
	}
}

func newInviteContractorCmd(a *app) *cobra.Command {
	var (
		in       domain.ContractorInvite
		rateType string
	)
	cmd := &cobra.Command{
		Use:   "invite-contractor",
		Short: "Invite a contractor to join the platform directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.UseMock {
				return fmt.Errorf("invite contractor: %w", errMockUnsupported)
			}
			in.RateType = domain.RateType(rateType)
			if err := in.Validate(); err != nil {
				return fmt.Errorf("invalid invitation:\n%w", err)
			}
			entry, err := staffapi.New(a.client).InviteContractor(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Invitation sent to %s (directory id %s)\n", entry.Email, entry.ID)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.FirstName, "first-name", "", "First name")
	f.StringVar(&in.LastName, "last-name", "", "Last name")
	f.StringVar(&in.Email, "email", "", "Email address")
	f.StringVar(&in.Phone, "phone", "", "Phone number")
	f.StringVar(&in.ABN, "abn", "", "Australian Business Number")
	f.StringVar(&in.Role, "role", "", "Role")
	f.StringVar(&rateType, "rate-type", string(domain.RateHourly), "hourly, fixed or project")
	f.Float64Var(&in.Rate, "rate", 0, "Rate in AUD")
	return cmd
}
