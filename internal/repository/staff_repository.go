package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/swiftapp/staff-service/internal/domain"
)

// StaffRepository handles persistence for roster records.
type StaffRepository interface {
	Create(ctx context.Context, staff *domain.StaffMember) error
	Update(ctx context.Context, staff *domain.StaffMember) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.StaffMember, error)
	GetByEmail(ctx context.Context, email string) (*domain.StaffMember, error)
	GetContractorByABN(ctx context.Context, abn string) (*domain.StaffMember, error)
	List(ctx context.Context, filter StaffFilter) ([]domain.StaffMember, error)
	ExpireInvitations(ctx context.Context, sentBefore time.Time) ([]domain.StaffMember, error)
}

// StaffFilter defines query params for staff listing.
type StaffFilter struct {
	Type   *domain.StaffType
	Team   *string
	Status *domain.StaffStatus
	Limit  int
	Offset int
}

const (
	defaultStaffLimit = 500
	startDateLayout   = "2006-01-02"
)

type staffRepository struct {
	pool *pgxpool.Pool
}

// NewStaffRepository instantiates the repository.
func NewStaffRepository(pool *pgxpool.Pool) StaffRepository {
	return &staffRepository{pool: pool}
}

const staffColumns = `
        id, staff_type, first_name, last_name, email, phone, role, COALESCE(team, ''),
        COALESCE(to_char(start_date, 'YYYY-MM-DD'), ''), status,
        COALESCE(tfn, ''), COALESCE(hourly_rate, 0), COALESCE(invitation_status, ''), account_linked, invited_at,
        COALESCE(abn, ''), COALESCE(contract_status, ''), COALESCE(rate_type, ''), COALESCE(rate, 0), is_verified,
        created_at, updated_at`

func (r *staffRepository) Create(ctx context.Context, staff *domain.StaffMember) error {
	const query = `
        INSERT INTO staff_members (
            staff_type, first_name, last_name, email, phone, role, team, start_date, status,
            tfn, hourly_rate, invitation_status, account_linked, invited_at,
            abn, contract_status, rate_type, rate, is_verified)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query, staffArgs(staff)...).
		Scan(&staff.ID, &staff.CreatedAt, &staff.UpdatedAt)
}

func (r *staffRepository) Update(ctx context.Context, staff *domain.StaffMember) error {
	const query = `
        UPDATE staff_members
        SET staff_type=$1, first_name=$2, last_name=$3, email=$4, phone=$5, role=$6, team=$7, start_date=$8,
            status=$9, tfn=$10, hourly_rate=$11, invitation_status=$12, account_linked=$13, invited_at=$14,
            abn=$15, contract_status=$16, rate_type=$17, rate=$18, is_verified=$19, updated_at=NOW()
        WHERE id=$20
        RETURNING updated_at`

	args := append(staffArgs(staff), staff.ID)
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&staff.UpdatedAt); err != nil {
		return err
	}
	return nil
}

func (r *staffRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM staff_members WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *staffRepository) GetByID(ctx context.Context, id string) (*domain.StaffMember, error) {
	return r.getOne(ctx, `SELECT`+staffColumns+` FROM staff_members WHERE id=$1`, id)
}

func (r *staffRepository) GetByEmail(ctx context.Context, email string) (*domain.StaffMember, error) {
	return r.getOne(ctx, `SELECT`+staffColumns+` FROM staff_members WHERE lower(email)=lower($1)`, email)
}

func (r *staffRepository) GetContractorByABN(ctx context.Context, abn string) (*domain.StaffMember, error) {
	const where = ` FROM staff_members WHERE staff_type='contractor' AND replace(abn, ' ', '')=$1`
	return r.getOne(ctx, `SELECT`+staffColumns+where, domain.StripSpaces(abn))
}

func (r *staffRepository) List(ctx context.Context, filter StaffFilter) ([]domain.StaffMember, error) {
	query := `SELECT` + staffColumns + ` FROM staff_members`
	args := []any{}
	clauses := []string{}

	if filter.Type != nil {
		args = append(args, *filter.Type)
		clauses = append(clauses, fmt.Sprintf("staff_type=$%d", len(args)))
	}
	if filter.Team != nil {
		args = append(args, *filter.Team)
		clauses = append(clauses, fmt.Sprintf("team=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	query += " ORDER BY created_at ASC, id ASC"
	limit, offset := normalizePage(filter.Limit, filter.Offset, defaultStaffLimit)
	query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectStaff(rows)
}

func (r *staffRepository) ExpireInvitations(ctx context.Context, sentBefore time.Time) ([]domain.StaffMember, error) {
	query := `
        UPDATE staff_members SET invitation_status='expired', updated_at=NOW()
        WHERE staff_type='employee' AND invitation_status='sent' AND invited_at < $1
        RETURNING` + staffColumns

	rows, err := r.pool.Query(ctx, query, sentBefore)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectStaff(rows)
}

func (r *staffRepository) getOne(ctx context.Context, query string, arg any) (*domain.StaffMember, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list, err := collectStaff(rows)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, pgx.ErrNoRows
	}
	return &list[0], nil
}

func collectStaff(rows pgx.Rows) ([]domain.StaffMember, error) {
	var result []domain.StaffMember
	for rows.Next() {
		var staff domain.StaffMember
		if err := rows.Scan(
			&staff.ID,
			&staff.Type,
			&staff.FirstName,
			&staff.LastName,
			&staff.Email,
			&staff.Phone,
			&staff.Role,
			&staff.Team,
			&staff.StartDate,
			&staff.Status,
			&staff.TFN,
			&staff.HourlyRate,
			&staff.InvitationStatus,
			&staff.AccountLinked,
			&staff.InvitedAt,
			&staff.ABN,
			&staff.ContractStatus,
			&staff.RateType,
			&staff.Rate,
			&staff.IsVerified,
			&staff.CreatedAt,
			&staff.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, staff)
	}
	return result, rows.Err()
}

func staffArgs(staff *domain.StaffMember) []any {
	return []any{
		staff.Type,
		staff.FirstName,
		staff.LastName,
		staff.Email,
		staff.Phone,
		staff.Role,
		nullIfEmpty(staff.Team),
		parseStartDate(staff.StartDate),
		staff.Status,
		nullIfEmpty(staff.TFN),
		nullIfZero(staff.HourlyRate),
		nullIfEmpty(string(staff.InvitationStatus)),
		staff.AccountLinked,
		staff.InvitedAt,
		nullIfEmpty(staff.ABN),
		nullIfEmpty(string(staff.ContractStatus)),
		nullIfEmpty(string(staff.RateType)),
		nullIfZero(staff.Rate),
		staff.IsVerified,
	}
}

func parseStartDate(v string) *time.Time {
	if v == "" {
		return nil
	}
	t, err := time.Parse(startDateLayout, v)
	if err != nil {
		return nil
	}
	return &t
}

func nullIfEmpty(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func nullIfZero(v float64) *float64 {
	if v == 0 {
		return nil
	}
	return &v
}

func normalizePage(limit, offset, fallback int) (int, int) {
	if limit <= 0 {
		limit = fallback
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
