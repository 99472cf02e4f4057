package repository

import (
	"context"
	"time"

	"github.com/blueline-dev/patrol-roster/backend/internal/domain"
)

func (r *Repository) ListRecurringAssignments(shiftTypeID int64, dayOfWeek int32) ([]*domain.RecurringAssignment, error) {
	// 有效区间的过滤在排班核心里做，这里只按班次和星期几取行
	query := `
		SELECT id, officer_id, day_of_week, shift_type_id, position, unit,
			start_date, end_date, is_partnership, partner_officer_id, created_at, version
		FROM recurring_assignments
		WHERE shift_type_id = $1 AND day_of_week = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, shiftTypeID, dayOfWeek)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]*domain.RecurringAssignment, 0)
	for rows.Next() {
		ra := &domain.RecurringAssignment{}
		dst := []any{
			&ra.ID,
			&ra.OfficerID,
			&ra.DayOfWeek,
			&ra.ShiftTypeID,
			&ra.Position,
			&ra.Unit,
			&ra.StartDate,
			&ra.EndDate,
			&ra.IsPartnership,
			&ra.PartnerOfficerID,
			&ra.CreatedAt,
			&ra.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		assignments = append(assignments, ra)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

func (r *Repository) GetRecurringAssignmentByID(id int64) (*domain.RecurringAssignment, error) {
	query := `
		SELECT officer_id, day_of_week, shift_type_id, position, unit,
			start_date, end_date, is_partnership, partner_officer_id, created_at, version
		FROM recurring_assignments WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	ra := &domain.RecurringAssignment{
		ID: id,
	}

	dst := []any{
		&ra.OfficerID,
		&ra.DayOfWeek,
		&ra.ShiftTypeID,
		&ra.Position,
		&ra.Unit,
		&ra.StartDate,
		&ra.EndDate,
		&ra.IsPartnership,
		&ra.PartnerOfficerID,
		&ra.CreatedAt,
		&ra.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return ra, nil
}

func (r *Repository) CreateRecurringAssignment(ra *domain.RecurringAssignment) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO recurring_assignments (
			officer_id,
			day_of_week,
			shift_type_id,
			position,
			unit,
			start_date,
			end_date,
			is_partnership,
			partner_officer_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, version
	`

	args := []any{
		ra.OfficerID,
		ra.DayOfWeek,
		ra.ShiftTypeID,
		ra.Position,
		ra.Unit,
		ra.StartDate,
		ra.EndDate,
		ra.IsPartnership,
		ra.PartnerOfficerID,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&ra.ID, &ra.CreatedAt, &ra.Version); err != nil {
		return err
	}

	return nil
}

// CloseRecurringAssignment 通过写入 end_date 来软移除固定排班，
// 固定排班永远不会被硬删除
func (r *Repository) CloseRecurringAssignment(ra *domain.RecurringAssignment, endDate time.Time) error {
	query := `
		UPDATE recurring_assignments
		SET
			end_date = $1,
			version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING end_date, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{endDate, ra.ID, ra.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&ra.EndDate, &ra.Version); err != nil {
		return err
	}

	return nil
}
