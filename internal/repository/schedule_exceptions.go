package repository

import (
	"context"
	"time"

	"github.com/blueline-dev/patrol-roster/backend/internal/domain"
)

func scanException(scan func(dst ...any) error) (*domain.ScheduleException, error) {
	exc := &domain.ScheduleException{}
	dst := []any{
		&exc.ID,
		&exc.OfficerID,
		&exc.Date,
		&exc.ShiftTypeID,
		&exc.IsOff,
		&exc.StartTime,
		&exc.EndTime,
		&exc.Position,
		&exc.Unit,
		&exc.Notes,
		&exc.IsPartnership,
		&exc.PartnerOfficerID,
		&exc.PartnershipSuspended,
		&exc.PTOType,
		&exc.CreatedAt,
		&exc.Version,
	}
	if err := scan(dst...); err != nil {
		return nil, err
	}
	return exc, nil
}

const exceptionColumns = `
	id, officer_id, date, shift_type_id, is_off, start_time, end_time,
	position, unit, notes, is_partnership, partner_officer_id,
	partnership_suspended, pto_type, created_at, version
`

func (r *Repository) ListScheduleExceptions(date time.Time, shiftTypeID int64) ([]*domain.ScheduleException, error) {
	query := `
		SELECT ` + exceptionColumns + `
		FROM schedule_exceptions
		WHERE date = $1 AND shift_type_id = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, date, shiftTypeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exceptions := make([]*domain.ScheduleException, 0)
	for rows.Next() {
		exc, err := scanException(rows.Scan)
		if err != nil {
			return nil, err
		}
		exceptions = append(exceptions, exc)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return exceptions, nil
}

func (r *Repository) GetScheduleException(id int64) (*domain.ScheduleException, error) {
	query := `
		SELECT ` + exceptionColumns + `
		FROM schedule_exceptions WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return scanException(func(dst ...any) error {
		return r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...)
	})
}

func (r *Repository) CreateScheduleException(exc *domain.ScheduleException) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO schedule_exceptions (
			officer_id,
			date,
			shift_type_id,
			is_off,
			start_time,
			end_time,
			position,
			unit,
			notes,
			is_partnership,
			partner_officer_id,
			partnership_suspended,
			pto_type
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, version
	`

	args := []any{
		exc.OfficerID,
		exc.Date,
		exc.ShiftTypeID,
		exc.IsOff,
		exc.StartTime,
		exc.EndTime,
		exc.Position,
		exc.Unit,
		exc.Notes,
		exc.IsPartnership,
		exc.PartnerOfficerID,
		exc.PartnershipSuspended,
		exc.PTOType,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&exc.ID, &exc.CreatedAt, &exc.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateScheduleException(exc *domain.ScheduleException) error {
	query := `
		UPDATE schedule_exceptions
		SET
			is_off = $1,
			start_time = $2,
			end_time = $3,
			position = $4,
			unit = $5,
			notes = $6,
			is_partnership = $7,
			partner_officer_id = $8,
			partnership_suspended = $9,
			pto_type = $10,
			version = version + 1
		WHERE id = $11 AND version = $12
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{
		exc.IsOff,
		exc.StartTime,
		exc.EndTime,
		exc.Position,
		exc.Unit,
		exc.Notes,
		exc.IsPartnership,
		exc.PartnerOfficerID,
		exc.PartnershipSuspended,
		exc.PTOType,
		exc.ID,
		exc.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&exc.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteScheduleException(id int64) error {
	query := `
		DELETE FROM schedule_exceptions WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
