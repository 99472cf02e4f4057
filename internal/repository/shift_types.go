package repository

import (
	"context"
	"time"

	"github.com/blueline-dev/patrol-roster/backend/internal/domain"
)

func (r *Repository) GetShiftType(id int64) (*domain.ShiftType, error) {
	query := `
		SELECT name, start_time, end_time, created_at, version
		FROM shift_types WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	st := &domain.ShiftType{
		ID: id,
	}

	dst := []any{&st.Name, &st.StartTime, &st.EndTime, &st.CreatedAt, &st.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return st, nil
}

func (r *Repository) GetAllShiftTypes() ([]*domain.ShiftType, error) {
	query := `
		SELECT id, name, start_time, end_time, created_at, version FROM shift_types ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shiftTypes := make([]*domain.ShiftType, 0)
	for rows.Next() {
		st := &domain.ShiftType{}
		dst := []any{&st.ID, &st.Name, &st.StartTime, &st.EndTime, &st.CreatedAt, &st.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		shiftTypes = append(shiftTypes, st)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shiftTypes, nil
}

func (r *Repository) CreateShiftType(st *domain.ShiftType) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO shift_types (name, start_time, end_time)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`

	args := []any{st.Name, st.StartTime, st.EndTime}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&st.ID, &st.CreatedAt, &st.Version); err != nil {
		return err
	}

	return nil
}
