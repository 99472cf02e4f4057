package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/blueline-dev/patrol-roster/backend/internal/domain"
)

func (r *Repository) GetLeaveBalances(officerID int64) ([]*domain.LeaveBalance, error) {
	query := `
		SELECT officer_id, pto_type, balance_hours, updated_at
		FROM leave_balances WHERE officer_id = $1
		ORDER BY pto_type
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, officerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	balances := make([]*domain.LeaveBalance, 0)
	for rows.Next() {
		lb := &domain.LeaveBalance{}
		dst := []any{&lb.OfficerID, &lb.PTOType, &lb.Hours, &lb.UpdatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		balances = append(balances, lb)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return balances, nil
}

// 余额只允许带符号的增量修改，绝对覆盖会和系统其它地方的并发调整互相踩踏
const adjustBalanceQuery = `
	INSERT INTO leave_balances (officer_id, pto_type, balance_hours, updated_at)
	VALUES ($1, $2, $3, NOW())
	ON CONFLICT (officer_id, pto_type)
	DO UPDATE SET
		balance_hours = leave_balances.balance_hours + EXCLUDED.balance_hours,
		updated_at = NOW()
`

func (r *Repository) AdjustLeaveBalance(officerID int64, ptoType string, deltaHours float64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, adjustBalanceQuery, officerID, ptoType, deltaHours)
	return err
}

// RestoreLeave 在同一个事务中把小时数加回余额并删除例外记录，
// 避免出现"假还了但日历上还显示休假"的半完成状态
func (r *Repository) RestoreLeave(exceptionID int64, officerID int64, ptoType string, hours float64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, adjustBalanceQuery, officerID, ptoType, hours); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM schedule_exceptions WHERE id = $1`, exceptionID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// 例外记录已经被别人删掉，回滚加回的余额
		return sql.ErrNoRows
	}

	return tx.Commit()
}

// DeductLeave 在同一个事务中插入休假例外并从余额中扣减小时数
func (r *Repository) DeductLeave(exc *domain.ScheduleException, hours float64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

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
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&exc.ID, &exc.CreatedAt, &exc.Version); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, adjustBalanceQuery, exc.OfficerID, exc.PTOType, -hours); err != nil {
		return err
	}

	return tx.Commit()
}
