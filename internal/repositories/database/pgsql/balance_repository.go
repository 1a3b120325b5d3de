package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tokotrack/backoffice/internal/apperrors"
	"github.com/tokotrack/backoffice/internal/core/domain"
	portsrepo "github.com/tokotrack/backoffice/internal/core/ports/repositories"
	"github.com/tokotrack/backoffice/internal/models"
	"github.com/tokotrack/backoffice/internal/utils/mapping"
)

type PgxBalanceRepository struct {
	BaseRepository
}

// newPgxBalanceRepository creates the snapshot cache repository.
func newPgxBalanceRepository(pool *pgxpool.Pool) portsrepo.BalanceSnapshotRepository {
	return &PgxBalanceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BalanceSnapshotRepository = (*PgxBalanceRepository)(nil)

func (r *PgxBalanceRepository) GetSnapshot(ctx context.Context, accountID string, date time.Time) (*domain.BalanceSnapshot, error) {
	query := `
		SELECT account_id, balance_date, ending_balance, computed_at
		FROM account_balances
		WHERE account_id = $1 AND balance_date = $2`
	var m models.BalanceSnapshot
	err := r.Pool.QueryRow(ctx, query, accountID, domain.DateOnly(date)).
		Scan(&m.AccountID, &m.BalanceDate, &m.EndingBalance, &m.ComputedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: snapshot for %s on %s", apperrors.ErrNotFound, accountID, domain.DateOnly(date).Format(time.DateOnly))
		}
		return nil, fmt.Errorf("failed to read snapshot for %s: %w", accountID, err)
	}
	snapshot := mapping.ToDomainBalanceSnapshot(m)
	return &snapshot, nil
}

func (r *PgxBalanceRepository) GetSnapshotsForDate(ctx context.Context, date time.Time) (map[string]decimal.Decimal, error) {
	query := `SELECT account_id, ending_balance FROM account_balances WHERE balance_date = $1`
	rows, err := r.Pool.Query(ctx, query, domain.DateOnly(date))
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshots: %w", err)
	}
	defer rows.Close()

	balances := make(map[string]decimal.Decimal)
	for rows.Next() {
		var accountID string
		var balance decimal.Decimal
		if err := rows.Scan(&accountID, &balance); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		balances[accountID] = balance
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshots: %w", err)
	}
	return balances, nil
}

func (r *PgxBalanceRepository) UpsertSnapshots(ctx context.Context, snapshots []domain.BalanceSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	query := `
		INSERT INTO account_balances (account_id, balance_date, ending_balance, computed_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (account_id, balance_date)
		DO UPDATE SET ending_balance = EXCLUDED.ending_balance, computed_at = EXCLUDED.computed_at`
	for _, snapshot := range snapshots {
		m := mapping.ToModelBalanceSnapshot(snapshot)
		batch.Queue(query, m.AccountID, domain.DateOnly(m.BalanceDate), m.EndingBalance, m.ComputedAt)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to upsert snapshots: %w", err)
	}
	return r.Commit(ctx, tx)
}

func (r *PgxBalanceRepository) DeleteAfter(ctx context.Context, date time.Time) error {
	_, err := r.Pool.Exec(ctx, `DELETE FROM account_balances WHERE balance_date > $1`, domain.DateOnly(date))
	if err != nil {
		return fmt.Errorf("failed to delete snapshots after %s: %w", domain.DateOnly(date).Format(time.DateOnly), err)
	}
	return nil
}
