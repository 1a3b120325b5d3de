package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tokotrack/backoffice/internal/apperrors"
	"github.com/tokotrack/backoffice/internal/core/domain"
	portsrepo "github.com/tokotrack/backoffice/internal/core/ports/repositories"
	"github.com/tokotrack/backoffice/internal/models"
	"github.com/tokotrack/backoffice/internal/utils/mapping"
)

const financeColumns = `finance_id, invoice, journal_id, date_issued, due_date, description, bill_amount, pay_amount, settled, payment_nth, finance_type, contact_id, account_id, user_id, created_at, created_by, last_updated_at, last_updated_by`

type PgxFinanceRepository struct {
	BaseRepository
}

// newPgxFinanceRepository creates a new repository for AP/AR records.
func newPgxFinanceRepository(pool *pgxpool.Pool) portsrepo.FinanceRepositoryFacade {
	return &PgxFinanceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FinanceRepositoryFacade = (*PgxFinanceRepository)(nil)

func scanFinance(row pgx.Row) (*models.Finance, error) {
	var m models.Finance
	err := row.Scan(
		&m.FinanceID, &m.Invoice, &m.JournalID, &m.DateIssued, &m.DueDate, &m.Description,
		&m.BillAmount, &m.PayAmount, &m.Settled, &m.PaymentNth, &m.FinanceType,
		&m.ContactID, &m.AccountID, &m.UserID,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func collectFinances(rows pgx.Rows) ([]domain.Finance, error) {
	records := []domain.Finance{}
	for rows.Next() {
		m, err := scanFinance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan finance record: %w", err)
		}
		records = append(records, mapping.ToDomainFinance(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate finance records: %w", err)
	}
	return records, nil
}

func (r *PgxFinanceRepository) FindFinanceByID(ctx context.Context, financeID string) (*domain.Finance, error) {
	query := `SELECT ` + financeColumns + ` FROM finances WHERE finance_id = $1`
	m, err := scanFinance(r.Pool.QueryRow(ctx, query, financeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: finance record %s", apperrors.ErrNotFound, financeID)
		}
		return nil, fmt.Errorf("failed to find finance record %s: %w", financeID, err)
	}
	finance := mapping.ToDomainFinance(*m)
	return &finance, nil
}

func (r *PgxFinanceRepository) FindFinancesByInvoice(ctx context.Context, invoice string) ([]domain.Finance, error) {
	query := `SELECT ` + financeColumns + ` FROM finances WHERE invoice = $1 ORDER BY payment_nth`
	rows, err := r.Pool.Query(ctx, query, invoice)
	if err != nil {
		return nil, fmt.Errorf("failed to find finance records for %s: %w", invoice, err)
	}
	defer rows.Close()
	return collectFinances(rows)
}

func (r *PgxFinanceRepository) ListFinancesByType(ctx context.Context, financeType domain.FinanceType, contactID *int64) ([]domain.Finance, error) {
	query := `
		SELECT ` + financeColumns + `
		FROM finances
		WHERE finance_type = $1 AND ($2::bigint IS NULL OR contact_id = $2)
		ORDER BY date_issued DESC, payment_nth`
	rows, err := r.Pool.Query(ctx, query, string(financeType), contactID)
	if err != nil {
		return nil, fmt.Errorf("failed to list finance records: %w", err)
	}
	defer rows.Close()
	return collectFinances(rows)
}

func (r *PgxFinanceRepository) SummarizeByContact(ctx context.Context, financeType domain.FinanceType) ([]portsrepo.FinanceSummary, error) {
	query := `
		SELECT contact_id, COALESCE(SUM(bill_amount), 0), COALESCE(SUM(pay_amount), 0)
		FROM finances
		WHERE finance_type = $1
		GROUP BY contact_id
		ORDER BY contact_id`
	rows, err := r.Pool.Query(ctx, query, string(financeType))
	if err != nil {
		return nil, fmt.Errorf("failed to summarize finance records: %w", err)
	}
	defer rows.Close()

	summaries := []portsrepo.FinanceSummary{}
	for rows.Next() {
		s := portsrepo.FinanceSummary{FinanceType: financeType}
		if err := rows.Scan(&s.ContactID, &s.Billed, &s.Paid); err != nil {
			return nil, fmt.Errorf("failed to scan finance summary: %w", err)
		}
		s.Outstanding = s.Billed.Sub(s.Paid)
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate finance summaries: %w", err)
	}
	return summaries, nil
}

func (r *PgxFinanceRepository) HasInventoryTransactions(ctx context.Context, invoice string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM inventory_transactions WHERE invoice = $1)`, invoice).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check inventory references for %s: %w", invoice, err)
	}
	return exists, nil
}

// DeleteFinanceWithJournals removes one finance record and the journal lines
// posted with it in a single transaction. The bill row (ordinal zero) takes
// every journal line under the invoice with it; a payment row only takes the
// one line stamped with its journal id.
func (r *PgxFinanceRepository) DeleteFinanceWithJournals(ctx context.Context, finance domain.Finance) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	tag, err := tx.Exec(ctx, `DELETE FROM finances WHERE finance_id = $1`, finance.FinanceID)
	if err != nil {
		return fmt.Errorf("failed to delete finance record %s: %w", finance.FinanceID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: finance record %s", apperrors.ErrNotFound, finance.FinanceID)
	}

	if finance.PaymentNth == 0 {
		_, err = tx.Exec(ctx, `DELETE FROM journals WHERE invoice = $1`, finance.Invoice)
	} else {
		_, err = tx.Exec(ctx, `DELETE FROM journals WHERE journal_id = $1`, finance.JournalID)
	}
	if err != nil {
		return fmt.Errorf("failed to delete journals for %s: %w", finance.Invoice, err)
	}

	return r.Commit(ctx, tx)
}
