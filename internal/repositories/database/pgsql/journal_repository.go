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
	"github.com/tokotrack/backoffice/internal/utils/accounting"
	"github.com/tokotrack/backoffice/internal/utils/mapping"
)

const journalColumns = `journal_id, invoice, date_issued, debit_account_id, credit_account_id, amount, fee_amount, trx_type, description, warehouse_id, user_id, created_at, created_by, last_updated_at, last_updated_by`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for the journal entry log.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func scanJournalLine(row pgx.Row) (*models.JournalLine, error) {
	var m models.JournalLine
	err := row.Scan(
		&m.JournalID, &m.Invoice, &m.DateIssued, &m.DebitAccountID, &m.CreditAccountID,
		&m.Amount, &m.FeeAmount, &m.TrxType, &m.Description, &m.WarehouseID, &m.UserID,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func collectJournalLines(rows pgx.Rows) ([]domain.JournalLine, error) {
	lines := []domain.JournalLine{}
	for rows.Next() {
		m, err := scanJournalLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal line: %w", err)
		}
		lines = append(lines, mapping.ToDomainJournalLine(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate journal lines: %w", err)
	}
	return lines, nil
}

func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.JournalLine, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE journal_id = $1`
	m, err := scanJournalLine(r.Pool.QueryRow(ctx, query, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: journal %s", apperrors.ErrNotFound, journalID)
		}
		return nil, fmt.Errorf("failed to find journal %s: %w", journalID, err)
	}
	line := mapping.ToDomainJournalLine(*m)
	return &line, nil
}

func (r *PgxJournalRepository) FindJournalsByInvoice(ctx context.Context, invoice string) ([]domain.JournalLine, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE invoice = $1 ORDER BY created_at, journal_id`
	rows, err := r.Pool.Query(ctx, query, invoice)
	if err != nil {
		return nil, fmt.Errorf("failed to find journals for invoice %s: %w", invoice, err)
	}
	defer rows.Close()
	return collectJournalLines(rows)
}

func (r *PgxJournalRepository) ListJournalsByDateRange(ctx context.Context, start, end time.Time, warehouseID *int64) ([]domain.JournalLine, error) {
	query := `SELECT ` + journalColumns + `
		FROM journals
		WHERE date_issued >= $1 AND date_issued <= $2
		  AND ($3::bigint IS NULL OR warehouse_id = $3)
		ORDER BY date_issued DESC, created_at DESC`
	rows, err := r.Pool.Query(ctx, query, domain.DateOnly(start), domain.EndOfDay(end), warehouseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list journals: %w", err)
	}
	defer rows.Close()
	return collectJournalLines(rows)
}

// activityQuery unpivots journal lines into per-account debit/credit totals.
const activityQuery = `
	SELECT account_id, SUM(debit) AS debit, SUM(credit) AS credit
	FROM (
		SELECT debit_account_id AS account_id, amount AS debit, 0::numeric AS credit
		FROM journals WHERE date_issued >= $1 AND date_issued <= $2
		UNION ALL
		SELECT credit_account_id, 0::numeric, amount
		FROM journals WHERE date_issued >= $1 AND date_issued <= $2
	) sides
	GROUP BY account_id`

func (r *PgxJournalRepository) sumActivity(ctx context.Context, start, end time.Time) (map[string]domain.AccountActivity, error) {
	rows, err := r.Pool.Query(ctx, activityQuery, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate journal activity: %w", err)
	}
	defer rows.Close()

	activity := make(map[string]domain.AccountActivity)
	for rows.Next() {
		var act domain.AccountActivity
		if err := rows.Scan(&act.AccountID, &act.Debit, &act.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan activity row: %w", err)
		}
		activity[act.AccountID] = act
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activity rows: %w", err)
	}
	return activity, nil
}

func (r *PgxJournalRepository) SumActivityThrough(ctx context.Context, cutoff time.Time) (map[string]domain.AccountActivity, error) {
	epoch := time.Time{}
	return r.sumActivity(ctx, epoch, cutoff)
}

func (r *PgxJournalRepository) SumActivityOn(ctx context.Context, date time.Time) (map[string]domain.AccountActivity, error) {
	return r.sumActivity(ctx, domain.DateOnly(date), domain.EndOfDay(date))
}

func (r *PgxJournalRepository) SumAccountActivity(ctx context.Context, accountID string, start, end time.Time) (domain.AccountActivity, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN debit_account_id = $1 THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN credit_account_id = $1 THEN amount ELSE 0 END), 0)
		FROM journals
		WHERE (debit_account_id = $1 OR credit_account_id = $1)
		  AND date_issued >= $2 AND date_issued <= $3`
	act := domain.AccountActivity{AccountID: accountID}
	err := r.Pool.QueryRow(ctx, query, accountID, domain.DateOnly(start), domain.EndOfDay(end)).Scan(&act.Debit, &act.Credit)
	if err != nil {
		return act, fmt.Errorf("failed to aggregate activity for %s: %w", accountID, err)
	}
	return act, nil
}

// mintInvoice assigns the next invoice key for the spec inside tx. The
// advisory lock serializes concurrent postings under the same sequence scope
// so sequence numbers never collide.
func mintInvoice(ctx context.Context, tx pgx.Tx, spec domain.InvoiceSpec) (string, error) {
	scope := spec.Scope()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, scope); err != nil {
		return "", fmt.Errorf("failed to lock invoice scope %s: %w", scope, err)
	}

	var maxSeq int
	err := tx.QueryRow(ctx, `
		SELECT COALESCE(MAX(CAST(RIGHT(invoice, 7) AS INTEGER)), 0)
		FROM journals WHERE invoice LIKE $1 || '.%'`, scope).Scan(&maxSeq)
	if err != nil {
		return "", fmt.Errorf("failed to read max invoice sequence for %s: %w", scope, err)
	}
	return spec.Key(maxSeq + 1), nil
}

// PostEvent writes one business event atomically: mint the invoice key,
// insert journal lines, finance records and inventory transactions, then
// recompute the derived product cost and warehouse stock figures, all inside
// a single transaction.
func (r *PgxJournalRepository) PostEvent(ctx context.Context, event domain.PostingEvent) (string, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer r.Rollback(ctx, tx)

	invoice := event.Invoice
	if event.InvoiceSpec != nil {
		invoice, err = mintInvoice(ctx, tx, *event.InvoiceSpec)
		if err != nil {
			return "", err
		}
	}
	if invoice == "" {
		return "", fmt.Errorf("%w: posting event carries neither invoice nor invoice spec", apperrors.ErrValidation)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journals (` + journalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	for _, line := range event.Lines {
		m := mapping.ToModelJournalLine(line)
		m.Invoice = invoice
		batch.Queue(lineQuery,
			m.JournalID, m.Invoice, m.DateIssued, m.DebitAccountID, m.CreditAccountID,
			m.Amount, m.FeeAmount, m.TrxType, m.Description, m.WarehouseID, m.UserID,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
	}

	financeQuery := `
		INSERT INTO finances (finance_id, invoice, journal_id, date_issued, due_date, description, bill_amount, pay_amount, settled, payment_nth, finance_type, contact_id, account_id, user_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	for _, finance := range event.Finances {
		m := mapping.ToModelFinance(finance)
		m.Invoice = invoice
		batch.Queue(financeQuery,
			m.FinanceID, m.Invoice, m.JournalID, m.DateIssued, m.DueDate, m.Description,
			m.BillAmount, m.PayAmount, m.Settled, m.PaymentNth, m.FinanceType,
			m.ContactID, m.AccountID, m.UserID,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
	}

	txnQuery := `
		INSERT INTO inventory_transactions (invoice, date_issued, product_id, quantity, price, cost, trx_type, contact_id, warehouse_id, user_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	for _, txn := range event.InventoryTxns {
		m := mapping.ToModelInventoryTransaction(txn)
		m.Invoice = invoice
		batch.Queue(txnQuery,
			m.Invoice, m.DateIssued, m.ProductID, m.Quantity, m.Price, m.Cost,
			m.TrxType, m.ContactID, m.WarehouseID, m.UserID,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
	}

	for productID, qty := range event.ProductSoldBumps {
		batch.Queue(`UPDATE products SET sold = sold + $2 WHERE product_id = $1`, productID, qty)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return "", fmt.Errorf("failed to post event %s: %w", invoice, err)
	}

	for _, ref := range event.TouchedProducts() {
		if err := refreshProductFigures(ctx, tx, ref); err != nil {
			return "", err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return "", err
	}
	return invoice, nil
}

// refreshProductFigures recomputes the weighted-average cost and stock level
// for one product after its transaction history changed, inside tx.
func refreshProductFigures(ctx context.Context, tx pgx.Tx, ref domain.ProductWarehouseRef) error {
	// Sale rows carry negative quantities at the cost they consumed, so the
	// signed sums yield the weighted average of the stock still on hand.
	var totalQty, totalValue decimal.Decimal
	err := tx.QueryRow(ctx, `
		SELECT COALESCE(SUM(quantity), 0), COALESCE(SUM(quantity * cost), 0)
		FROM inventory_transactions WHERE product_id = $1`, ref.ProductID).Scan(&totalQty, &totalValue)
	if err != nil {
		return fmt.Errorf("failed to aggregate inventory for product %d: %w", ref.ProductID, err)
	}
	cost := accounting.WeightedAverageCost(totalValue, totalQty)

	_, err = tx.Exec(ctx, `UPDATE products SET cost = $2, end_stock = $3 WHERE product_id = $1`, ref.ProductID, cost, totalQty)
	if err != nil {
		return fmt.Errorf("failed to update product %d: %w", ref.ProductID, err)
	}

	var warehouseQty decimal.Decimal
	err = tx.QueryRow(ctx, `
		SELECT COALESCE(SUM(quantity), 0)
		FROM inventory_transactions WHERE product_id = $1 AND warehouse_id = $2`,
		ref.ProductID, ref.WarehouseID).Scan(&warehouseQty)
	if err != nil {
		return fmt.Errorf("failed to aggregate warehouse stock for product %d: %w", ref.ProductID, err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO warehouse_stocks (warehouse_id, product_id, init_stock, current_stock)
		VALUES ($1, $2, 0, (SELECT COALESCE(init_stock, 0) FROM warehouse_stocks WHERE warehouse_id = $1 AND product_id = $2) + $3)
		ON CONFLICT (warehouse_id, product_id)
		DO UPDATE SET current_stock = warehouse_stocks.init_stock + $3`,
		ref.WarehouseID, ref.ProductID, warehouseQty)
	if err != nil {
		return fmt.Errorf("failed to update warehouse stock for product %d: %w", ref.ProductID, err)
	}
	return nil
}

func (r *PgxJournalRepository) UpdateJournalAmounts(ctx context.Context, journalID string, amount, fee decimal.Decimal, description string, userID string, now time.Time) error {
	query := `
		UPDATE journals
		SET amount = $2, fee_amount = $3,
		    description = CASE WHEN $4 <> '' THEN $4 ELSE description END,
		    last_updated_at = $5, last_updated_by = $6
		WHERE journal_id = $1`
	tag, err := r.Pool.Exec(ctx, query, journalID, amount, fee, description, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update journal %s: %w", journalID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: journal %s", apperrors.ErrNotFound, journalID)
	}
	return nil
}

// DeleteJournalsByInvoice removes the invoice's journal lines and inventory
// transactions, then refreshes the derived product figures, atomically.
func (r *PgxJournalRepository) DeleteJournalsByInvoice(ctx context.Context, invoice string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	rows, err := tx.Query(ctx, `
		SELECT DISTINCT product_id, warehouse_id
		FROM inventory_transactions WHERE invoice = $1`, invoice)
	if err != nil {
		return fmt.Errorf("failed to read inventory references for %s: %w", invoice, err)
	}
	refs := []domain.ProductWarehouseRef{}
	for rows.Next() {
		var ref domain.ProductWarehouseRef
		if err := rows.Scan(&ref.ProductID, &ref.WarehouseID); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan inventory reference: %w", err)
		}
		refs = append(refs, ref)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate inventory references: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM inventory_transactions WHERE invoice = $1`, invoice); err != nil {
		return fmt.Errorf("failed to delete inventory transactions for %s: %w", invoice, err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM journals WHERE invoice = $1`, invoice)
	if err != nil {
		return fmt.Errorf("failed to delete journals for %s: %w", invoice, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: invoice %s", apperrors.ErrNotFound, invoice)
	}

	for _, ref := range refs {
		if err := refreshProductFigures(ctx, tx, ref); err != nil {
			return err
		}
	}
	return r.Commit(ctx, tx)
}
