package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tokotrack/backoffice/internal/apperrors"
	"github.com/tokotrack/backoffice/internal/core/domain"
	portsrepo "github.com/tokotrack/backoffice/internal/core/ports/repositories"
	"github.com/tokotrack/backoffice/internal/models"
	"github.com/tokotrack/backoffice/internal/utils/mapping"
)

const accountColumns = `account_id, code, name, category_id, starting_balance, warehouse_id, is_locked, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for chart-of-account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (*models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID, &m.Code, &m.Name, &m.CategoryID, &m.StartingBalance,
		&m.WarehouseID, &m.IsLocked,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	account := mapping.ToDomainAccount(*m)
	return &account, nil
}

func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1)`
	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to find accounts: %w", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts[m.AccountID] = mapping.ToDomainAccount(*m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}
	return accounts, nil
}

func (r *PgxAccountRepository) FindAccountByName(ctx context.Context, name string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE name = $1`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account named %q", apperrors.ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to find account %q: %w", name, err)
	}
	account := mapping.ToDomainAccount(*m)
	return &account, nil
}

func (r *PgxAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY code`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()
	return collectAccounts(rows)
}

func (r *PgxAccountRepository) ListAccountsByKinds(ctx context.Context, kinds ...domain.CategoryKind) ([]domain.Account, error) {
	kindStrings := make([]string, len(kinds))
	for i, k := range kinds {
		kindStrings[i] = string(k)
	}
	query := `
		SELECT a.account_id, a.code, a.name, a.category_id, a.starting_balance, a.warehouse_id, a.is_locked,
		       a.created_at, a.created_by, a.last_updated_at, a.last_updated_by
		FROM accounts a
		JOIN account_categories c ON c.category_id = a.category_id
		WHERE c.kind = ANY($1)
		ORDER BY a.code`
	rows, err := r.Pool.Query(ctx, query, kindStrings)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts by kind: %w", err)
	}
	defer rows.Close()
	return collectAccounts(rows)
}

func collectAccounts(rows pgx.Rows) ([]domain.Account, error) {
	accounts := []domain.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}
	return accounts, nil
}

func (r *PgxAccountRepository) HasJournalReferences(ctx context.Context, accountID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM journals WHERE debit_account_id = $1 OR credit_account_id = $1)`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, accountID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check journal references for %s: %w", accountID, err)
	}
	return exists, nil
}

// SaveAccount persists a new account, minting its code inside the insert's
// transaction. Holding the advisory lock across both steps means concurrent
// creations within a category never share a code.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) (string, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer r.Rollback(ctx, tx)

	code, err := mintAccountCode(ctx, tx, account.CategoryID)
	if err != nil {
		return "", err
	}

	m := mapping.ToModelAccount(account)
	m.Code = code
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = tx.Exec(ctx, query,
		m.AccountID, m.Code, m.Name, m.CategoryID, m.StartingBalance,
		m.WarehouseID, m.IsLocked,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return "", fmt.Errorf("%w: account %s", apperrors.ErrDuplicate, m.AccountID)
		}
		return "", fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return "", err
	}
	return code, nil
}

// mintAccountCode assigns the next sequential code inside the category's
// numbering block, inside tx.
func mintAccountCode(ctx context.Context, tx pgx.Tx, categoryID int) (string, error) {
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext('account_code'), $1)`, categoryID); err != nil {
		return "", fmt.Errorf("failed to lock category %d: %w", categoryID, err)
	}

	var codePrefix int
	err := tx.QueryRow(ctx, `SELECT code_prefix FROM account_categories WHERE category_id = $1`, categoryID).Scan(&codePrefix)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("%w: category %d", apperrors.ErrNotFound, categoryID)
		}
		return "", fmt.Errorf("failed to read category %d: %w", categoryID, err)
	}

	var maxSeq int
	err = tx.QueryRow(ctx, `
		SELECT COALESCE(MAX(CAST(RIGHT(code, 3) AS INTEGER)), 0)
		FROM accounts WHERE category_id = $1`, categoryID).Scan(&maxSeq)
	if err != nil {
		return "", fmt.Errorf("failed to read max code for category %d: %w", categoryID, err)
	}
	return fmt.Sprintf("%d-%03d", codePrefix, maxSeq+1), nil
}

func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts
		SET name = $2, starting_balance = $3, last_updated_at = $4, last_updated_by = $5
		WHERE account_id = $1`
	tag, err := r.Pool.Exec(ctx, query, m.AccountID, m.Name, m.StartingBalance, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: account name %q", apperrors.ErrDuplicate, m.Name)
		}
		return fmt.Errorf("failed to update account %s: %w", m.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, m.AccountID)
	}
	return nil
}

func (r *PgxAccountRepository) UpdateStartingBalance(ctx context.Context, accountID string, balance decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET starting_balance = $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1`
	tag, err := r.Pool.Exec(ctx, query, accountID, balance, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update starting balance for %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return nil
}

func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM accounts WHERE account_id = $1`, accountID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // Foreign key violation
			return fmt.Errorf("%w: account %s", apperrors.ErrInUse, accountID)
		}
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return nil
}

func (r *PgxAccountRepository) FindCategoryByID(ctx context.Context, categoryID int) (*domain.AccountCategory, error) {
	query := `SELECT category_id, name, normal_side, kind, code_prefix FROM account_categories WHERE category_id = $1`
	var m models.AccountCategory
	err := r.Pool.QueryRow(ctx, query, categoryID).Scan(&m.CategoryID, &m.Name, &m.NormalSide, &m.Kind, &m.CodePrefix)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: category %d", apperrors.ErrNotFound, categoryID)
		}
		return nil, fmt.Errorf("failed to find category %d: %w", categoryID, err)
	}
	category := mapping.ToDomainCategory(m)
	return &category, nil
}

func (r *PgxAccountRepository) ListCategories(ctx context.Context) ([]domain.AccountCategory, error) {
	query := `SELECT category_id, name, normal_side, kind, code_prefix FROM account_categories ORDER BY category_id`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.AccountCategory{}
	for rows.Next() {
		var m models.AccountCategory
		if err := rows.Scan(&m.CategoryID, &m.Name, &m.NormalSide, &m.Kind, &m.CodePrefix); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, mapping.ToDomainCategory(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}
	return categories, nil
}
