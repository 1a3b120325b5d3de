package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tokotrack/backoffice/internal/core/domain"
)

// BalanceSnapshotRepository is the per-account, per-date ending-balance cache.
// Pure key-value semantics; all business logic lives in the ledger service.
type BalanceSnapshotRepository interface {
	// GetSnapshot retrieves one snapshot, or apperrors.ErrNotFound.
	GetSnapshot(ctx context.Context, accountID string, date time.Time) (*domain.BalanceSnapshot, error)

	// GetSnapshotsForDate retrieves every account's ending balance for one
	// date, keyed by account ID.
	GetSnapshotsForDate(ctx context.Context, date time.Time) (map[string]decimal.Decimal, error)

	// UpsertSnapshots creates or overwrites snapshots in bulk.
	UpsertSnapshots(ctx context.Context, snapshots []domain.BalanceSnapshot) error

	// DeleteAfter invalidates all snapshots dated strictly after the given
	// date, for all accounts.
	DeleteAfter(ctx context.Context, date time.Time) error
}
