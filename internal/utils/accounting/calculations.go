package accounting

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tokotrack/backoffice/internal/core/domain"
)

// EndingBalance combines a base balance with debit/credit totals according to
// the account's normal side. This one formula backs both the full
// recomputation and the same-day delta path, so the two can never disagree.
//
// Debit-normal:  base + debit - credit
// Credit-normal: base + credit - debit
func EndingBalance(base, debit, credit decimal.Decimal, side domain.NormalSide) (decimal.Decimal, error) {
	switch side {
	case domain.DebitNormal:
		return base.Add(debit).Sub(credit), nil
	case domain.CreditNormal:
		return base.Add(credit).Sub(debit), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown normal balance side %q", side)
	}
}

// LineDelta returns the signed effect of one journal line on one account.
// A line debits one account and credits another; an account appearing on its
// non-normal side moves negatively.
func LineDelta(line domain.JournalLine, accountID string, side domain.NormalSide) decimal.Decimal {
	delta := decimal.Zero
	if line.DebitAccountID == accountID {
		if side == domain.DebitNormal {
			delta = delta.Add(line.Amount)
		} else {
			delta = delta.Sub(line.Amount)
		}
	}
	if line.CreditAccountID == accountID {
		if side == domain.CreditNormal {
			delta = delta.Add(line.Amount)
		} else {
			delta = delta.Sub(line.Amount)
		}
	}
	return delta
}

// ValidateLineAmounts rejects negative amounts before any write begins.
func ValidateLineAmounts(lines []domain.JournalLine) error {
	for _, line := range lines {
		if line.Amount.IsNegative() {
			return fmt.Errorf("journal line amount must not be negative, got %s", line.Amount.String())
		}
	}
	return nil
}

// WeightedAverageCost computes totalValue / totalQuantity across inventory
// transactions. Returns zero when no quantity is held.
func WeightedAverageCost(totalValue, totalQuantity decimal.Decimal) decimal.Decimal {
	if totalQuantity.IsZero() {
		return decimal.Zero
	}
	return totalValue.DivRound(totalQuantity, 4)
}
