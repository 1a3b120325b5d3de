package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tokotrack/backoffice/internal/core/domain"
)

func TestOutstanding(t *testing.T) {
	tests := []struct {
		name    string
		records []domain.Finance
		want    decimal.Decimal
	}{
		{
			name:    "no records",
			records: nil,
			want:    decimal.Zero,
		},
		{
			name: "unpaid bill",
			records: []domain.Finance{
				{BillAmount: decimal.NewFromInt(100), PayAmount: decimal.Zero},
			},
			want: decimal.NewFromInt(100),
		},
		{
			name: "bill with partial payments",
			records: []domain.Finance{
				{BillAmount: decimal.NewFromInt(100), PayAmount: decimal.Zero, PaymentNth: 0},
				{BillAmount: decimal.Zero, PayAmount: decimal.NewFromInt(60), PaymentNth: 1},
				{BillAmount: decimal.Zero, PayAmount: decimal.NewFromInt(15), PaymentNth: 2},
			},
			want: decimal.NewFromInt(25),
		},
		{
			name: "fully settled invoice",
			records: []domain.Finance{
				{BillAmount: decimal.NewFromInt(100), PayAmount: decimal.Zero, PaymentNth: 0},
				{BillAmount: decimal.Zero, PayAmount: decimal.NewFromInt(100), PaymentNth: 1, Settled: true},
			},
			want: decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.Outstanding(tt.records)
			assert.True(t, got.Equal(tt.want), "want %s, got %s", tt.want, got)
		})
	}
}

func TestInvoiceSpec_Scope(t *testing.T) {
	day := time.Date(2024, 1, 6, 15, 30, 0, 0, time.UTC)
	contact := int64(7)

	t.Run("prefix, day and user", func(t *testing.T) {
		spec := domain.InvoiceSpec{Prefix: domain.InvoicePrefixJournal, UserID: "user-1", Date: day}
		assert.Equal(t, "JR.BK.06012024.user-1", spec.Scope())
	})

	t.Run("contact slots in after the prefix", func(t *testing.T) {
		spec := domain.InvoiceSpec{Prefix: domain.InvoicePrefixPayable, UserID: "user-1", Date: day, ContactID: &contact}
		assert.Equal(t, "PY.BK.7.06012024.user-1", spec.Scope())
	})

	t.Run("date normalizes to the UTC calendar day", func(t *testing.T) {
		jakarta := time.FixedZone("WIB", 7*3600)
		local := time.Date(2024, 1, 7, 5, 0, 0, 0, jakarta) // 22:00 UTC on the 6th
		spec := domain.InvoiceSpec{Prefix: domain.InvoicePrefixSales, UserID: "user-1", Date: local}
		assert.Equal(t, "SO.BK.06012024.user-1", spec.Scope())
	})

	t.Run("distinct users, days and contacts never share a scope", func(t *testing.T) {
		base := domain.InvoiceSpec{Prefix: domain.InvoicePrefixPayable, UserID: "user-1", Date: day, ContactID: &contact}

		otherUser := base
		otherUser.UserID = "user-2"
		assert.NotEqual(t, base.Scope(), otherUser.Scope())

		otherDay := base
		otherDay.Date = day.AddDate(0, 0, 1)
		assert.NotEqual(t, base.Scope(), otherDay.Scope())

		otherContact := int64(8)
		other := base
		other.ContactID = &otherContact
		assert.NotEqual(t, base.Scope(), other.Scope())
	})
}

func TestInvoiceSpec_Key(t *testing.T) {
	spec := domain.InvoiceSpec{
		Prefix: domain.InvoicePrefixSales,
		UserID: "user-1",
		Date:   time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC),
	}

	t.Run("sequence is zero-padded to seven digits", func(t *testing.T) {
		assert.Equal(t, "SO.BK.06012024.user-1.0000001", spec.Key(1))
		assert.Equal(t, "SO.BK.06012024.user-1.0000042", spec.Key(42))
	})

	t.Run("the last seven characters always read back as the sequence", func(t *testing.T) {
		for _, seq := range []int{1, 999, 1234567} {
			key := spec.Key(seq)
			assert.Equal(t, spec.Scope()+".", key[:len(key)-7])
			assert.Len(t, key[len(key)-7:], 7)
		}
	})
}

func TestPostingEvent_EarliestIssueDate(t *testing.T) {
	day1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	day3 := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)

	t.Run("no lines", func(t *testing.T) {
		_, ok := domain.PostingEvent{}.EarliestIssueDate()
		assert.False(t, ok)
	})

	t.Run("picks the earliest of several lines", func(t *testing.T) {
		event := domain.PostingEvent{Lines: []domain.JournalLine{
			{DateIssued: day3},
			{DateIssued: day1},
		}}
		earliest, ok := event.EarliestIssueDate()
		assert.True(t, ok)
		assert.Equal(t, day1, earliest)
	})
}

func TestPostingEvent_TouchedProducts(t *testing.T) {
	event := domain.PostingEvent{InventoryTxns: []domain.InventoryTransaction{
		{ProductID: 1, WarehouseID: 1, Quantity: decimal.NewFromInt(5)},
		{ProductID: 1, WarehouseID: 1, Quantity: decimal.NewFromInt(-2)},
		{ProductID: 2, WarehouseID: 1, Quantity: decimal.NewFromInt(3)},
		{ProductID: 1, WarehouseID: 2, Quantity: decimal.NewFromInt(1)},
	}}

	refs := event.TouchedProducts()

	assert.Len(t, refs, 3)
	assert.Contains(t, refs, domain.ProductWarehouseRef{ProductID: 1, WarehouseID: 1})
	assert.Contains(t, refs, domain.ProductWarehouseRef{ProductID: 2, WarehouseID: 1})
	assert.Contains(t, refs, domain.ProductWarehouseRef{ProductID: 1, WarehouseID: 2})
}
