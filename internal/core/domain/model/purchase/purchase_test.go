package purchase_test

import (
	"testing"

	"purchases/internal/core/domain/model/kernel"
	"purchases/internal/core/domain/model/purchase"
	"purchases/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustZip(t *testing.T, s string) kernel.ZipCode {
	t.Helper()
	zip, err := kernel.NewZipCode(s)
	require.NoError(t, err)
	return zip
}

func mustTaxID(t *testing.T) kernel.TaxID {
	t.Helper()
	taxID, err := kernel.NewTaxID("529.982.247-25")
	require.NoError(t, err)
	return taxID
}

func mustItem(t *testing.T, quantity int, price string) purchase.Item {
	t.Helper()
	item, err := purchase.NewItem(kernel.NewUUID(), quantity, decimal.RequireFromString(price))
	require.NoError(t, err)
	return item
}

func newTestPurchase(t *testing.T, items ...purchase.Item) *purchase.Purchase {
	t.Helper()
	if len(items) == 0 {
		items = []purchase.Item{mustItem(t, 2, "10.50")}
	}
	p, err := purchase.NewPurchase(
		kernel.NewUUID(),
		mustTaxID(t),
		"Maria Silva",
		mustZip(t, "12380-000"),
		"Rua das Flores 100, Pindamonhangaba - SP, Brasil",
		items,
	)
	require.NoError(t, err)
	return p
}

func TestNewItem(t *testing.T) {
	t.Run("valid_item", func(t *testing.T) {
		item, err := purchase.NewItem(kernel.NewUUID(), 3, decimal.RequireFromString("9.99"))

		require.NoError(t, err)
		assert.Equal(t, 3, item.Quantity())
		assert.True(t, item.Subtotal().Equal(decimal.RequireFromString("29.97")))
	})

	t.Run("zero_quantity_is_rejected", func(t *testing.T) {
		_, err := purchase.NewItem(kernel.NewUUID(), 0, decimal.NewFromInt(1))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("negative_quantity_is_rejected", func(t *testing.T) {
		_, err := purchase.NewItem(kernel.NewUUID(), -2, decimal.NewFromInt(1))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("negative_price_is_rejected", func(t *testing.T) {
		_, err := purchase.NewItem(kernel.NewUUID(), 1, decimal.NewFromInt(-1))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero_value_item_fails_validation", func(t *testing.T) {
		var item purchase.Item
		require.Error(t, item.Validate())
	})
}

func TestNewPurchase(t *testing.T) {
	t.Run("starts_waiting_payment_with_summed_total", func(t *testing.T) {
		p := newTestPurchase(t,
			mustItem(t, 2, "10.50"), // 21.00
			mustItem(t, 1, "5.25"),  // 5.25
		)

		assert.Equal(t, purchase.WaitingPayment, p.Status())
		assert.True(t, p.TotalAmount().Equal(decimal.RequireFromString("26.25")),
			"got total %s", p.TotalAmount())
		assert.Nil(t, p.DeliveryGroup())
		assert.EqualValues(t, 0, p.Version())
	})

	t.Run("total_is_a_snapshot_of_item_prices", func(t *testing.T) {
		// The total comes from the item price snapshots; re-reading it never
		// consults the catalog again.
		p := newTestPurchase(t, mustItem(t, 4, "2.50"))

		assert.True(t, p.TotalAmount().Equal(decimal.NewFromInt(10)))
		for range 3 {
			assert.True(t, p.TotalAmount().Equal(decimal.NewFromInt(10)))
		}
	})

	t.Run("requires_items", func(t *testing.T) {
		_, err := purchase.NewPurchase(
			kernel.NewUUID(), mustTaxID(t), "Maria Silva",
			mustZip(t, "12380-000"), "Rua A, Cidade - UF, Brasil",
			nil,
		)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("requires_customer_name_and_address", func(t *testing.T) {
		_, err := purchase.NewPurchase(
			kernel.NewUUID(), mustTaxID(t), "",
			mustZip(t, "12380-000"), "Rua A",
			[]purchase.Item{mustItem(t, 1, "1.00")},
		)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = purchase.NewPurchase(
			kernel.NewUUID(), mustTaxID(t), "Maria Silva",
			mustZip(t, "12380-000"), "",
			[]purchase.Item{mustItem(t, 1, "1.00")},
		)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero_value_purchase_fails_validation", func(t *testing.T) {
		var p purchase.Purchase
		require.ErrorIs(t, p.Validate(), purchase.ErrPurchaseIsNotConstructed)
	})
}

func TestPurchase_Pay(t *testing.T) {
	t.Run("from_waiting_payment", func(t *testing.T) {
		p := newTestPurchase(t)

		require.NoError(t, p.Pay())
		assert.Equal(t, purchase.Paid, p.Status())
	})

	t.Run("leaves_status_unchanged_on_rejection", func(t *testing.T) {
		p := newTestPurchase(t)
		require.NoError(t, p.Cancel())

		err := p.Pay()

		require.ErrorIs(t, err, errs.ErrDataIntegrityViolation)
		assert.Equal(t, purchase.Canceled, p.Status())
	})
}

func TestPurchase_Cancel(t *testing.T) {
	t.Run("from_waiting_payment", func(t *testing.T) {
		p := newTestPurchase(t)

		require.NoError(t, p.Cancel())
		assert.Equal(t, purchase.Canceled, p.Status())
	})

	t.Run("second_cancel_is_rejected_with_status_unchanged", func(t *testing.T) {
		p := newTestPurchase(t)
		require.NoError(t, p.Cancel())

		err := p.Cancel()

		require.ErrorIs(t, err, errs.ErrDataIntegrityViolation)
		assert.Equal(t, purchase.Canceled, p.Status())
	})
}

func TestPurchase_Dispatch(t *testing.T) {
	t.Run("assigns_group_and_moves_to_waiting_delivery", func(t *testing.T) {
		p := newTestPurchase(t)
		require.NoError(t, p.Pay())

		require.NoError(t, p.Dispatch("20240115103045123"))

		assert.Equal(t, purchase.WaitingDelivery, p.Status())
		require.NotNil(t, p.DeliveryGroup())
		assert.Equal(t, "20240115103045123", *p.DeliveryGroup())
	})

	t.Run("rejected_before_payment", func(t *testing.T) {
		p := newTestPurchase(t)

		err := p.Dispatch("20240115103045123")

		require.ErrorIs(t, err, errs.ErrDataIntegrityViolation)
		assert.Nil(t, p.DeliveryGroup())
	})

	t.Run("group_is_set_exactly_once", func(t *testing.T) {
		p := newTestPurchase(t)
		require.NoError(t, p.Pay())
		require.NoError(t, p.Dispatch("20240115103045123"))

		err := p.Dispatch("20240115103045999")

		require.ErrorIs(t, err, errs.ErrDataIntegrityViolation)
		assert.Equal(t, "20240115103045123", *p.DeliveryGroup())
	})

	t.Run("empty_group_id_is_rejected", func(t *testing.T) {
		p := newTestPurchase(t)
		require.NoError(t, p.Pay())

		require.ErrorIs(t, p.Dispatch(""), errs.ErrValueIsRequired)
	})
}

func TestPurchase_Deliver(t *testing.T) {
	t.Run("from_waiting_delivery", func(t *testing.T) {
		p := newTestPurchase(t)
		require.NoError(t, p.Pay())
		require.NoError(t, p.Dispatch("20240115103045123"))

		require.NoError(t, p.Deliver())
		assert.Equal(t, purchase.Delivered, p.Status())
	})

	t.Run("from_paid_is_rejected_naming_the_status", func(t *testing.T) {
		p := newTestPurchase(t)
		require.NoError(t, p.Pay())

		err := p.Deliver()

		require.ErrorIs(t, err, errs.ErrDataIntegrityViolation)
		assert.Contains(t, err.Error(), "PAGO")
		assert.Equal(t, purchase.Paid, p.Status())
	})
}

func TestRestorePurchase(t *testing.T) {
	t.Run("restores_stored_state_without_recomputing_total", func(t *testing.T) {
		group := "20240115103045123"
		// Stored total deliberately differs from the item subtotal to prove
		// restoration never recomputes it.
		p, err := purchase.RestorePurchase(
			kernel.NewUUID(), mustTaxID(t), "Maria Silva",
			mustZip(t, "12380-000"), "Rua A, Cidade - UF, Brasil",
			&group,
			decimal.RequireFromString("99.90"),
			purchase.WaitingDelivery,
			[]purchase.Item{mustItem(t, 1, "1.00")},
			7,
		)

		require.NoError(t, err)
		assert.True(t, p.TotalAmount().Equal(decimal.RequireFromString("99.90")))
		assert.Equal(t, purchase.WaitingDelivery, p.Status())
		assert.Equal(t, group, *p.DeliveryGroup())
		assert.EqualValues(t, 7, p.Version())
	})

	t.Run("rejects_invalid_status", func(t *testing.T) {
		_, err := purchase.RestorePurchase(
			kernel.NewUUID(), mustTaxID(t), "Maria Silva",
			mustZip(t, "12380-000"), "Rua A, Cidade - UF, Brasil",
			nil, decimal.Zero, purchase.Unknown,
			[]purchase.Item{mustItem(t, 1, "1.00")},
			0,
		)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestPurchase_ItemsReturnsCopy(t *testing.T) {
	p := newTestPurchase(t, mustItem(t, 2, "10.00"), mustItem(t, 1, "3.00"))

	items := p.Items()
	require.Len(t, items, 2)
	items[0] = purchase.Item{}

	assert.Equal(t, 2, p.Items()[0].Quantity())
}
