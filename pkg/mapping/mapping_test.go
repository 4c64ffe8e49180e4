package mapping

import (
	"testing"
	"time"

	"github.com/dlaird/pocketbank/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCents(t *testing.T) {
	t.Run("Whole Units", func(t *testing.T) {
		cents, err := ToCents(decimal.NewFromInt(50))
		require.NoError(t, err)
		assert.Equal(t, int64(5000), cents)
	})

	t.Run("Two Decimal Places", func(t *testing.T) {
		cents, err := ToCents(decimal.RequireFromString("19.99"))
		require.NoError(t, err)
		assert.Equal(t, int64(1999), cents)
	})

	t.Run("Too Precise", func(t *testing.T) {
		_, err := ToCents(decimal.RequireFromString("0.001"))
		assert.ErrorIs(t, err, ErrTooPrecise)
	})

	t.Run("Negative", func(t *testing.T) {
		cents, err := ToCents(decimal.RequireFromString("-2.50"))
		require.NoError(t, err)
		assert.Equal(t, int64(-250), cents)
	})

	t.Run("Out Of Range", func(t *testing.T) {
		// Larger than the int64 cents range; must be rejected rather than
		// truncated to an arbitrary value.
		_, err := ToCents(decimal.RequireFromString("99999999999999999999.00"))
		assert.ErrorIs(t, err, ErrAmountOutOfRange)

		_, err = ToCents(decimal.RequireFromString("-99999999999999999999.00"))
		assert.ErrorIs(t, err, ErrAmountOutOfRange)
	})
}

func TestFromCents(t *testing.T) {
	assert.True(t, decimal.RequireFromString("150.00").Equal(FromCents(15000)))
	assert.True(t, decimal.RequireFromString("0.01").Equal(FromCents(1)))
	assert.True(t, decimal.Zero.Equal(FromCents(0)))
}

func TestRoundTrip(t *testing.T) {
	for _, raw := range []string{"0.01", "1.00", "19.99", "12345.67"} {
		amount := decimal.RequireFromString(raw)
		cents, err := ToCents(amount)
		require.NoError(t, err)
		assert.True(t, amount.Equal(FromCents(cents)), "round trip of %s", raw)
	}
}

func TestToApiTransactions(t *testing.T) {
	now := time.Now()
	transactions := []models.Transaction{
		{Id: "tx-1", Type: models.DEPOSIT, Amount: 1000, Timestamp: now.Add(-time.Hour)},
		{Id: "tx-2", Type: models.WITHDRAWAL, Amount: 500, Timestamp: now},
	}

	converted := ToApiTransactions(transactions)

	require.Len(t, converted, 2)
	// Newest first.
	assert.Equal(t, "tx-2", converted[0].Id)
	assert.Equal(t, "tx-1", converted[1].Id)
	assert.True(t, decimal.RequireFromString("5.00").Equal(converted[0].Amount))
}
