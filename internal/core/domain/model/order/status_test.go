package order_test

import (
	"testing"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status   order.Status
		expected string
	}{
		{order.Unknown, "UNKNOWN"},
		{order.Pending, "PENDING"},
		{order.Placed, "PLACED"},
		{order.Paid, "PAID"},
		{order.Shipped, "SHIPPED"},
		{order.Cancelled, "CANCELLED"},
		{order.Status(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.status.String())
	}
}

func TestStatus_Validate(t *testing.T) {
	for _, s := range []order.Status{order.Pending, order.Placed, order.Paid, order.Shipped, order.Cancelled} {
		require.NoError(t, s.Validate(), s.String())
	}

	require.Error(t, order.Unknown.Validate())
	require.Error(t, order.Status(42).Validate())
}

func TestStatusFromString(t *testing.T) {
	t.Run("parses valid statuses", func(t *testing.T) {
		tests := map[string]order.Status{
			"PENDING":   order.Pending,
			"PLACED":    order.Placed,
			"PAID":      order.Paid,
			"SHIPPED":   order.Shipped,
			"CANCELLED": order.Cancelled,
		}

		for input, expected := range tests {
			s, err := order.StatusFromString(input)
			require.NoError(t, err)
			assert.Equal(t, expected, s)
		}
	})

	t.Run("rejects unknown strings", func(t *testing.T) {
		for _, input := range []string{"", "UNKNOWN", "pending", "SHIPPING"} {
			_, err := order.StatusFromString(input)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid, "input: %q", input)
		}
	})
}

func TestStatus_Place(t *testing.T) {
	t.Run("allowed from Pending and Paid", func(t *testing.T) {
		for _, s := range []order.Status{order.Pending, order.Paid} {
			newStatus, err := s.Place()
			require.NoError(t, err, s.String())
			assert.Equal(t, order.Placed, newStatus)
		}
	})

	t.Run("rejected from other statuses", func(t *testing.T) {
		for _, s := range []order.Status{order.Unknown, order.Placed, order.Shipped, order.Cancelled} {
			_, err := s.Place()
			require.Error(t, err, s.String())
		}
	})
}

func TestStatus_Pay(t *testing.T) {
	t.Run("allowed from Placed and Paid", func(t *testing.T) {
		for _, s := range []order.Status{order.Placed, order.Paid} {
			newStatus, err := s.Pay()
			require.NoError(t, err, s.String())
			assert.Equal(t, order.Paid, newStatus)
		}
	})

	t.Run("rejected from other statuses", func(t *testing.T) {
		for _, s := range []order.Status{order.Unknown, order.Pending, order.Shipped, order.Cancelled} {
			_, err := s.Pay()
			require.Error(t, err, s.String())
		}
	})
}

func TestStatus_Cancel(t *testing.T) {
	t.Run("allowed from Pending, Placed and Paid", func(t *testing.T) {
		for _, s := range []order.Status{order.Pending, order.Placed, order.Paid} {
			newStatus, err := s.Cancel()
			require.NoError(t, err, s.String())
			assert.Equal(t, order.Cancelled, newStatus)
		}
	})

	t.Run("already cancelled", func(t *testing.T) {
		_, err := order.Cancelled.Cancel()
		require.ErrorIs(t, err, order.ErrOrderAlreadyCancelled)
	})

	t.Run("cannot cancel shipped", func(t *testing.T) {
		_, err := order.Shipped.Cancel()
		require.ErrorIs(t, err, order.ErrCannotCancelShipped)
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := order.Unknown.Cancel()
		require.Error(t, err)
	})
}

func TestStatus_RequiresStockRelease(t *testing.T) {
	assert.True(t, order.Placed.RequiresStockRelease())
	assert.True(t, order.Paid.RequiresStockRelease())

	assert.False(t, order.Pending.RequiresStockRelease())
	assert.False(t, order.Shipped.RequiresStockRelease())
	assert.False(t, order.Cancelled.RequiresStockRelease())
	assert.False(t, order.Unknown.RequiresStockRelease())
}
