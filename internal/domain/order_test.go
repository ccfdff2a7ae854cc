package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderCreated, OrderConfirmed, true},
		{OrderConfirmed, OrderShipped, true},
		{OrderShipped, OrderDelivered, true},
		{OrderCreated, OrderCanceled, true},
		{OrderConfirmed, OrderCanceled, true},

		// Повторная установка текущего неконечного статуса.
		{OrderConfirmed, OrderConfirmed, true},
		{OrderShipped, OrderShipped, true},

		// Пропуск шага и движение назад.
		{OrderCreated, OrderShipped, false},
		{OrderCreated, OrderDelivered, false},
		{OrderConfirmed, OrderDelivered, false},
		{OrderShipped, OrderConfirmed, false},
		{OrderShipped, OrderCanceled, false},

		// Из конечных статусов выхода нет.
		{OrderDelivered, OrderCanceled, false},
		{OrderDelivered, OrderDelivered, false},
		{OrderCanceled, OrderCreated, false},
		{OrderCanceled, OrderCanceled, false},

		{OrderCreated, "packed", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestOrderStatus_Valid(t *testing.T) {
	for _, status := range []OrderStatus{OrderCreated, OrderConfirmed, OrderShipped, OrderDelivered, OrderCanceled} {
		assert.True(t, status.Valid(), status)
	}
	assert.False(t, OrderStatus("packed").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestOrder_Timeline(t *testing.T) {
	createdAt := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	confirmedAt := createdAt.Add(time.Hour)
	canceledAt := createdAt.Add(2 * time.Hour)

	t.Run("fresh order has only the confirming point", func(t *testing.T) {
		order := &Order{Status: OrderCreated, CreatedAt: createdAt}

		timeline := order.Timeline()
		require.Len(t, timeline, 1)
		assert.Equal(t, TimelineEntry{Status: "confirming", At: createdAt}, timeline[0])
	})

	t.Run("stamped transitions appear in fixed order", func(t *testing.T) {
		order := &Order{
			Status:      OrderCanceled,
			CreatedAt:   createdAt,
			ConfirmedAt: &confirmedAt,
			CanceledAt:  &canceledAt,
		}

		timeline := order.Timeline()
		require.Len(t, timeline, 3)
		assert.Equal(t, "confirming", timeline[0].Status)
		assert.Equal(t, "confirmed", timeline[1].Status)
		assert.Equal(t, "canceled", timeline[2].Status)
		assert.Equal(t, canceledAt, timeline[2].At)
	})
}
