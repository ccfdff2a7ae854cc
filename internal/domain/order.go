package domain

import "time"

// OrderStatus — статус заказа.
type OrderStatus string

const (
	OrderCreated   OrderStatus = "created"
	OrderConfirmed OrderStatus = "confirmed"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCanceled  OrderStatus = "canceled"
)

// Valid сообщает, известен ли статус.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderCreated, OrderConfirmed, OrderShipped, OrderDelivered, OrderCanceled:
		return true
	}
	return false
}

// Terminal сообщает, является ли статус конечным.
func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCanceled
}

// CanTransitionTo проверяет допустимость перехода s -> next.
// Цепочка created -> confirmed -> shipped -> delivered движется только вперёд;
// отмена возможна из created и confirmed. Повторная установка текущего
// неконечного статуса допускается (метка времени проставляется заново).
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s.Terminal() {
		return false
	}

	switch next {
	case OrderConfirmed:
		return s == OrderCreated || s == OrderConfirmed
	case OrderShipped:
		return s == OrderConfirmed || s == OrderShipped
	case OrderDelivered:
		return s == OrderShipped
	case OrderCanceled:
		return s == OrderCreated || s == OrderConfirmed
	}
	return false
}

// Order — неизменяемая запись заказа. После создания меняются только
// статус и соответствующие ему метки времени (каждая ставится при переходе).
type Order struct {
	ID               int64
	MemberID         int64
	RecipientName    string
	RecipientPhone   string
	RecipientAddress string
	Notes            string
	Total            int64 // заявленная и подтверждённая сумма, в копейках
	Status           OrderStatus
	CreatedAt        time.Time
	ConfirmedAt      *time.Time
	ShippedAt        *time.Time
	DeliveredAt      *time.Time
	CanceledAt       *time.Time
}

// OrderItem — снимок позиции на момент покупки. Цены копируются при создании
// заказа и не зависят от последующих правок каталога и акций.
type OrderItem struct {
	ID            int64
	OrderID       int64
	ProductID     int64
	ProductName   string
	Quantity      int64
	Price         int64  // полная цена единицы на момент покупки
	DiscountPrice *int64 // скидочная цена единицы, если акция действовала
}

// TimelineEntry — одна точка производной хронологии заказа.
type TimelineEntry struct {
	Status string
	At     time.Time
}

// Timeline собирает хронологию заказа: всегда начинается с ("confirming",
// CreatedAt), далее в фиксированном порядке добавляются проставленные метки.
func (o *Order) Timeline() []TimelineEntry {
	entries := []TimelineEntry{{Status: "confirming", At: o.CreatedAt}}

	steps := []struct {
		status string
		at     *time.Time
	}{
		{"confirmed", o.ConfirmedAt},
		{"shipped", o.ShippedAt},
		{"delivered", o.DeliveredAt},
		{"canceled", o.CanceledAt},
	}
	for _, s := range steps {
		if s.at != nil {
			entries = append(entries, TimelineEntry{Status: s.status, At: *s.at})
		}
	}

	return entries
}
