package converter

import "time"

// ProductModel представляет запись таблицы products в PostgreSQL.
type ProductModel struct {
	ID        int64      `db:"id"`
	Name      string     `db:"name"`
	Price     int64      `db:"price"`
	Inventory int64      `db:"inventory"`
	Status    string     `db:"status"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt *time.Time `db:"updated_at"`
}

// PromotionModel представляет запись таблицы promotions в PostgreSQL.
type PromotionModel struct {
	ID        int64      `db:"id"`
	Name      string     `db:"name"`
	Kind      string     `db:"kind"`
	Value     int64      `db:"value"`
	StartDate time.Time  `db:"start_date"`
	EndDate   time.Time  `db:"end_date"`
	IsActive  bool       `db:"is_active"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt *time.Time `db:"updated_at"`
}

// OrderModel представляет запись таблицы orders в PostgreSQL.
type OrderModel struct {
	ID               int64      `db:"id"`
	MemberID         int64      `db:"member_id"`
	RecipientName    string     `db:"recipient_name"`
	RecipientPhone   string     `db:"recipient_phone"`
	RecipientAddress string     `db:"recipient_address"`
	Notes            string     `db:"notes"`
	Total            int64      `db:"total"`
	Status           string     `db:"status"`
	CreatedAt        time.Time  `db:"order_created_at"`
	ConfirmedAt      *time.Time `db:"order_confirmed_at"`
	ShippedAt        *time.Time `db:"order_shipped_at"`
	DeliveredAt      *time.Time `db:"order_delivered_at"`
	CanceledAt       *time.Time `db:"order_canceled_at"`
}

// OutboxEventModel представляет запись таблицы outbox_events в PostgreSQL.
type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     string     `db:"event_id"`
	EventType   string     `db:"event_type"`
	OrderID     int64      `db:"order_id"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}
