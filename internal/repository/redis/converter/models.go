package converter

import "time"

// OrderRedisModel — витрина заказа в формате кэша.
type OrderRedisModel struct {
	ID               int64                    `json:"id"`
	MemberID         int64                    `json:"member_id"`
	Status           string                   `json:"status"`
	Total            int64                    `json:"total"`
	RecipientName    string                   `json:"recipient_name"`
	RecipientPhone   string                   `json:"recipient_phone"`
	RecipientAddress string                   `json:"recipient_address"`
	Notes            string                   `json:"notes"`
	Items            []OrderItemRedisModel    `json:"items"`
	Timeline         []TimelineEntryRedisModel `json:"timeline"`
}

type OrderItemRedisModel struct {
	ProductID     int64  `json:"product_id"`
	ProductName   string `json:"product_name"`
	Quantity      int64  `json:"quantity"`
	Price         int64  `json:"price"`
	DiscountPrice *int64 `json:"discount_price,omitempty"`
}

type TimelineEntryRedisModel struct {
	Status string    `json:"status"`
	At     time.Time `json:"at"`
}
