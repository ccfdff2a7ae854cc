package domain

import "time"

// Cart — корзина участника. Создаётся лениво при первом обращении,
// одна на участника; при успешном оформлении заказа очищается, но не удаляется.
type Cart struct {
	ID        int64
	MemberID  int64
	CreatedAt time.Time
}

// CartItem — позиция корзины: не более одной на пару (корзина, товар).
type CartItem struct {
	ID        int64
	CartID    int64
	ProductID int64
	Quantity  int64 // всегда >= 1
	CreatedAt time.Time
	UpdatedAt *time.Time
}
