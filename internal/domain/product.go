package domain

import "time"

// ProductStatus — статус жизненного цикла товара в каталоге.
type ProductStatus string

const (
	ProductListed   ProductStatus = "listed"
	ProductUnlisted ProductStatus = "unlisted"
)

// Product описывает товар каталога.
// Inventory изменяется только оформлением заказа (декремент)
// и отменой заказа (возврат).
type Product struct {
	ID        int64
	Name      string
	Price     int64 // Цена хранится в копейках
	Inventory int64
	Status    ProductStatus
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Purchasable сообщает, доступен ли товар для добавления в корзину.
func (p *Product) Purchasable() bool {
	return p != nil && p.Status == ProductListed
}
