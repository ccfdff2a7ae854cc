package domain

import "time"

// DiscountKind — вид скидки. Пока поддерживается только процентная.
type DiscountKind string

const DiscountPercentage DiscountKind = "percentage"

// Promotion описывает акцию с временным окном действия.
// IsActive переключается администратором вручную и не зависит от окна дат;
// ночная уборка переводит акции только из active в inactive.
type Promotion struct {
	ID        int64
	Name      string
	Kind      DiscountKind
	Value     int64 // процент 1–100
	StartDate time.Time
	EndDate   time.Time
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// AppliesAt сообщает, действует ли акция в момент now.
func (p *Promotion) AppliesAt(now time.Time) bool {
	if p == nil || !p.IsActive {
		return false
	}
	return !now.Before(p.StartDate) && !now.After(p.EndDate)
}

// PromotionLink — привязка товара к акции.
// У товара не более одной привязки одновременно (уникальность по product_id).
type PromotionLink struct {
	PromotionID int64
	ProductID   int64
	Promotion   *Promotion
}
