package domain

import "time"

// EffectivePrice возвращает действующую цену единицы товара на момент now:
// полную цену и, если к товару привязана действующая акция, скидочную цену.
// Скидочная цена считается как ceil(price * value / 100) — округление
// строго вверх, это инвариант ценообразования.
// Функция чистая: никаких побочных эффектов и обращений к хранилищу.
func EffectivePrice(product *Product, link *PromotionLink, now time.Time) (price int64, discount *int64) {
	price = product.Price

	if link == nil || link.Promotion == nil {
		return price, nil
	}
	if !link.Promotion.AppliesAt(now) {
		return price, nil
	}

	d := ceilPercent(product.Price, link.Promotion.Value)
	return price, &d
}

// ChargedPrice возвращает цену, которая фактически будет списана за единицу.
func ChargedPrice(product *Product, link *PromotionLink, now time.Time) int64 {
	price, discount := EffectivePrice(product, link, now)
	if discount != nil {
		return *discount
	}
	return price
}

// ceilPercent — целочисленный ceil(price * value / 100).
func ceilPercent(price, value int64) int64 {
	return (price*value + 99) / 100
}
