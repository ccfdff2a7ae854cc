//go:generate goverter gen github.com/severnmarket/go-backend/internal/repository/pgdb/converter
package converter

import (
	"time"

	"github.com/severnmarket/go-backend/internal/domain"
	"github.com/severnmarket/go-backend/internal/usecase"
)

// ProductConverter преобразует сущности Product между domain и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
// goverter:extend ConvertProductStatus
// goverter:extend ConvertProductStatusToString
type ProductConverter interface {
	ToModel(entity *domain.Product) *ProductModel
	ToEntity(model *ProductModel) *domain.Product
}

// PromotionConverter преобразует сущности Promotion между domain и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
// goverter:extend ConvertDiscountKind
// goverter:extend ConvertDiscountKindToString
type PromotionConverter interface {
	ToModel(entity *domain.Promotion) *PromotionModel
	ToEntity(model *PromotionModel) *domain.Promotion
}

// OrderConverter преобразует сущности Order между domain и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
// goverter:extend ConvertOrderStatus
// goverter:extend ConvertOrderStatusToString
type OrderConverter interface {
	ToModel(entity *domain.Order) *OrderModel
	ToEntity(model *OrderModel) *domain.Order
	ToArrEntity(models []*OrderModel) []*domain.Order
}

// OutboxEventConverter преобразует сущности OutboxEvent между usecase и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
// goverter:extend ConvertOutboxStatus
// goverter:extend ConvertOutboxStatusToString
// goverter:extend ConvertOutboxEventType
// goverter:extend ConvertOutboxEventTypeToString
type OutboxEventConverter interface {
	ToModel(entity *usecase.OutboxEvent) *OutboxEventModel
	ToEntity(model *OutboxEventModel) *usecase.OutboxEvent
	ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent
}

func ConvertPointerTime(t *time.Time) *time.Time {
	return t
}

func ConvertTime(t time.Time) time.Time {
	return t
}

func ConvertProductStatus(s string) domain.ProductStatus {
	return domain.ProductStatus(s)
}

func ConvertProductStatusToString(s domain.ProductStatus) string {
	return string(s)
}

func ConvertDiscountKind(s string) domain.DiscountKind {
	return domain.DiscountKind(s)
}

func ConvertDiscountKindToString(k domain.DiscountKind) string {
	return string(k)
}

func ConvertOrderStatus(s string) domain.OrderStatus {
	return domain.OrderStatus(s)
}

func ConvertOrderStatusToString(s domain.OrderStatus) string {
	return string(s)
}

func ConvertOutboxStatus(s string) usecase.OutboxStatus {
	return usecase.OutboxStatus(s)
}

func ConvertOutboxStatusToString(s usecase.OutboxStatus) string {
	return string(s)
}

func ConvertOutboxEventType(s string) usecase.OutboxEventType {
	return usecase.OutboxEventType(s)
}

func ConvertOutboxEventTypeToString(t usecase.OutboxEventType) string {
	return string(t)
}
