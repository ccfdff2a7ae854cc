package usecase

import (
	"time"

	"github.com/severnmarket/go-backend/internal/domain"
)

// CART USECASE

// CartLineData — сырая строка корзины из хранилища: позиция плюс живые
// данные товара и привязанной акции. Product == nil, если товар удалён.
type CartLineData struct {
	ProductID int64
	Quantity  int64
	Product   *domain.Product
	Link      *domain.PromotionLink
}

// CartLine — ценёная строка корзины для витрины.
type CartLine struct {
	ProductID     int64
	Name          string
	Quantity      int64
	Price         int64
	DiscountPrice *int64
	Subtotal      int64
}

// GetCartRes — витрина корзины с итоговой суммой в копейках.
type GetCartRes struct {
	Lines []CartLine
	Total int64
}

type AddItemReq struct {
	MemberID  int64
	ProductID int64
	Quantity  int64
}

type SetQuantityReq struct {
	MemberID  int64
	ProductID int64
	Quantity  int64
}

type RemoveItemReq struct {
	MemberID  int64
	ProductID int64
}

// GuestLine — строка анонимной корзины, переносимая при входе.
type GuestLine struct {
	ProductID int64
	Quantity  int64
}

type MergeGuestCartReq struct {
	MemberID int64
	Lines    []GuestLine
}

// CheckCartRes — список нарушений, по одному сообщению на проблемную строку.
type CheckCartRes struct {
	Violations []string
}

// ORDER USECASE

type CreateOrderReq struct {
	MemberID         int64
	RecipientName    string
	RecipientPhone   string
	RecipientAddress string
	Notes            string
	DeclaredTotal    int64 // заявленная клиентом сумма, в копейках
}

type CreateOrderRes struct {
	OrderID int64
}

type GetOrderReq struct {
	OrderID  int64
	MemberID int64
	Role     domain.Role
}

type ListOrdersReq struct {
	MemberID int64
	Role     domain.Role
}

type SetStatusReq struct {
	OrderID  int64
	MemberID int64
	Role     domain.Role
	Status   domain.OrderStatus
}

type OrderItemView struct {
	ProductID     int64
	ProductName   string
	Quantity      int64
	Price         int64
	DiscountPrice *int64
}

// OrderView — витрина заказа с производной хронологией статусов.
type OrderView struct {
	ID               int64
	MemberID         int64
	Status           string
	Total            int64
	RecipientName    string
	RecipientPhone   string
	RecipientAddress string
	Notes            string
	Items            []OrderItemView
	Timeline         []domain.TimelineEntry
}

// AUTH USECASE

type RequestPasswordResetReq struct {
	Email string
}

type ConfirmPasswordResetReq struct {
	Token       string
	NewPassword string
}

// SWEEP USECASE

// SweepReport — итоги одного прохода ночной уборки.
type SweepReport struct {
	PromotionsDeactivated []int64
	TokensPurged          int64
}

// OUTBOX

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

type OutboxEventType string

const (
	OrderCreatedEvent       OutboxEventType = "order.created"
	OrderStatusChangedEvent OutboxEventType = "order.status_changed"
)

type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   OutboxEventType
	OrderID     int64
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

type WriteRawMessageReq struct {
	OrderID int64
	Payload []byte
}

// MAPPERS

func NewAddItemReq(memberID, productID, quantity int64) *AddItemReq {
	return &AddItemReq{
		MemberID:  memberID,
		ProductID: productID,
		Quantity:  quantity,
	}
}

func NewSetQuantityReq(memberID, productID, quantity int64) *SetQuantityReq {
	return &SetQuantityReq{
		MemberID:  memberID,
		ProductID: productID,
		Quantity:  quantity,
	}
}

func NewRemoveItemReq(memberID, productID int64) *RemoveItemReq {
	return &RemoveItemReq{
		MemberID:  memberID,
		ProductID: productID,
	}
}

func NewCreateOrderRes(orderID int64) *CreateOrderRes {
	return &CreateOrderRes{OrderID: orderID}
}

func NewWriteRawMessageReq(orderID int64, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		OrderID: orderID,
		Payload: payload,
	}
}

// NewOrderView собирает витрину заказа из доменной записи и снимков позиций.
func NewOrderView(order *domain.Order, items []domain.OrderItem) *OrderView {
	views := make([]OrderItemView, 0, len(items))
	for _, item := range items {
		views = append(views, OrderItemView{
			ProductID:     item.ProductID,
			ProductName:   item.ProductName,
			Quantity:      item.Quantity,
			Price:         item.Price,
			DiscountPrice: item.DiscountPrice,
		})
	}

	return &OrderView{
		ID:               order.ID,
		MemberID:         order.MemberID,
		Status:           string(order.Status),
		Total:            order.Total,
		RecipientName:    order.RecipientName,
		RecipientPhone:   order.RecipientPhone,
		RecipientAddress: order.RecipientAddress,
		Notes:            order.Notes,
		Items:            views,
		Timeline:         order.Timeline(),
	}
}
