package http

import (
	"time"

	"github.com/severnmarket/go-backend/internal/usecase"
)

// Тела запросов

type addItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type setQuantityRequest struct {
	Quantity int64 `json:"quantity"`
}

type mergeCartRequest struct {
	Lines []guestLineRequest `json:"lines"`
}

type guestLineRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type createOrderRequest struct {
	RecipientName    string `json:"recipient_name"`
	RecipientPhone   string `json:"recipient_phone"`
	RecipientAddress string `json:"recipient_address"`
	Notes            string `json:"notes"`
	DeclaredTotal    string `json:"declared_total"` // сумма в рублях, строка "599.99"
}

type setStatusRequest struct {
	Status string `json:"status"`
}

type passwordResetRequest struct {
	Email string `json:"email"`
}

type passwordResetConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// Тела ответов. Денежные суммы сериализуются строками в рублях.

type cartLineResponse struct {
	ProductID     int64   `json:"product_id"`
	Name          string  `json:"name"`
	Quantity      int64   `json:"quantity"`
	Price         string  `json:"price"`
	DiscountPrice *string `json:"discount_price,omitempty"`
	Subtotal      string  `json:"subtotal"`
}

type cartResponse struct {
	Lines []cartLineResponse `json:"lines"`
	Total string             `json:"total"`
}

type checkCartResponse struct {
	Valid      bool     `json:"valid"`
	Violations []string `json:"violations"`
}

type createOrderResponse struct {
	OrderID int64 `json:"order_id"`
}

type orderItemResponse struct {
	ProductID     int64   `json:"product_id"`
	ProductName   string  `json:"product_name"`
	Quantity      int64   `json:"quantity"`
	Price         string  `json:"price"`
	DiscountPrice *string `json:"discount_price,omitempty"`
}

type timelineEntryResponse struct {
	Status string    `json:"status"`
	At     time.Time `json:"at"`
}

type orderResponse struct {
	ID               int64                   `json:"id"`
	Status           string                  `json:"status"`
	Total            string                  `json:"total"`
	RecipientName    string                  `json:"recipient_name"`
	RecipientPhone   string                  `json:"recipient_phone"`
	RecipientAddress string                  `json:"recipient_address"`
	Notes            string                  `json:"notes,omitempty"`
	Items            []orderItemResponse     `json:"items,omitempty"`
	Timeline         []timelineEntryResponse `json:"timeline,omitempty"`
}

func newCartResponse(res *usecase.GetCartRes) *cartResponse {
	lines := make([]cartLineResponse, 0, len(res.Lines))
	for _, line := range res.Lines {
		lines = append(lines, cartLineResponse{
			ProductID:     line.ProductID,
			Name:          line.Name,
			Quantity:      line.Quantity,
			Price:         formatCents(line.Price),
			DiscountPrice: formatCentsPtr(line.DiscountPrice),
			Subtotal:      formatCents(line.Subtotal),
		})
	}

	return &cartResponse{
		Lines: lines,
		Total: formatCents(res.Total),
	}
}

func newOrderResponse(view *usecase.OrderView) *orderResponse {
	items := make([]orderItemResponse, 0, len(view.Items))
	for _, item := range view.Items {
		items = append(items, orderItemResponse{
			ProductID:     item.ProductID,
			ProductName:   item.ProductName,
			Quantity:      item.Quantity,
			Price:         formatCents(item.Price),
			DiscountPrice: formatCentsPtr(item.DiscountPrice),
		})
	}

	timeline := make([]timelineEntryResponse, 0, len(view.Timeline))
	for _, entry := range view.Timeline {
		timeline = append(timeline, timelineEntryResponse{
			Status: entry.Status,
			At:     entry.At,
		})
	}

	return &orderResponse{
		ID:               view.ID,
		Status:           view.Status,
		Total:            formatCents(view.Total),
		RecipientName:    view.RecipientName,
		RecipientPhone:   view.RecipientPhone,
		RecipientAddress: view.RecipientAddress,
		Notes:            view.Notes,
		Items:            items,
		Timeline:         timeline,
	}
}

func formatCentsPtr(cents *int64) *string {
	if cents == nil {
		return nil
	}
	s := formatCents(*cents)
	return &s
}
