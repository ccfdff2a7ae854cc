package usecase

import "context"

type CartUC interface {
	GetCart(ctx context.Context, memberID int64) (*GetCartRes, error)
	AddItem(ctx context.Context, req *AddItemReq) error
	SetQuantity(ctx context.Context, req *SetQuantityReq) error
	RemoveItem(ctx context.Context, req *RemoveItemReq) error
	MergeGuestCart(ctx context.Context, req *MergeGuestCartReq) error
	CheckCart(ctx context.Context, memberID int64) (*CheckCartRes, error)
}

type OrderUC interface {
	CreateOrder(ctx context.Context, req *CreateOrderReq) (*CreateOrderRes, error)
	GetOrder(ctx context.Context, req *GetOrderReq) (*OrderView, error)
	ListOrders(ctx context.Context, req *ListOrdersReq) ([]*OrderView, error)
	SetStatus(ctx context.Context, req *SetStatusReq) error
}

type AuthUC interface {
	RequestPasswordReset(ctx context.Context, req *RequestPasswordResetReq) error
	ConfirmPasswordReset(ctx context.Context, req *ConfirmPasswordResetReq) error
}

type SweepUC interface {
	RunOnce(ctx context.Context) (*SweepReport, error)
}
