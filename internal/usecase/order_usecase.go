package usecase

import (
	"context"
	"encoding/json"
	"time"

	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/severnmarket/go-backend/internal/domain"
	"github.com/severnmarket/go-backend/pkg/e"
	"github.com/severnmarket/go-backend/pkg/logger"
)

// OrderUseCase реализует оформление заказа и управление его жизненным циклом.
type OrderUseCase struct {
	orderRepo   OrderRepository
	cartRepo    CartRepository
	productRepo ProductRepository
	outboxRepo  OutboxRepository
	cacheRepo   CacheRepository
	dbPool      transaction.Transactional
	logger      logger.Logger
	now         func() time.Time
}

func NewOrderUC(
	orderRepo OrderRepository,
	cartRepo CartRepository,
	productRepo ProductRepository,
	outboxRepo OutboxRepository,
	cacheRepo CacheRepository,
	dbPool transaction.Transactional,
	logger logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		outboxRepo:  outboxRepo,
		cacheRepo:   cacheRepo,
		dbPool:      dbPool,
		logger:      logger,
		now:         time.Now,
	}
}

// orderEventPayload — тело события заказа для отложенной публикации.
type orderEventPayload struct {
	OrderID  int64  `json:"order_id"`
	MemberID int64  `json:"member_id"`
	Status   string `json:"status"`
	Total    int64  `json:"total,omitempty"`
}

// CreateOrder превращает корзину участника в неизменяемую запись заказа.
// Все шаги — пересчёт суммы, создание заказа со снимками цен, списание
// остатков, очистка корзины, событие outbox — выполняются одной транзакцией:
// либо всё, либо ничего.
func (o *OrderUseCase) CreateOrder(ctx context.Context, req *CreateOrderReq) (*CreateOrderRes, error) {
	const op = "OrderUseCase.CreateOrder"

	if req.RecipientName == "" || req.RecipientPhone == "" || req.RecipientAddress == "" {
		return nil, e.Wrap(op, e.ErrRecipientRequired)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, o.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	// Блокировка строки корзины сериализует оформление с другими правками
	// корзины этого же участника.
	cart, err := o.cartRepo.LockForMember(ctx, req.MemberID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	lines, err := o.cartRepo.LinesWithProducts(ctx, cart.ID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if len(lines) == 0 {
		err = e.ErrEmptyCart
		return nil, e.Wrap(op, err)
	}

	now := o.now()

	// Пересчёт действующих цен на момент покупки и сверка с заявленной суммой.
	var serverTotal int64
	items := make([]domain.OrderItem, 0, len(lines))
	for _, line := range lines {
		if !line.Product.Purchasable() {
			err = e.ErrProductUnavailable
			return nil, e.Wrap(op, err)
		}

		price, discount := domain.EffectivePrice(line.Product, line.Link, now)
		charged := price
		if discount != nil {
			charged = *discount
		}
		serverTotal += charged * line.Quantity

		items = append(items, domain.OrderItem{
			ProductID:     line.ProductID,
			ProductName:   line.Product.Name,
			Quantity:      line.Quantity,
			Price:         price,
			DiscountPrice: discount,
		})
	}

	if serverTotal != req.DeclaredTotal {
		err = &e.AmountMismatchError{CorrectAmount: serverTotal}
		return nil, e.Wrap(op, err)
	}

	order := &domain.Order{
		MemberID:         req.MemberID,
		RecipientName:    req.RecipientName,
		RecipientPhone:   req.RecipientPhone,
		RecipientAddress: req.RecipientAddress,
		Notes:            req.Notes,
		Total:            serverTotal,
		Status:           domain.OrderCreated,
		CreatedAt:        now,
	}

	order, err = o.orderRepo.Create(ctx, order, items)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Списание остатков — условный атомарный UPDATE на стороне хранилища.
	// Параллельное оформление, опередившее нас, приводит к позднему
	// ErrInsufficientInventory и откату всей транзакции.
	for _, line := range lines {
		if err = o.productRepo.AdjustInventory(ctx, line.ProductID, -line.Quantity); err != nil {
			return nil, e.Wrap(op, err)
		}
	}

	if err = o.cartRepo.Clear(ctx, cart.ID); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = o.createOutboxEvent(ctx, OrderCreatedEvent, order); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewCreateOrderRes(order.ID), nil
}

// SetStatus переводит заказ в новый статус, проставляя свежую метку времени
// на каждом принятом переходе. Отмена возвращает списанные количества
// на остатки — ровно один раз, так как canceled конечен.
func (o *OrderUseCase) SetStatus(ctx context.Context, req *SetStatusReq) error {
	const op = "OrderUseCase.SetStatus"

	if !req.Status.Valid() {
		return e.Wrap(op, e.ErrInvalidStatus)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, o.dbPool)
	if err != nil {
		return e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	order, err := o.orderRepo.GetForUpdate(ctx, req.OrderID)
	if err != nil {
		return e.Wrap(op, err)
	}

	if req.Role != domain.RoleAdmin {
		// Чужой заказ отвечает NotFound, чтобы не раскрывать существование.
		if order.MemberID != req.MemberID {
			err = e.ErrOrderNotFound
			return e.Wrap(op, err)
		}
		if req.Status != domain.OrderCanceled {
			err = e.ErrForbidden
			return e.Wrap(op, err)
		}
	}

	if !order.Status.CanTransitionTo(req.Status) {
		err = e.ErrIllegalTransition
		return e.Wrap(op, err)
	}

	if req.Status == domain.OrderCanceled {
		if err = o.restoreInventory(ctx, order.ID); err != nil {
			return e.Wrap(op, err)
		}
	}

	if err = o.orderRepo.SetStatus(ctx, order.ID, req.Status, o.now()); err != nil {
		return e.Wrap(op, err)
	}

	order.Status = req.Status
	if err = o.createOutboxEvent(ctx, OrderStatusChangedEvent, order); err != nil {
		return e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return e.Wrap(op, err)
	}

	if err := o.cacheRepo.DeleteOrders(ctx, []int64{order.ID}); err != nil {
		o.logger.Warnf("failed to invalidate order cache: %v", e.Wrap(op, err))
	}

	return nil
}

// GetOrder собирает витрину заказа с производной хронологией.
// Чтение сквозь кэш; проверка владения выполняется и на попадании в кэш.
func (o *OrderUseCase) GetOrder(ctx context.Context, req *GetOrderReq) (*OrderView, error) {
	const op = "OrderUseCase.GetOrder"

	if view, err := o.cacheRepo.GetOrder(ctx, req.OrderID); err != nil {
		o.logger.Warnf("order cache lookup failed: %v", e.Wrap(op, err))
	} else if view != nil {
		if req.Role != domain.RoleAdmin && view.MemberID != req.MemberID {
			return nil, e.Wrap(op, e.ErrOrderNotFound)
		}
		return view, nil
	}

	order, err := o.orderRepo.GetByID(ctx, req.OrderID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if req.Role != domain.RoleAdmin && order.MemberID != req.MemberID {
		return nil, e.Wrap(op, e.ErrOrderNotFound)
	}

	items, err := o.orderRepo.Items(ctx, order.ID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	view := NewOrderView(order, items)

	// Фоновое наполнение кэша
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		if err := o.cacheRepo.SetOrder(bgCtx, view); err != nil {
			o.logger.Warnf("failed to cache order in background: %v", e.Wrap(op, err))
		}
	}()

	return view, nil
}

// ListOrders возвращает краткие витрины: участнику — свои заказы,
// администратору — все.
func (o *OrderUseCase) ListOrders(ctx context.Context, req *ListOrdersReq) ([]*OrderView, error) {
	const op = "OrderUseCase.ListOrders"

	var (
		orders []*domain.Order
		err    error
	)
	if req.Role == domain.RoleAdmin {
		orders, err = o.orderRepo.ListAll(ctx)
	} else {
		orders, err = o.orderRepo.ListByMember(ctx, req.MemberID)
	}
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	views := make([]*OrderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, NewOrderView(order, nil))
	}

	return views, nil
}

// restoreInventory возвращает купленные количества на остатки товаров.
func (o *OrderUseCase) restoreInventory(ctx context.Context, orderID int64) error {
	items, err := o.orderRepo.Items(ctx, orderID)
	if err != nil {
		return err
	}

	for _, item := range items {
		if err := o.productRepo.AdjustInventory(ctx, item.ProductID, item.Quantity); err != nil {
			return err
		}
	}

	return nil
}

// createOutboxEvent кладёт событие заказа в outbox в текущей транзакции.
func (o *OrderUseCase) createOutboxEvent(ctx context.Context, eventType OutboxEventType, order *domain.Order) error {
	payload, err := json.Marshal(orderEventPayload{
		OrderID:  order.ID,
		MemberID: order.MemberID,
		Status:   string(order.Status),
		Total:    order.Total,
	})
	if err != nil {
		return err
	}

	return o.outboxRepo.Create(ctx, &OutboxEvent{
		EventID:   uuid.NewString(),
		EventType: eventType,
		OrderID:   order.ID,
		Payload:   payload,
		Status:    Pending,
		CreatedAt: o.now(),
	})
}
