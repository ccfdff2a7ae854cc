package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/severnmarket/go-backend/internal/domain"
	"github.com/severnmarket/go-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderFixture struct {
	uc          *OrderUseCase
	productRepo *fakeProductRepo
	cartRepo    *fakeCartRepo
	orderRepo   *fakeOrderRepo
	outboxRepo  *fakeOutboxRepo
	cacheRepo   *fakeCacheRepo
	pool        *fakeTransactional
}

func newOrderFixture() *orderFixture {
	productRepo := newFakeProductRepo()
	cartRepo := newFakeCartRepo(productRepo)
	orderRepo := newFakeOrderRepo()
	outboxRepo := &fakeOutboxRepo{}
	cacheRepo := newFakeCacheRepo()
	pool := &fakeTransactional{}

	uc := NewOrderUC(orderRepo, cartRepo, productRepo, outboxRepo, cacheRepo, pool, nopLogger{})
	uc.now = func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) }

	return &orderFixture{
		uc:          uc,
		productRepo: productRepo,
		cartRepo:    cartRepo,
		orderRepo:   orderRepo,
		outboxRepo:  outboxRepo,
		cacheRepo:   cacheRepo,
		pool:        pool,
	}
}

func validCreateOrderReq(memberID, declaredTotal int64) *CreateOrderReq {
	return &CreateOrderReq{
		MemberID:         memberID,
		RecipientName:    "Ivan Petrov",
		RecipientPhone:   "+79990001122",
		RecipientAddress: "Moscow, Tverskaya 1",
		DeclaredTotal:    declaredTotal,
	}
}

func (f *orderFixture) fillCart(t *testing.T, memberID int64, productID, quantity int64) {
	t.Helper()
	cart, err := f.cartRepo.GetOrCreate(context.Background(), memberID)
	require.NoError(t, err)
	require.NoError(t, f.cartRepo.UpsertItemAdd(context.Background(), cart.ID, productID, quantity))
}

func TestOrderUseCase_CreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("creates order, decrements inventory, clears cart", func(t *testing.T) {
		f := newOrderFixture()
		f.productRepo.products[1] = listedProduct(1, 999, 10)
		f.productRepo.links[1] = &domain.PromotionLink{PromotionID: 1, ProductID: 1, Promotion: activePromotion(10)}
		f.fillCart(t, 7, 1, 3)

		// 3 * ceil(999*10/100) = 300
		res, err := f.uc.CreateOrder(ctx, validCreateOrderReq(7, 300))
		require.NoError(t, err)

		order := f.orderRepo.orders[res.OrderID]
		require.NotNil(t, order)
		assert.Equal(t, int64(300), order.Total)
		assert.Equal(t, domain.OrderCreated, order.Status)

		items := f.orderRepo.items[res.OrderID]
		require.Len(t, items, 1)
		assert.Equal(t, int64(999), items[0].Price)
		require.NotNil(t, items[0].DiscountPrice)
		assert.Equal(t, int64(100), *items[0].DiscountPrice)

		assert.Equal(t, int64(7), f.productRepo.products[1].Inventory)
		cart := f.cartRepo.carts[7]
		assert.Empty(t, f.cartRepo.items[cart.ID])

		require.Len(t, f.outboxRepo.events, 1)
		assert.Equal(t, OrderCreatedEvent, f.outboxRepo.events[0].EventType)
		assert.True(t, f.pool.lastTx().committed)
	})

	t.Run("rejects missing recipient", func(t *testing.T) {
		f := newOrderFixture()
		req := validCreateOrderReq(7, 100)
		req.RecipientPhone = ""

		_, err := f.uc.CreateOrder(ctx, req)
		assert.ErrorIs(t, err, e.ErrRecipientRequired)
	})

	t.Run("rejects empty cart", func(t *testing.T) {
		f := newOrderFixture()

		_, err := f.uc.CreateOrder(ctx, validCreateOrderReq(7, 0))
		assert.ErrorIs(t, err, e.ErrEmptyCart)
		assert.True(t, f.pool.lastTx().rolledBack)
	})

	t.Run("amount mismatch returns correct total and rolls back", func(t *testing.T) {
		f := newOrderFixture()
		f.productRepo.products[1] = listedProduct(1, 500, 10)
		f.fillCart(t, 7, 1, 2)

		_, err := f.uc.CreateOrder(ctx, validCreateOrderReq(7, 999))
		var mismatch *e.AmountMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, int64(1000), mismatch.CorrectAmount)

		assert.Empty(t, f.orderRepo.orders)
		assert.Equal(t, int64(10), f.productRepo.products[1].Inventory)
		assert.True(t, f.pool.lastTx().rolledBack)
	})

	t.Run("stale promotion is repriced at checkout", func(t *testing.T) {
		f := newOrderFixture()
		f.productRepo.products[1] = listedProduct(1, 1000, 10)
		expired := activePromotion(50)
		expired.EndDate = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
		f.productRepo.links[1] = &domain.PromotionLink{PromotionID: 1, ProductID: 1, Promotion: expired}
		f.fillCart(t, 7, 1, 1)

		// Клиент видел 500 со скидкой, но акция уже закончилась.
		_, err := f.uc.CreateOrder(ctx, validCreateOrderReq(7, 500))
		var mismatch *e.AmountMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, int64(1000), mismatch.CorrectAmount)
	})

	t.Run("oversell fails the whole checkout", func(t *testing.T) {
		f := newOrderFixture()
		f.productRepo.products[1] = listedProduct(1, 100, 10)
		f.productRepo.products[2] = listedProduct(2, 200, 1)
		f.fillCart(t, 7, 1, 2)
		f.fillCart(t, 7, 2, 5)

		_, err := f.uc.CreateOrder(ctx, validCreateOrderReq(7, 1200))
		assert.ErrorIs(t, err, e.ErrInsufficientInventory)
		assert.Empty(t, f.outboxRepo.events)
		assert.True(t, f.pool.lastTx().rolledBack)
	})

	t.Run("unlisted product fails checkout", func(t *testing.T) {
		f := newOrderFixture()
		unlisted := listedProduct(1, 100, 10)
		unlisted.Status = domain.ProductUnlisted
		f.productRepo.products[1] = unlisted
		f.fillCart(t, 7, 1, 1)

		_, err := f.uc.CreateOrder(ctx, validCreateOrderReq(7, 100))
		assert.ErrorIs(t, err, e.ErrProductUnavailable)
	})
}

func TestOrderUseCase_SetStatus(t *testing.T) {
	ctx := context.Background()

	createOrder := func(t *testing.T, f *orderFixture, memberID int64) int64 {
		t.Helper()
		f.productRepo.products[1] = listedProduct(1, 100, 10)
		f.fillCart(t, memberID, 1, 3)
		res, err := f.uc.CreateOrder(ctx, validCreateOrderReq(memberID, 300))
		require.NoError(t, err)
		return res.OrderID
	}

	t.Run("owner cancel restores inventory exactly once", func(t *testing.T) {
		f := newOrderFixture()
		orderID := createOrder(t, f, 7)
		require.Equal(t, int64(7), f.productRepo.products[1].Inventory)

		err := f.uc.SetStatus(ctx, &SetStatusReq{OrderID: orderID, MemberID: 7, Role: domain.RoleMember, Status: domain.OrderCanceled})
		require.NoError(t, err)
		assert.Equal(t, int64(10), f.productRepo.products[1].Inventory)
		assert.Equal(t, domain.OrderCanceled, f.orderRepo.orders[orderID].Status)
		assert.Equal(t, [][]int64{{orderID}}, f.cacheRepo.deleted)

		// canceled конечен: повторная отмена не проходит и не возвращает остаток ещё раз.
		err = f.uc.SetStatus(ctx, &SetStatusReq{OrderID: orderID, MemberID: 7, Role: domain.RoleMember, Status: domain.OrderCanceled})
		assert.ErrorIs(t, err, e.ErrIllegalTransition)
		assert.Equal(t, int64(10), f.productRepo.products[1].Inventory)
	})

	t.Run("member cannot advance the order", func(t *testing.T) {
		f := newOrderFixture()
		orderID := createOrder(t, f, 7)

		err := f.uc.SetStatus(ctx, &SetStatusReq{OrderID: orderID, MemberID: 7, Role: domain.RoleMember, Status: domain.OrderConfirmed})
		assert.ErrorIs(t, err, e.ErrForbidden)
	})

	t.Run("foreign order answers not found", func(t *testing.T) {
		f := newOrderFixture()
		orderID := createOrder(t, f, 7)

		err := f.uc.SetStatus(ctx, &SetStatusReq{OrderID: orderID, MemberID: 8, Role: domain.RoleMember, Status: domain.OrderCanceled})
		assert.ErrorIs(t, err, e.ErrOrderNotFound)
	})

	t.Run("admin walks the chain forward", func(t *testing.T) {
		f := newOrderFixture()
		orderID := createOrder(t, f, 7)

		for _, status := range []domain.OrderStatus{domain.OrderConfirmed, domain.OrderShipped, domain.OrderDelivered} {
			err := f.uc.SetStatus(ctx, &SetStatusReq{OrderID: orderID, MemberID: 1, Role: domain.RoleAdmin, Status: status})
			require.NoError(t, err)
		}

		order := f.orderRepo.orders[orderID]
		assert.Equal(t, domain.OrderDelivered, order.Status)
		assert.NotNil(t, order.ConfirmedAt)
		assert.NotNil(t, order.ShippedAt)
		assert.NotNil(t, order.DeliveredAt)

		// delivered конечен.
		err := f.uc.SetStatus(ctx, &SetStatusReq{OrderID: orderID, MemberID: 1, Role: domain.RoleAdmin, Status: domain.OrderCanceled})
		assert.ErrorIs(t, err, e.ErrIllegalTransition)
	})

	t.Run("admin cannot skip a step", func(t *testing.T) {
		f := newOrderFixture()
		orderID := createOrder(t, f, 7)

		err := f.uc.SetStatus(ctx, &SetStatusReq{OrderID: orderID, MemberID: 1, Role: domain.RoleAdmin, Status: domain.OrderShipped})
		assert.ErrorIs(t, err, e.ErrIllegalTransition)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		f := newOrderFixture()
		orderID := createOrder(t, f, 7)

		err := f.uc.SetStatus(ctx, &SetStatusReq{OrderID: orderID, MemberID: 1, Role: domain.RoleAdmin, Status: "packed"})
		assert.ErrorIs(t, err, e.ErrInvalidStatus)
	})
}

func TestOrderUseCase_GetOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("cache miss loads from storage and fills cache", func(t *testing.T) {
		f := newOrderFixture()
		f.productRepo.products[1] = listedProduct(1, 100, 10)
		f.fillCart(t, 7, 1, 2)
		res, err := f.uc.CreateOrder(ctx, validCreateOrderReq(7, 200))
		require.NoError(t, err)

		view, err := f.uc.GetOrder(ctx, &GetOrderReq{OrderID: res.OrderID, MemberID: 7, Role: domain.RoleMember})
		require.NoError(t, err)
		assert.Equal(t, res.OrderID, view.ID)
		assert.Equal(t, int64(200), view.Total)
		require.Len(t, view.Items, 1)
		require.NotEmpty(t, view.Timeline)
		assert.Equal(t, "confirming", view.Timeline[0].Status)

		select {
		case id := <-f.cacheRepo.setCh:
			assert.Equal(t, res.OrderID, id)
		case <-time.After(time.Second):
			t.Fatal("background cache fill did not happen")
		}
	})

	t.Run("cache hit still checks ownership", func(t *testing.T) {
		f := newOrderFixture()
		f.cacheRepo.views[5] = &OrderView{ID: 5, MemberID: 7}

		_, err := f.uc.GetOrder(ctx, &GetOrderReq{OrderID: 5, MemberID: 8, Role: domain.RoleMember})
		assert.ErrorIs(t, err, e.ErrOrderNotFound)

		view, err := f.uc.GetOrder(ctx, &GetOrderReq{OrderID: 5, MemberID: 8, Role: domain.RoleAdmin})
		require.NoError(t, err)
		assert.Equal(t, int64(5), view.ID)
	})

	t.Run("foreign order answers not found", func(t *testing.T) {
		f := newOrderFixture()
		f.productRepo.products[1] = listedProduct(1, 100, 10)
		f.fillCart(t, 7, 1, 1)
		res, err := f.uc.CreateOrder(ctx, validCreateOrderReq(7, 100))
		require.NoError(t, err)

		_, err = f.uc.GetOrder(ctx, &GetOrderReq{OrderID: res.OrderID, MemberID: 8, Role: domain.RoleMember})
		assert.ErrorIs(t, err, e.ErrOrderNotFound)
	})
}

func TestOrderUseCase_ListOrders(t *testing.T) {
	ctx := context.Background()

	f := newOrderFixture()
	f.productRepo.products[1] = listedProduct(1, 100, 100)
	f.fillCart(t, 7, 1, 1)
	_, err := f.uc.CreateOrder(ctx, validCreateOrderReq(7, 100))
	require.NoError(t, err)
	f.fillCart(t, 8, 1, 2)
	_, err = f.uc.CreateOrder(ctx, validCreateOrderReq(8, 200))
	require.NoError(t, err)

	mine, err := f.uc.ListOrders(ctx, &ListOrdersReq{MemberID: 7, Role: domain.RoleMember})
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	all, err := f.uc.ListOrders(ctx, &ListOrdersReq{MemberID: 1, Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
