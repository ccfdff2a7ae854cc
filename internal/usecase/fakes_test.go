package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/severnmarket/go-backend/internal/domain"
	"github.com/severnmarket/go-backend/pkg/e"
)

// Фейковое хранилище в памяти. Транзакционность имитируется настоящей
// обёрткой транзакции поверх fakeTransactional, так что пути Commit и
// Rollback проходят через тот же код, что и в бою.

type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *fakeTx) Commit(ctx context.Context) error {
	if t.commitErr != nil {
		return t.commitErr
	}
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	t.rolledBack = true
	return nil
}

type fakeTransactional struct {
	beginErr  error
	commitErr error
	txs       []*fakeTx
}

func (f *fakeTransactional) Begin(ctx context.Context) (pgx.Tx, error) {
	return f.BeginTx(ctx, pgx.TxOptions{})
}

func (f *fakeTransactional) BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error) {
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	tx := &fakeTx{commitErr: f.commitErr}
	f.txs = append(f.txs, tx)
	return tx, nil
}

func (f *fakeTransactional) lastTx() *fakeTx {
	if len(f.txs) == 0 {
		return nil
	}
	return f.txs[len(f.txs)-1]
}

type fakeProductRepo struct {
	products map[int64]*domain.Product
	links    map[int64]*domain.PromotionLink
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		products: make(map[int64]*domain.Product),
		links:    make(map[int64]*domain.PromotionLink),
	}
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	copied := *product
	return &copied, nil
}

func (f *fakeProductRepo) AdjustInventory(ctx context.Context, id int64, delta int64) error {
	product, ok := f.products[id]
	if !ok || product.Inventory+delta < 0 {
		return e.ErrInsufficientInventory
	}
	product.Inventory += delta
	return nil
}

type fakeCartRepo struct {
	productRepo *fakeProductRepo
	carts       map[int64]*domain.Cart // по MemberID
	items       map[int64]map[int64]*domain.CartItem
	nextCartID  int64
	locked      []int64
}

func newFakeCartRepo(productRepo *fakeProductRepo) *fakeCartRepo {
	return &fakeCartRepo{
		productRepo: productRepo,
		carts:       make(map[int64]*domain.Cart),
		items:       make(map[int64]map[int64]*domain.CartItem),
	}
}

func (f *fakeCartRepo) GetOrCreate(ctx context.Context, memberID int64) (*domain.Cart, error) {
	if cart, ok := f.carts[memberID]; ok {
		return cart, nil
	}
	f.nextCartID++
	cart := &domain.Cart{ID: f.nextCartID, MemberID: memberID, CreatedAt: time.Now()}
	f.carts[memberID] = cart
	f.items[cart.ID] = make(map[int64]*domain.CartItem)
	return cart, nil
}

func (f *fakeCartRepo) LockForMember(ctx context.Context, memberID int64) (*domain.Cart, error) {
	f.locked = append(f.locked, memberID)
	return f.GetOrCreate(ctx, memberID)
}

func (f *fakeCartRepo) LinesWithProducts(ctx context.Context, cartID int64) ([]CartLineData, error) {
	lines := make([]CartLineData, 0)
	for _, item := range f.items[cartID] {
		line := CartLineData{ProductID: item.ProductID, Quantity: item.Quantity}
		if product, ok := f.productRepo.products[item.ProductID]; ok {
			copied := *product
			line.Product = &copied
		}
		line.Link = f.productRepo.links[item.ProductID]
		lines = append(lines, line)
	}
	return lines, nil
}

func (f *fakeCartRepo) GetItem(ctx context.Context, cartID, productID int64) (*domain.CartItem, error) {
	item, ok := f.items[cartID][productID]
	if !ok {
		return nil, nil
	}
	return item, nil
}

func (f *fakeCartRepo) UpsertItemAdd(ctx context.Context, cartID, productID, quantity int64) error {
	if item, ok := f.items[cartID][productID]; ok {
		item.Quantity += quantity
		return nil
	}
	f.items[cartID][productID] = &domain.CartItem{
		CartID:    cartID,
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: time.Now(),
	}
	return nil
}

func (f *fakeCartRepo) SetItemQuantity(ctx context.Context, cartID, productID, quantity int64) error {
	item, ok := f.items[cartID][productID]
	if !ok {
		return e.ErrCartItemNotFound
	}
	item.Quantity = quantity
	return nil
}

func (f *fakeCartRepo) DeleteItem(ctx context.Context, cartID, productID int64) error {
	delete(f.items[cartID], productID)
	return nil
}

func (f *fakeCartRepo) Clear(ctx context.Context, cartID int64) error {
	f.items[cartID] = make(map[int64]*domain.CartItem)
	return nil
}

type fakeOrderRepo struct {
	orders  map[int64]*domain.Order
	items   map[int64][]domain.OrderItem
	nextID  int64
	setErrs map[int64]error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders:  make(map[int64]*domain.Order),
		items:   make(map[int64][]domain.OrderItem),
		setErrs: make(map[int64]error),
	}
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *domain.Order, items []domain.OrderItem) (*domain.Order, error) {
	f.nextID++
	copied := *order
	copied.ID = f.nextID
	f.orders[copied.ID] = &copied
	f.items[copied.ID] = items
	return &copied, nil
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, e.ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (f *fakeOrderRepo) GetForUpdate(ctx context.Context, id int64) (*domain.Order, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeOrderRepo) ListByMember(ctx context.Context, memberID int64) ([]*domain.Order, error) {
	result := make([]*domain.Order, 0)
	for _, order := range f.orders {
		if order.MemberID == memberID {
			copied := *order
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (f *fakeOrderRepo) ListAll(ctx context.Context) ([]*domain.Order, error) {
	result := make([]*domain.Order, 0)
	for _, order := range f.orders {
		copied := *order
		result = append(result, &copied)
	}
	return result, nil
}

func (f *fakeOrderRepo) Items(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	return f.items[orderID], nil
}

func (f *fakeOrderRepo) SetStatus(ctx context.Context, id int64, status domain.OrderStatus, stampedAt time.Time) error {
	if err := f.setErrs[id]; err != nil {
		return err
	}
	order, ok := f.orders[id]
	if !ok {
		return e.ErrOrderNotFound
	}
	order.Status = status
	switch status {
	case domain.OrderConfirmed:
		order.ConfirmedAt = &stampedAt
	case domain.OrderShipped:
		order.ShippedAt = &stampedAt
	case domain.OrderDelivered:
		order.DeliveredAt = &stampedAt
	case domain.OrderCanceled:
		order.CanceledAt = &stampedAt
	}
	return nil
}

type fakeOutboxRepo struct {
	events    []*OutboxEvent
	createErr error
}

func (f *fakeOutboxRepo) Create(ctx context.Context, event *OutboxEvent) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.events = append(f.events, event)
	return nil
}

func (f *fakeOutboxRepo) GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepo) MarkAsProcessed(ctx context.Context, id int64) error {
	return nil
}

type fakeCacheRepo struct {
	views   map[int64]*OrderView
	getErr  error
	deleted [][]int64
	setCh   chan int64
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{
		views: make(map[int64]*OrderView),
		setCh: make(chan int64, 16),
	}
}

func (f *fakeCacheRepo) GetOrder(ctx context.Context, orderID int64) (*OrderView, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.views[orderID], nil
}

func (f *fakeCacheRepo) SetOrder(ctx context.Context, view *OrderView) error {
	f.setCh <- view.ID
	return nil
}

func (f *fakeCacheRepo) DeleteOrders(ctx context.Context, ids []int64) error {
	f.deleted = append(f.deleted, ids)
	return nil
}

type fakePromotionRepo struct {
	promotions    map[int64]*domain.Promotion
	links         map[int64]int64 // promotionID -> число привязок
	deactivateErr map[int64]error
}

func newFakePromotionRepo() *fakePromotionRepo {
	return &fakePromotionRepo{
		promotions:    make(map[int64]*domain.Promotion),
		links:         make(map[int64]int64),
		deactivateErr: make(map[int64]error),
	}
}

func (f *fakePromotionRepo) ExpiredActive(ctx context.Context, before time.Time) ([]*domain.Promotion, error) {
	result := make([]*domain.Promotion, 0)
	for _, promotion := range f.promotions {
		if promotion.IsActive && promotion.EndDate.Before(before) {
			copied := *promotion
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (f *fakePromotionRepo) DeleteLinks(ctx context.Context, promotionID int64) (int64, error) {
	count := f.links[promotionID]
	delete(f.links, promotionID)
	return count, nil
}

func (f *fakePromotionRepo) Deactivate(ctx context.Context, promotionID int64) error {
	if err := f.deactivateErr[promotionID]; err != nil {
		return err
	}
	f.promotions[promotionID].IsActive = false
	return nil
}

type fakeMemberRepo struct {
	members   map[string]*domain.Member
	passwords map[int64]string
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{
		members:   make(map[string]*domain.Member),
		passwords: make(map[int64]string),
	}
}

func (f *fakeMemberRepo) GetByEmail(ctx context.Context, email string) (*domain.Member, error) {
	member, ok := f.members[email]
	if !ok {
		return nil, e.ErrMemberNotFound
	}
	return member, nil
}

func (f *fakeMemberRepo) UpdatePassword(ctx context.Context, memberID int64, passwordHash string) error {
	f.passwords[memberID] = passwordHash
	return nil
}

type fakeTokenRepo struct {
	tokens map[string]*domain.PasswordResetToken
	purged int64
	nextID int64
	delErr error
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]*domain.PasswordResetToken)}
}

func (f *fakeTokenRepo) Create(ctx context.Context, token *domain.PasswordResetToken) error {
	f.nextID++
	token.ID = f.nextID
	f.tokens[token.Token] = token
	return nil
}

func (f *fakeTokenRepo) Consume(ctx context.Context, token string) (*domain.PasswordResetToken, error) {
	record, ok := f.tokens[token]
	if !ok {
		return nil, e.ErrTokenNotFound
	}
	delete(f.tokens, token)
	return record, nil
}

func (f *fakeTokenRepo) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	if f.delErr != nil {
		return 0, f.delErr
	}
	var purged int64
	for key, token := range f.tokens {
		if token.ExpiresAt.Before(before) {
			delete(f.tokens, key)
			purged++
		}
	}
	f.purged += purged
	return purged, nil
}

type fakeNotifier struct {
	sent    []string
	sendErr error
}

func (f *fakeNotifier) SendPasswordReset(ctx context.Context, email, token string, expiresAt time.Time) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, fmt.Sprintf("%s:%s", email, token))
	return nil
}

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...any)            {}
func (nopLogger) Infof(format string, args ...any)             {}
func (nopLogger) Warnf(format string, args ...any)             {}
func (nopLogger) Errorf(err error, format string, args ...any) {}
