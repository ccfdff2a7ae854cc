package usecase

import (
	"context"
	"time"

	"github.com/severnmarket/go-backend/internal/domain"
)

type ProductRepository interface {
	// GetByID возвращает (nil, nil), если товара нет.
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	// AdjustInventory атомарно применяет дельту к остатку одним условным
	// UPDATE на стороне хранилища. Возвращает e.ErrInsufficientInventory,
	// если дельта увела бы остаток в минус.
	AdjustInventory(ctx context.Context, id int64, delta int64) error
}

type PromotionRepository interface {
	// ExpiredActive возвращает активные акции с endDate < before.
	ExpiredActive(ctx context.Context, before time.Time) ([]*domain.Promotion, error)
	DeleteLinks(ctx context.Context, promotionID int64) (int64, error)
	Deactivate(ctx context.Context, promotionID int64) error
}

type CartRepository interface {
	// GetOrCreate лениво создаёт корзину участника при первом обращении.
	GetOrCreate(ctx context.Context, memberID int64) (*domain.Cart, error)
	// LockForMember берёт блокировку строки корзины (FOR UPDATE), создавая её
	// при отсутствии. Вызывается только внутри транзакции и сериализует
	// конкурентные правки корзины одного участника.
	LockForMember(ctx context.Context, memberID int64) (*domain.Cart, error)
	// LinesWithProducts возвращает строки корзины вместе с живыми данными
	// товара и привязанной акции. Product == nil, если товар удалён.
	LinesWithProducts(ctx context.Context, cartID int64) ([]CartLineData, error)
	// GetItem возвращает (nil, nil), если позиции нет.
	GetItem(ctx context.Context, cartID, productID int64) (*domain.CartItem, error)
	// UpsertItemAdd вставляет позицию или прибавляет количество к существующей.
	UpsertItemAdd(ctx context.Context, cartID, productID, quantity int64) error
	SetItemQuantity(ctx context.Context, cartID, productID, quantity int64) error
	// DeleteItem идемпотентен: отсутствие позиции не считается ошибкой.
	DeleteItem(ctx context.Context, cartID, productID int64) error
	Clear(ctx context.Context, cartID int64) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order, items []domain.OrderItem) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	// GetForUpdate блокирует строку заказа на время транзакции перехода статуса.
	GetForUpdate(ctx context.Context, id int64) (*domain.Order, error)
	ListByMember(ctx context.Context, memberID int64) ([]*domain.Order, error)
	ListAll(ctx context.Context) ([]*domain.Order, error)
	Items(ctx context.Context, orderID int64) ([]domain.OrderItem, error)
	// SetStatus записывает статус и проставляет соответствующую метку времени.
	SetStatus(ctx context.Context, id int64, status domain.OrderStatus, stampedAt time.Time) error
}

type MemberRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.Member, error)
	UpdatePassword(ctx context.Context, memberID int64, passwordHash string) error
}

type TokenRepository interface {
	Create(ctx context.Context, token *domain.PasswordResetToken) error
	// Consume удаляет токен и возвращает его (одноразовое использование).
	// Возвращает e.ErrTokenNotFound, если токена нет.
	Consume(ctx context.Context, token string) (*domain.PasswordResetToken, error)
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) error
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
}

type CacheRepository interface {
	// GetOrder возвращает (nil, nil) при промахе кэша.
	GetOrder(ctx context.Context, orderID int64) (*OrderView, error)
	SetOrder(ctx context.Context, view *OrderView) error
	DeleteOrders(ctx context.Context, ids []int64) error
}
