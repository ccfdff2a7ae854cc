package usecase

import (
	"context"
	"fmt"
	"time"

	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/severnmarket/go-backend/internal/domain"
	"github.com/severnmarket/go-backend/pkg/e"
	"github.com/severnmarket/go-backend/pkg/logger"
)

// CartUseCase реализует бизнес-логику корзины участника.
// Все мутации выполняются в транзакции под блокировкой строки корзины,
// чтобы конкурентные правки одного участника не теряли обновления.
type CartUseCase struct {
	cartRepo    CartRepository
	productRepo ProductRepository
	dbPool      transaction.Transactional
	logger      logger.Logger
	now         func() time.Time
}

func NewCartUC(
	cartRepo CartRepository,
	productRepo ProductRepository,
	dbPool transaction.Transactional,
	logger logger.Logger,
) *CartUseCase {
	return &CartUseCase{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		dbPool:      dbPool,
		logger:      logger,
		now:         time.Now,
	}
}

// GetCart возвращает ценёную витрину корзины, лениво создавая корзину
// при первом обращении. Строки с удалёнными товарами в витрину не попадают —
// о них сообщает CheckCart.
func (c *CartUseCase) GetCart(ctx context.Context, memberID int64) (*GetCartRes, error) {
	const op = "CartUseCase.GetCart"

	cart, err := c.cartRepo.GetOrCreate(ctx, memberID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	lines, err := c.cartRepo.LinesWithProducts(ctx, cart.ID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	now := c.now()
	res := &GetCartRes{Lines: make([]CartLine, 0, len(lines))}
	for _, line := range lines {
		if line.Product == nil {
			c.logger.Warnf("cart %d references missing product %d", cart.ID, line.ProductID)
			continue
		}

		price, discount := domain.EffectivePrice(line.Product, line.Link, now)
		charged := price
		if discount != nil {
			charged = *discount
		}

		res.Lines = append(res.Lines, CartLine{
			ProductID:     line.ProductID,
			Name:          line.Product.Name,
			Quantity:      line.Quantity,
			Price:         price,
			DiscountPrice: discount,
			Subtotal:      charged * line.Quantity,
		})
		res.Total += charged * line.Quantity
	}

	return res, nil
}

// AddItem добавляет товар в корзину либо увеличивает количество существующей
// позиции. Недоступный товар и превышение живого остатка отклоняются.
func (c *CartUseCase) AddItem(ctx context.Context, req *AddItemReq) error {
	const op = "CartUseCase.AddItem"

	if req.Quantity < 1 {
		return e.Wrap(op, e.ErrQuantityMustBePositive)
	}

	return c.inCartTx(ctx, op, req.MemberID, func(ctx context.Context, cart *domain.Cart) error {
		product, err := c.productRepo.GetByID(ctx, req.ProductID)
		if err != nil {
			return err
		}
		if !product.Purchasable() {
			return e.ErrProductUnavailable
		}

		var existing int64
		if item, err := c.cartRepo.GetItem(ctx, cart.ID, req.ProductID); err != nil {
			return err
		} else if item != nil {
			existing = item.Quantity
		}

		if existing+req.Quantity > product.Inventory {
			return e.ErrInsufficientInventory
		}

		return c.cartRepo.UpsertItemAdd(ctx, cart.ID, req.ProductID, req.Quantity)
	})
}

// SetQuantity безусловно перезаписывает количество позиции.
// Остаток здесь не проверяется — итоговая проверка происходит при оформлении.
func (c *CartUseCase) SetQuantity(ctx context.Context, req *SetQuantityReq) error {
	const op = "CartUseCase.SetQuantity"

	if req.Quantity < 1 {
		return e.Wrap(op, e.ErrQuantityMustBePositive)
	}

	return c.inCartTx(ctx, op, req.MemberID, func(ctx context.Context, cart *domain.Cart) error {
		item, err := c.cartRepo.GetItem(ctx, cart.ID, req.ProductID)
		if err != nil {
			return err
		}
		if item == nil {
			return e.ErrCartItemNotFound
		}

		return c.cartRepo.SetItemQuantity(ctx, cart.ID, req.ProductID, req.Quantity)
	})
}

// RemoveItem удаляет позицию. Отсутствие позиции не считается ошибкой.
func (c *CartUseCase) RemoveItem(ctx context.Context, req *RemoveItemReq) error {
	const op = "CartUseCase.RemoveItem"

	return c.inCartTx(ctx, op, req.MemberID, func(ctx context.Context, cart *domain.Cart) error {
		return c.cartRepo.DeleteItem(ctx, cart.ID, req.ProductID)
	})
}

// MergeGuestCart переносит строки анонимной корзины в корзину участника
// при входе: совпадающие позиции суммируются, новые вставляются.
// Строки с недоступными товарами пропускаются с записью в лог.
func (c *CartUseCase) MergeGuestCart(ctx context.Context, req *MergeGuestCartReq) error {
	const op = "CartUseCase.MergeGuestCart"

	return c.inCartTx(ctx, op, req.MemberID, func(ctx context.Context, cart *domain.Cart) error {
		for _, line := range req.Lines {
			if line.Quantity < 1 {
				c.logger.Warnf("guest cart line for product %d has quantity %d, skipping", line.ProductID, line.Quantity)
				continue
			}

			product, err := c.productRepo.GetByID(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if !product.Purchasable() {
				c.logger.Warnf("guest cart references unavailable product %d, skipping", line.ProductID)
				continue
			}

			if err := c.cartRepo.UpsertItemAdd(ctx, cart.ID, line.ProductID, line.Quantity); err != nil {
				return err
			}
		}

		return nil
	})
}

// CheckCart выполняет проверку корзины без изменения состояния и возвращает
// по одному сообщению на каждую строку, мешающую оформлению заказа.
func (c *CartUseCase) CheckCart(ctx context.Context, memberID int64) (*CheckCartRes, error) {
	const op = "CartUseCase.CheckCart"

	cart, err := c.cartRepo.GetOrCreate(ctx, memberID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	lines, err := c.cartRepo.LinesWithProducts(ctx, cart.ID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	res := &CheckCartRes{Violations: make([]string, 0)}
	for _, line := range lines {
		switch {
		case line.Product == nil:
			res.Violations = append(res.Violations, fmt.Sprintf("product %d no longer exists", line.ProductID))
		case line.Product.Status != domain.ProductListed:
			res.Violations = append(res.Violations, fmt.Sprintf("product %q is no longer available", line.Product.Name))
		case line.Quantity > line.Product.Inventory:
			res.Violations = append(res.Violations,
				fmt.Sprintf("only %d of %q left in stock, %d requested", line.Product.Inventory, line.Product.Name, line.Quantity))
		}
	}

	return res, nil
}

// inCartTx выполняет fn в транзакции под блокировкой строки корзины участника.
func (c *CartUseCase) inCartTx(ctx context.Context, op string, memberID int64, fn func(ctx context.Context, cart *domain.Cart) error) error {
	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, c.dbPool)
	if err != nil {
		return e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	cart, err := c.cartRepo.LockForMember(ctx, memberID)
	if err != nil {
		return e.Wrap(op, err)
	}

	if err = fn(ctx, cart); err != nil {
		return e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}
