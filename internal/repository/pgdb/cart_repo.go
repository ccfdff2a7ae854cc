package pgdb

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/severnmarket/go-backend/internal/domain"
	"github.com/severnmarket/go-backend/internal/repository/pgdb/converter"
	"github.com/severnmarket/go-backend/internal/usecase"
	"github.com/severnmarket/go-backend/pkg/e"
	"github.com/severnmarket/go-backend/pkg/tr"
)

// CartRepo реализует репозиторий корзин поверх PostgreSQL.
type CartRepo struct {
	pool          *pgxpool.Pool
	productConv   converter.ProductConverter
	promotionConv converter.PromotionConverter
}

func NewCartRepo(pool *pgxpool.Pool, productConv converter.ProductConverter, promotionConv converter.PromotionConverter) *CartRepo {
	return &CartRepo{
		pool:          pool,
		productConv:   productConv,
		promotionConv: promotionConv,
	}
}

// GetOrCreate лениво создаёт корзину участника при первом обращении.
func (c *CartRepo) GetOrCreate(ctx context.Context, memberID int64) (*domain.Cart, error) {
	q := tr.QuerierFromCtx(ctx, c.pool)

	query := `
		WITH ins AS (
			INSERT INTO carts (member_id)
			VALUES ($1)
			ON CONFLICT (member_id) DO NOTHING
			RETURNING id, member_id, created_at
		)
		SELECT id, member_id, created_at FROM ins

		UNION ALL

		SELECT id, member_id, created_at
		FROM carts
		WHERE member_id = $1
		  AND NOT EXISTS (SELECT 1 FROM ins);
	`

	var cart domain.Cart
	err := q.QueryRow(ctx, query, memberID).Scan(&cart.ID, &cart.MemberID, &cart.CreatedAt)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &cart, nil
}

// LockForMember берёт блокировку строки корзины на время транзакции,
// создавая корзину при отсутствии. Сериализует конкурентные правки
// корзины одного участника.
func (c *CartRepo) LockForMember(ctx context.Context, memberID int64) (*domain.Cart, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	insert := `
		INSERT INTO carts (member_id)
		VALUES ($1)
		ON CONFLICT (member_id) DO NOTHING
	`
	if _, err := tx.Exec(ctx, insert, memberID); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		SELECT id, member_id, created_at
		FROM carts
		WHERE member_id = $1
		FOR UPDATE
	`

	var cart domain.Cart
	err = tx.QueryRow(ctx, query, memberID).Scan(&cart.ID, &cart.MemberID, &cart.CreatedAt)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &cart, nil
}

// LinesWithProducts возвращает строки корзины вместе с живыми данными товара
// и привязанной акции. Товар соединяется через LEFT JOIN: удалённая запись
// каталога даёт Product == nil, а не пропажу строки корзины.
func (c *CartRepo) LinesWithProducts(ctx context.Context, cartID int64) ([]usecase.CartLineData, error) {
	q := tr.QuerierFromCtx(ctx, c.pool)

	query := `
		SELECT
			ci.product_id, ci.quantity,
			p.id, p.name, p.price, p.inventory, p.status, p.created_at, p.updated_at,
			pm.id, pm.name, pm.kind, pm.value, pm.start_date, pm.end_date, pm.is_active, pm.created_at, pm.updated_at
		FROM cart_items ci
		LEFT JOIN products p ON p.id = ci.product_id
		LEFT JOIN promotion_products pp ON pp.product_id = ci.product_id
		LEFT JOIN promotions pm ON pm.id = pp.promotion_id
		WHERE ci.cart_id = $1
		ORDER BY ci.created_at, ci.id
	`

	rows, err := q.Query(ctx, query, cartID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]usecase.CartLineData, 0)
	for rows.Next() {
		var line usecase.CartLineData
		var (
			productID   sql.NullInt64
			productName sql.NullString
			price       sql.NullInt64
			inventory   sql.NullInt64
			status      sql.NullString
			pCreatedAt  sql.NullTime
			pUpdatedAt  sql.NullTime

			promoID        sql.NullInt64
			promoName      sql.NullString
			promoKind      sql.NullString
			promoValue     sql.NullInt64
			promoStart     sql.NullTime
			promoEnd       sql.NullTime
			promoIsActive  sql.NullBool
			promoCreatedAt sql.NullTime
			promoUpdatedAt sql.NullTime
		)

		err := rows.Scan(
			&line.ProductID, &line.Quantity,
			&productID, &productName, &price, &inventory, &status, &pCreatedAt, &pUpdatedAt,
			&promoID, &promoName, &promoKind, &promoValue, &promoStart, &promoEnd,
			&promoIsActive, &promoCreatedAt, &promoUpdatedAt,
		)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		if productID.Valid {
			model := converter.ProductModel{
				ID:        productID.Int64,
				Name:      productName.String,
				Price:     price.Int64,
				Inventory: inventory.Int64,
				Status:    status.String,
				CreatedAt: pCreatedAt.Time,
			}
			if pUpdatedAt.Valid {
				model.UpdatedAt = &pUpdatedAt.Time
			}
			line.Product = c.productConv.ToEntity(&model)
		}

		if promoID.Valid {
			model := converter.PromotionModel{
				ID:        promoID.Int64,
				Name:      promoName.String,
				Kind:      promoKind.String,
				Value:     promoValue.Int64,
				StartDate: promoStart.Time,
				EndDate:   promoEnd.Time,
				IsActive:  promoIsActive.Bool,
				CreatedAt: promoCreatedAt.Time,
			}
			if promoUpdatedAt.Valid {
				model.UpdatedAt = &promoUpdatedAt.Time
			}
			line.Link = &domain.PromotionLink{
				PromotionID: promoID.Int64,
				ProductID:   line.ProductID,
				Promotion:   c.promotionConv.ToEntity(&model),
			}
		}

		result = append(result, line)
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

// GetItem возвращает позицию корзины или (nil, nil), если её нет.
func (c *CartRepo) GetItem(ctx context.Context, cartID, productID int64) (*domain.CartItem, error) {
	q := tr.QuerierFromCtx(ctx, c.pool)

	query := `
		SELECT id, cart_id, product_id, quantity, created_at, updated_at
		FROM cart_items
		WHERE cart_id = $1 AND product_id = $2
	`

	var item domain.CartItem
	err := q.QueryRow(ctx, query, cartID, productID).Scan(
		&item.ID, &item.CartID, &item.ProductID, &item.Quantity,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &item, nil
}

// UpsertItemAdd вставляет позицию или прибавляет количество к существующей.
func (c *CartRepo) UpsertItemAdd(ctx context.Context, cartID, productID, quantity int64) error {
	q := tr.QuerierFromCtx(ctx, c.pool)

	query := `
		INSERT INTO cart_items (cart_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET
			quantity = cart_items.quantity + EXCLUDED.quantity,
			updated_at = NOW()
	`

	if _, err := q.Exec(ctx, query, cartID, productID, quantity); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// SetItemQuantity перезаписывает количество существующей позиции.
func (c *CartRepo) SetItemQuantity(ctx context.Context, cartID, productID, quantity int64) error {
	q := tr.QuerierFromCtx(ctx, c.pool)

	query := `
		UPDATE cart_items
		SET quantity = $3, updated_at = NOW()
		WHERE cart_id = $1 AND product_id = $2
	`

	result, err := q.Exec(ctx, query, cartID, productID, quantity)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if result.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrCartItemNotFound)
	}

	return nil
}

// DeleteItem удаляет позицию. Отсутствие позиции не считается ошибкой.
func (c *CartRepo) DeleteItem(ctx context.Context, cartID, productID int64) error {
	q := tr.QuerierFromCtx(ctx, c.pool)

	if _, err := q.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1 AND product_id = $2`, cartID, productID); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Clear удаляет все позиции корзины, сама корзина остаётся.
func (c *CartRepo) Clear(ctx context.Context, cartID int64) error {
	q := tr.QuerierFromCtx(ctx, c.pool)

	if _, err := q.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
