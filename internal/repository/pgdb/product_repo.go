package pgdb

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/severnmarket/go-backend/internal/domain"
	"github.com/severnmarket/go-backend/internal/repository/pgdb/converter"
	"github.com/severnmarket/go-backend/pkg/e"
	"github.com/severnmarket/go-backend/pkg/tr"
)

// ProductRepo реализует репозиторий товаров поверх PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

// GetByID возвращает товар или (nil, nil), если такого нет. Внутри
// транзакции читает через её соединение.
func (p *ProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	q := tr.QuerierFromCtx(ctx, p.pool)

	query := `
		SELECT id, name, price, inventory, status, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	var model converter.ProductModel
	err := q.QueryRow(ctx, query, id).Scan(
		&model.ID, &model.Name, &model.Price, &model.Inventory,
		&model.Status, &model.CreatedAt, &model.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

// AdjustInventory атомарно применяет дельту к остатку одним условным UPDATE.
// Условие inventory + delta >= 0 гарантирует, что два конкурентных списания
// не уведут остаток в минус: проигравший получает пустой результат.
func (p *ProductRepo) AdjustInventory(ctx context.Context, id int64, delta int64) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		UPDATE products
		SET inventory = inventory + $2, updated_at = NOW()
		WHERE id = $1 AND inventory + $2 >= 0
	`

	result, err := tx.Exec(ctx, query, id, delta)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if result.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrInsufficientInventory)
	}

	return nil
}
