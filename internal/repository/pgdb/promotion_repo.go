package pgdb

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/severnmarket/go-backend/internal/domain"
	"github.com/severnmarket/go-backend/internal/repository/pgdb/converter"
	"github.com/severnmarket/go-backend/pkg/e"
	"github.com/severnmarket/go-backend/pkg/tr"
)

// PromotionRepo реализует репозиторий акций поверх PostgreSQL.
type PromotionRepo struct {
	pool *pgxpool.Pool
	conv converter.PromotionConverter
}

func NewPromotionRepo(pool *pgxpool.Pool, conv converter.PromotionConverter) *PromotionRepo {
	return &PromotionRepo{
		pool: pool,
		conv: conv,
	}
}

// ExpiredActive возвращает активные акции, чей период уже закончился.
func (p *PromotionRepo) ExpiredActive(ctx context.Context, before time.Time) ([]*domain.Promotion, error) {
	query := `
		SELECT id, name, kind, value, start_date, end_date, is_active, created_at, updated_at
		FROM promotions
		WHERE is_active = true AND end_date < $1
		ORDER BY end_date
	`

	rows, err := p.pool.Query(ctx, query, before)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]*domain.Promotion, 0)
	for rows.Next() {
		var model converter.PromotionModel
		err := rows.Scan(
			&model.ID, &model.Name, &model.Kind, &model.Value,
			&model.StartDate, &model.EndDate, &model.IsActive,
			&model.CreatedAt, &model.UpdatedAt,
		)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, p.conv.ToEntity(&model))
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

// DeleteLinks удаляет привязки акции к товарам и возвращает их число.
func (p *PromotionRepo) DeleteLinks(ctx context.Context, promotionID int64) (int64, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM promotion_products WHERE promotion_id = $1`, promotionID)
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return result.RowsAffected(), nil
}

// Deactivate гасит флаг активности акции. Повторный вызов безвреден.
func (p *PromotionRepo) Deactivate(ctx context.Context, promotionID int64) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		UPDATE promotions
		SET is_active = false, updated_at = NOW()
		WHERE id = $1
	`

	if _, err := tx.Exec(ctx, query, promotionID); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
