package pgdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/severnmarket/go-backend/internal/domain"
	"github.com/severnmarket/go-backend/internal/repository/pgdb/converter"
	"github.com/severnmarket/go-backend/pkg/e"
	"github.com/severnmarket/go-backend/pkg/tr"
)

const orderColumns = `
	id, member_id, recipient_name, recipient_phone, recipient_address, notes,
	total, status, order_created_at, order_confirmed_at, order_shipped_at,
	order_delivered_at, order_canceled_at
`

// Колонка метки времени для каждого принимаемого статуса. При повторной
// установке того же статуса метка перезаписывается заново.
var statusStampColumns = map[domain.OrderStatus]string{
	domain.OrderConfirmed: "order_confirmed_at",
	domain.OrderShipped:   "order_shipped_at",
	domain.OrderDelivered: "order_delivered_at",
	domain.OrderCanceled:  "order_canceled_at",
}

// OrderRepo реализует репозиторий заказов поверх PostgreSQL.
type OrderRepo struct {
	pool *pgxpool.Pool
	conv converter.OrderConverter
}

func NewOrderRepo(pool *pgxpool.Pool, conv converter.OrderConverter) *OrderRepo {
	return &OrderRepo{
		pool: pool,
		conv: conv,
	}
}

// Create вставляет заказ вместе со снимками позиций. Вызывается только
// внутри транзакции оформления.
func (o *OrderRepo) Create(ctx context.Context, order *domain.Order, items []domain.OrderItem) (*domain.Order, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model := o.conv.ToModel(order)
	insertOrder := `
		INSERT INTO orders (
			member_id,
			recipient_name,
			recipient_phone,
			recipient_address,
			notes,
			total,
			status,
			order_created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, order_created_at;
	`

	err = tx.QueryRow(ctx, insertOrder,
		model.MemberID,
		model.RecipientName,
		model.RecipientPhone,
		model.RecipientAddress,
		model.Notes,
		model.Total,
		model.Status,
		model.CreatedAt,
	).Scan(&model.ID, &model.CreatedAt)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	insertItem := `
		INSERT INTO order_items (
			order_id, product_id, product_name, quantity, price, discount_price
		) VALUES ($1, $2, $3, $4, $5, $6)
	`

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(insertItem,
			model.ID, item.ProductID, item.ProductName,
			item.Quantity, item.Price, item.DiscountPrice,
		)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return o.conv.ToEntity(model), nil
}

// GetByID возвращает заказ или e.ErrOrderNotFound.
func (o *OrderRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	q := tr.QuerierFromCtx(ctx, o.pool)

	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	model, err := o.scanOne(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrOrderNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return o.conv.ToEntity(model), nil
}

// GetForUpdate блокирует строку заказа на время транзакции перехода статуса.
func (o *OrderRepo) GetForUpdate(ctx context.Context, id int64) (*domain.Order, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 FOR UPDATE`

	model, err := o.scanOne(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrOrderNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return o.conv.ToEntity(model), nil
}

// ListByMember возвращает заказы участника, новые первыми.
func (o *OrderRepo) ListByMember(ctx context.Context, memberID int64) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE member_id = $1 ORDER BY order_created_at DESC`

	rows, err := o.pool.Query(ctx, query, memberID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models, err := o.scanAll(rows)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return o.conv.ToArrEntity(models), nil
}

// ListAll возвращает все заказы, новые первыми. Только для администратора.
func (o *OrderRepo) ListAll(ctx context.Context) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY order_created_at DESC`

	rows, err := o.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models, err := o.scanAll(rows)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return o.conv.ToArrEntity(models), nil
}

// Items возвращает снимки позиций заказа.
func (o *OrderRepo) Items(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	q := tr.QuerierFromCtx(ctx, o.pool)

	query := `
		SELECT id, order_id, product_id, product_name, quantity, price, discount_price
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := q.Query(ctx, query, orderID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.OrderItem, 0)
	for rows.Next() {
		var item domain.OrderItem
		err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.Price, &item.DiscountPrice,
		)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

// SetStatus записывает статус и проставляет соответствующую метку времени.
func (o *OrderRepo) SetStatus(ctx context.Context, id int64, status domain.OrderStatus, stampedAt time.Time) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	column, ok := statusStampColumns[status]
	if !ok {
		return e.Wrap(whereami.WhereAmI(), e.ErrInvalidStatus)
	}

	query := fmt.Sprintf(`UPDATE orders SET status = $1, %s = $2 WHERE id = $3`, column)

	result, err := tx.Exec(ctx, query, string(status), stampedAt, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if result.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrOrderNotFound)
	}

	return nil
}

func (o *OrderRepo) scanOne(row pgx.Row) (*converter.OrderModel, error) {
	var model converter.OrderModel
	err := row.Scan(
		&model.ID, &model.MemberID, &model.RecipientName, &model.RecipientPhone,
		&model.RecipientAddress, &model.Notes, &model.Total, &model.Status,
		&model.CreatedAt, &model.ConfirmedAt, &model.ShippedAt,
		&model.DeliveredAt, &model.CanceledAt,
	)
	if err != nil {
		return nil, err
	}

	return &model, nil
}

func (o *OrderRepo) scanAll(rows pgx.Rows) ([]*converter.OrderModel, error) {
	models := make([]*converter.OrderModel, 0)
	for rows.Next() {
		model, err := o.scanOne(rows)
		if err != nil {
			return nil, err
		}
		models = append(models, model)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return models, nil
}
