package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jimlawless/whereami"
	goredis "github.com/redis/go-redis/v9"
	"github.com/severnmarket/go-backend/internal/cfg"
	"github.com/severnmarket/go-backend/internal/repository/redis/converter"
	"github.com/severnmarket/go-backend/internal/usecase"
	"github.com/severnmarket/go-backend/pkg/clients"
	"github.com/severnmarket/go-backend/pkg/e"
	"github.com/severnmarket/go-backend/pkg/logger"
)

// CacheRepo кэширует витрины заказов. Позиции заказа неизменяемы после
// оформления, поэтому запись живёт до TTL либо до смены статуса,
// которая инвалидирует её явно.
type CacheRepo struct {
	client *clients.RedisClient
	conv   converter.OrderViewConverter
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCacheRepo(client *clients.RedisClient, conv converter.OrderViewConverter,
	cfg *cfg.RedisCfg, logger logger.Logger) *CacheRepo {
	return &CacheRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

// GetOrder возвращает закэшированную витрину заказа или (nil, nil) при промахе.
func (r *CacheRepo) GetOrder(ctx context.Context, orderID int64) (*usecase.OrderView, error) {
	data, err := r.client.Client.Get(ctx, r.orderKey(orderID)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var model converter.OrderRedisModel
	if err := json.Unmarshal(data, &model); err != nil {
		r.logger.Warnf("Redis unmarshal failed: %v", e.Wrap(whereami.WhereAmI(), err))
		if err := r.client.Client.Del(context.Background(), r.orderKey(orderID)).Err(); err != nil {
			r.logger.Warnf("Redis del failed: %v", e.Wrap(whereami.WhereAmI(), err))
		}
		return nil, nil
	}

	if model.ID != orderID {
		r.logger.Warnf("Cache ID mismatch: key_id: %d, model_id: %d", orderID, model.ID)
		if err := r.client.Client.Del(context.Background(), r.orderKey(orderID)).Err(); err != nil {
			r.logger.Warnf("Redis del failed: %v", e.Wrap(whereami.WhereAmI(), err))
		}
		return nil, nil
	}

	return r.conv.ToUseCase(&model), nil
}

// SetOrder кэширует витрину заказа с TTL из конфигурации.
func (r *CacheRepo) SetOrder(ctx context.Context, view *usecase.OrderView) error {
	model := r.conv.ToRedisModel(view)

	data, err := json.Marshal(model)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := r.client.Client.Set(ctx, r.orderKey(model.ID), data, r.cfg.OrderTTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// DeleteOrders удаляет заказы из кэша по ID.
func (r *CacheRepo) DeleteOrders(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.orderKey(id)
	}

	if err := r.client.Client.Del(ctx, keys...).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// orderKey возвращает Redis-ключ витрины заказа.
func (r *CacheRepo) orderKey(id int64) string {
	return fmt.Sprintf("order:%d", id)
}
