//go:generate goverter gen github.com/severnmarket/go-backend/internal/repository/redis/converter

package converter

import (
	"time"

	"github.com/severnmarket/go-backend/internal/usecase"
)

// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
// goverter:extend ConvertPointerInt64
type OrderViewConverter interface {
	ToRedisModel(entity *usecase.OrderView) *OrderRedisModel
	ToUseCase(model *OrderRedisModel) *usecase.OrderView
}

func ConvertPointerTime(t *time.Time) *time.Time {
	return t
}

func ConvertTime(t time.Time) time.Time {
	return t
}

func ConvertPointerInt64(v *int64) *int64 {
	return v
}
