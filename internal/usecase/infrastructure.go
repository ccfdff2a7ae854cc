package usecase

import (
	"context"
	"time"

	"github.com/severnmarket/go-backend/internal/domain"
)

// Identity — личность участника, подтверждённая внешним сервисом токенов.
type Identity struct {
	MemberID int64
	Role     domain.Role
}

// TokenIssuer — внешний сервис аутентификации. Ядро доверяет личности,
// которую он вернул.
type TokenIssuer interface {
	Validate(ctx context.Context, token string) (*Identity, error)
}

// Notifier — внешняя доставка почты, fire-and-forget.
type Notifier interface {
	SendPasswordReset(ctx context.Context, email, token string, expiresAt time.Time) error
}

type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}
