package usecase

import (
	"context"
	"errors"
	"time"

	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/severnmarket/go-backend/internal/domain"
	"github.com/severnmarket/go-backend/pkg/e"
	"github.com/severnmarket/go-backend/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// AuthUseCase реализует сброс пароля. Выпуск и проверка обычных токенов
// доступа — зона внешнего сервиса; здесь только одноразовые токены сброса.
type AuthUseCase struct {
	memberRepo MemberRepository
	tokenRepo  TokenRepository
	notifier   Notifier
	dbPool     transaction.Transactional
	logger     logger.Logger
	tokenTTL   time.Duration
	now        func() time.Time
}

func NewAuthUC(
	memberRepo MemberRepository,
	tokenRepo TokenRepository,
	notifier Notifier,
	dbPool transaction.Transactional,
	logger logger.Logger,
	tokenTTL time.Duration,
) *AuthUseCase {
	return &AuthUseCase{
		memberRepo: memberRepo,
		tokenRepo:  tokenRepo,
		notifier:   notifier,
		dbPool:     dbPool,
		logger:     logger,
		tokenTTL:   tokenTTL,
		now:        time.Now,
	}
}

// RequestPasswordReset выпускает одноразовый токен и передаёт его во внешнюю
// доставку почты. Для неизвестного email отвечает успехом, чтобы не
// раскрывать существование аккаунта.
func (a *AuthUseCase) RequestPasswordReset(ctx context.Context, req *RequestPasswordResetReq) error {
	const op = "AuthUseCase.RequestPasswordReset"

	if req.Email == "" {
		return e.Wrap(op, e.ErrEmailRequired)
	}

	member, err := a.memberRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, e.ErrMemberNotFound) {
			a.logger.Infof("password reset requested for unknown email")
			return nil
		}
		return e.Wrap(op, err)
	}

	token := &domain.PasswordResetToken{
		MemberID:  member.ID,
		Token:     uuid.NewString(),
		ExpiresAt: a.now().Add(a.tokenTTL),
		CreatedAt: a.now(),
	}

	if err := a.tokenRepo.Create(ctx, token); err != nil {
		return e.Wrap(op, err)
	}

	// Доставка почты fire-and-forget: сбой не отменяет созданный токен.
	if err := a.notifier.SendPasswordReset(ctx, member.Email, token.Token, token.ExpiresAt); err != nil {
		a.logger.Warnf("failed to dispatch password reset email: %v", e.Wrap(op, err))
	}

	return nil
}

// ConfirmPasswordReset одноразово потребляет токен и устанавливает новый
// пароль. Потребление токена и смена пароля атомарны.
func (a *AuthUseCase) ConfirmPasswordReset(ctx context.Context, req *ConfirmPasswordResetReq) error {
	const op = "AuthUseCase.ConfirmPasswordReset"

	if len(req.NewPassword) < minPasswordLength {
		return e.Wrap(op, e.ErrPasswordTooShort)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return e.Wrap(op, err)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, a.dbPool)
	if err != nil {
		return e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	token, err := a.tokenRepo.Consume(ctx, req.Token)
	if err != nil {
		return e.Wrap(op, err)
	}
	if token.ExpiredAt(a.now()) {
		// Токен уже удалён потреблением; просроченный считается невалидным.
		err = e.ErrTokenNotFound
		return e.Wrap(op, err)
	}

	if err = a.memberRepo.UpdatePassword(ctx, token.MemberID, string(hash)); err != nil {
		return e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}
