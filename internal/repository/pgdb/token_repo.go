package pgdb

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/severnmarket/go-backend/internal/domain"
	"github.com/severnmarket/go-backend/pkg/e"
	"github.com/severnmarket/go-backend/pkg/tr"
)

// TokenRepo реализует хранилище одноразовых токенов сброса пароля.
type TokenRepo struct {
	pool *pgxpool.Pool
}

func NewTokenRepo(pool *pgxpool.Pool) *TokenRepo {
	return &TokenRepo{pool: pool}
}

func (t *TokenRepo) Create(ctx context.Context, token *domain.PasswordResetToken) error {
	q := tr.QuerierFromCtx(ctx, t.pool)

	query := `
		INSERT INTO password_reset_tokens (member_id, token, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id;
	`

	err := q.QueryRow(ctx, query,
		token.MemberID, token.Token, token.ExpiresAt, token.CreatedAt,
	).Scan(&token.ID)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Consume удаляет токен и возвращает его. DELETE RETURNING гарантирует,
// что из двух конкурентных подтверждений токен достанется ровно одному.
func (t *TokenRepo) Consume(ctx context.Context, token string) (*domain.PasswordResetToken, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		DELETE FROM password_reset_tokens
		WHERE token = $1
		RETURNING id, member_id, token, expires_at, created_at;
	`

	var record domain.PasswordResetToken
	err = tx.QueryRow(ctx, query, token).Scan(
		&record.ID, &record.MemberID, &record.Token, &record.ExpiresAt, &record.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrTokenNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &record, nil
}

// DeleteExpired удаляет просроченные токены и возвращает их число.
func (t *TokenRepo) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	result, err := t.pool.Exec(ctx, `DELETE FROM password_reset_tokens WHERE expires_at < $1`, before)
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return result.RowsAffected(), nil
}
