package pgdb

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/severnmarket/go-backend/internal/domain"
	"github.com/severnmarket/go-backend/pkg/e"
	"github.com/severnmarket/go-backend/pkg/tr"
)

// MemberRepo реализует репозиторий участников поверх PostgreSQL.
// Регистрация и выпуск токенов доступа живут во внешнем сервисе,
// здесь только чтение и смена пароля.
type MemberRepo struct {
	pool *pgxpool.Pool
}

func NewMemberRepo(pool *pgxpool.Pool) *MemberRepo {
	return &MemberRepo{pool: pool}
}

// GetByEmail возвращает участника или e.ErrMemberNotFound.
func (m *MemberRepo) GetByEmail(ctx context.Context, email string) (*domain.Member, error) {
	query := `
		SELECT id, email, password_hash, role, created_at
		FROM members
		WHERE email = $1
	`

	var member domain.Member
	err := m.pool.QueryRow(ctx, query, email).Scan(
		&member.ID, &member.Email, &member.PasswordHash, &member.Role, &member.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrMemberNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &member, nil
}

// UpdatePassword записывает новый хэш пароля.
func (m *MemberRepo) UpdatePassword(ctx context.Context, memberID int64, passwordHash string) error {
	q := tr.QuerierFromCtx(ctx, m.pool)

	result, err := q.Exec(ctx, `UPDATE members SET password_hash = $2 WHERE id = $1`, memberID, passwordHash)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if result.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrMemberNotFound)
	}

	return nil
}
