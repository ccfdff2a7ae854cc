package domain

import "time"

// Role — роль участника.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// Member описывает участника. Аутентификация и выпуск токенов —
// зона ответственности внешнего сервиса; здесь хранится только то,
// что нужно ядру (сброс пароля, принадлежность корзин и заказов).
type Member struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}
