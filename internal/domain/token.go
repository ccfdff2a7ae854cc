package domain

import "time"

// PasswordResetToken — одноразовый токен сброса пароля.
// Уничтожается при использовании либо ночной уборкой по истечении срока.
type PasswordResetToken struct {
	ID        int64
	MemberID  int64
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// ExpiredAt сообщает, истёк ли токен на момент now.
func (t *PasswordResetToken) ExpiredAt(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
