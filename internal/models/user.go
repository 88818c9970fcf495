package models

import "time"

// UserStatus состояние учетной записи пользователя консоли
type UserStatus string

const (
	// UserStatusActive пользователь может входить в консоль и пользоваться API токенами
	UserStatusActive UserStatus = "active"
	// UserStatusLocked пользователь заблокирован, никакие токены не принимаются
	UserStatusLocked UserStatus = "locked"
)

// User представляет пользователя консоли
type User struct {
	CreatedAt    time.Time  `json:"created_at"`    // время создания
	UpdatedAt    time.Time  `json:"updated_at"`    // время последнего обновления
	ID           string     `json:"id"`            // UUID пользователя
	Username     string     `json:"username"`      // уникальный username
	PasswordHash string     `json:"-"`             // bcrypt хеш пароля, он же ключ подписи токенов
	Status       UserStatus `json:"status"`        // active / locked
}

// IsLocked reports whether the account is blocked.
func (u *User) IsLocked() bool {
	return u.Status == UserStatusLocked
}

// Role представляет роль с набором строковых прав (например "app:view")
type Role struct {
	CreatedAt   time.Time `json:"created_at"`
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Permissions []string  `json:"permissions"`
}
