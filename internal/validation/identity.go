package validation

import (
	"fmt"
	"regexp"
)

// UsernamePattern определяет допустимый формат username консоли:
// латинские буквы, цифры, '_', '.', '-'; первый символ буква или цифра.
var UsernamePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.\-]*$`)

// PermissionPattern - формат permission: сегменты через ':' (например, "job:run", "admin")
var PermissionPattern = regexp.MustCompile(`^[a-z0-9_\-*]+(:[a-z0-9_\-*]+)*$`)

const (
	// MinUsernameLen минимальная длина username
	MinUsernameLen = 3
	// MaxUsernameLen максимальная длина username
	MaxUsernameLen = 64
	// MinPasswordLen минимальная длина пароля
	MinPasswordLen = 8
	// MaxPermissionLen максимальная длина permission
	MaxPermissionLen = 128
)

// ValidateUsername проверяет, что username соответствует требованиям
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}

	if len(username) < MinUsernameLen {
		return fmt.Errorf("username must be at least %d characters long", MinUsernameLen)
	}

	if len(username) > MaxUsernameLen {
		return fmt.Errorf("username must not exceed %d characters", MaxUsernameLen)
	}

	if !UsernamePattern.MatchString(username) {
		return fmt.Errorf("username can only contain letters, numbers, '_', '.' and '-' and must start with a letter or number")
	}

	return nil
}

// ValidatePassword проверяет минимальные требования к паролю
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLen)
	}

	return nil
}

// ValidatePermission проверяет формат строки permission
func ValidatePermission(permission string) error {
	if permission == "" {
		return fmt.Errorf("permission cannot be empty")
	}

	if len(permission) > MaxPermissionLen {
		return fmt.Errorf("permission must not exceed %d characters", MaxPermissionLen)
	}

	if !PermissionPattern.MatchString(permission) {
		return fmt.Errorf("permission must be lowercase segments separated by ':'")
	}

	return nil
}
