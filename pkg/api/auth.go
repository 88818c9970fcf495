package api

// MeResponse представляет сведения об аутентифицированном пользователе
type MeResponse struct {
	UserID      string   `json:"user_id"`      // UUID пользователя
	Username    string   `json:"username"`     // username
	AuthMethod  string   `json:"auth_method"`  // password или api_token
	Permissions []string `json:"permissions"`  // отсортированный список прав
	IsAPIToken  bool     `json:"is_api_token"` // неинтерактивная API сессия
}

// PermissionCheckResponse ответ на проверку одного права
type PermissionCheckResponse struct {
	Permission string `json:"permission"`
	Granted    bool   `json:"granted"`
}

// HealthResponse представляет ответ health check
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}

// AccessTokenInfo описывает зарегистрированный API токен (без самого токена)
type AccessTokenInfo struct {
	CreatedAt   string  `json:"created_at"`           // RFC3339
	ExpiresAt   *string `json:"expires_at,omitempty"` // RFC3339, nil = бессрочный
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
}

// AccessTokensResponse список API токенов пользователя
type AccessTokensResponse struct {
	Tokens []AccessTokenInfo `json:"tokens"`
}
