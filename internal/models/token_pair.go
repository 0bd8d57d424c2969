package models

import "time"

// TokenPair — пара токенов, выдаваемая при аутентификации/регистрации.
//
// Описание:
//   - AccessToken — короткоживущий JWT для доступа к API, несёт клеймы ролей;
//   - RefreshToken — долгоживущий JWT, подписанный отдельным секретом;
//     единственное его назначение — выпуск нового access-токена;
//   - AccessExpiresAt — момент истечения access-токена (UTC).
type TokenPair struct {
	// AccessToken — JWT для авторизации запросов.
	AccessToken string
	// RefreshToken — JWT для обновления access-токена.
	RefreshToken string
	// AccessExpiresAt — время истечения действия access-токена (UTC).
	AccessExpiresAt time.Time
}

// AccessToken — результат refresh-операции: новый access-токен без
// перевыпуска refresh-токена (одна сессия — один refresh-токен на весь срок).
type AccessToken struct {
	Token     string
	ExpiresAt time.Time
}
