// service содержит бизнес-логику account-сервиса:
// регистрацию/аутентификацию пользователей, выпуск/проверку токенов,
// управление учётными записями и ролями, восстановление пароля.
//
// Основные аспекты:
//   - Пакет не хранит состояние запроса внутри Service; экземпляр Service
//     безопасен для конкурентного использования из разных горутин при условии,
//     что переданное хранилище (storage.Storage) потокобезопасно.
//     Конфигурация (секреты подписи, cost-фактор) читается один раз на старте
//     и после этого не меняется.
//   - Ошибки возвращаются сентинелами и далее маппятся
//     HTTP-слоем на статусы (см. комментарии к переменным ошибок ниже).
package service

import (
	"errors"

	"github.com/pribylovaa/account-service/internal/config"
	"github.com/pribylovaa/account-service/internal/limiter"
	"github.com/pribylovaa/account-service/internal/mail"
	"github.com/pribylovaa/account-service/internal/storage"
)

var (
	// ErrInvalidCredentials — пара логин/пароль неверна или пользователь не найден.
	// Намеренно не различает эти случаи, чтобы не допускать перебор учёток.
	// Транспорт: HTTP 401.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken — токен (access/refresh/recovery) некорректен по
	// формату/подписи или просрочен. Конкретная причина пишется только в лог;
	// наружу все случаи схлопываются в один вид. Транспорт: HTTP 401.
	ErrInvalidToken = errors.New("invalid token")

	// ErrUserNotFound — субъект валидного токена больше не существует
	// (например, учётка удалена между выпуском и предъявлением).
	// Транспорт: HTTP 404.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserBlocked — учётная запись заблокирована, вход запрещён.
	// Транспорт: HTTP 403.
	ErrUserBlocked = errors.New("user is blocked")

	// ErrEmailTaken — e-mail уже занят другим пользователем.
	// Транспорт: HTTP 409.
	ErrEmailTaken = errors.New("email already taken")

	// ErrRoleTaken — имя роли уже занято. Транспорт: HTTP 409.
	ErrRoleTaken = errors.New("role name already taken")

	// ErrNotFound — пользователь/роль не найдены в CRUD-операциях.
	// Транспорт: HTTP 404.
	ErrNotFound = errors.New("not found")

	// ErrInvalidEmail — e-mail имеет некорректный формат.
	// Транспорт: HTTP 400.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrWeakPassword — пароль не удовлетворяет политикам сложности.
	// Транспорт: HTTP 400.
	ErrWeakPassword = errors.New("password is too weak")

	// ErrEmptyPassword — пароль пустой. Транспорт: HTTP 400.
	ErrEmptyPassword = errors.New("password is empty")

	// ErrInvalidArgument — прочие некорректные входные данные.
	// Транспорт: HTTP 400.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrTooManyAttempts — превышен лимит неудачных попыток входа.
	// Транспорт: HTTP 429.
	ErrTooManyAttempts = errors.New("too many login attempts")

	// ErrMailUnavailable — отправка почты не сконфигурирована или не удалась.
	// Транспорт: HTTP 500.
	ErrMailUnavailable = errors.New("mail is unavailable")
)

// Service описывает бизнес-логику account-сервиса.
type Service struct {
	storage storage.Storage
	cfg     config.AuthConfig

	mailer   mail.Mailer // может быть nil, если почта не сконфигурирована
	resetURL string      // база ссылки восстановления пароля

	loginLimiter limiter.LoginLimiter // может быть nil, если лимитер выключен
}

// New создаёт новый экземпляр Service.
func New(storage storage.Storage, cfg config.AuthConfig) *Service {
	return &Service{
		storage: storage,
		cfg:     cfg,
	}
}

// SetMailer устанавливает отправщик почты и базовый URL страницы
// сброса пароля (опционально).
func (s *Service) SetMailer(m mail.Mailer, resetURL string) {
	s.mailer = m
	s.resetURL = resetURL
}

// SetLoginLimiter устанавливает лимитер неудачных попыток входа (опционально).
func (s *Service) SetLoginLimiter(l limiter.LoginLimiter) {
	s.loginLimiter = l
}
