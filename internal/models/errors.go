package models

import "errors"

var (
	ErrNotFound            = errors.New("не найдено")
	ErrInvalidCredentials  = errors.New("неверный email или пароль")
	ErrInvalidToken        = errors.New("недействительный токен")
	ErrUnknownSubject      = errors.New("пользователь токена не существует")
	ErrDuplicateEmail      = errors.New("email уже используется")
	ErrDuplicateName       = errors.New("имя уже существует")
	ErrReferentialConflict = errors.New("на сущность ссылаются посты")
	ErrForbidden           = errors.New("доступ запрещен")
)
