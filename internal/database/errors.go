package database

import "errors"

var (
	// ErrNotFound возвращается, когда запись отсутствует в хранилище
	ErrNotFound = errors.New("record not found")

	// ErrEmailTaken возвращается при попытке занять уже существующий email
	ErrEmailTaken = errors.New("email already registered")

	// ErrStoreUnavailable возвращается, когда хранилище недоступно
	ErrStoreUnavailable = errors.New("store unavailable")
)
