// Package common — errors.go определяет пользовательские ошибки,
// которые используются во всех модулях приложения.
// Эти ошибки позволяют обработчикам различать типы проблем
// и показывать пользователю понятные сообщения.
package common

import "errors"

// Ошибки учёта (балансы, операции)
var (
	// ErrUserNotFound — участник с таким ID не зарегистрирован
	ErrUserNotFound = errors.New("участник не найден")
	// ErrInvalidAmount — некорректная сумма (ноль или отрицательная)
	ErrInvalidAmount = errors.New("сумма должна быть положительной")
	// ErrInsufficientBalance — недостаточно средств на счёте
	ErrInsufficientBalance = errors.New("недостаточно средств на счёте")
)

// Ошибки регистрации
var (
	// ErrDuplicateUserID — участник с таким ID уже зарегистрирован
	ErrDuplicateUserID = errors.New("участник с таким ID уже существует")
	// ErrDuplicateUsername — имя пользователя уже занято
	ErrDuplicateUsername = errors.New("имя пользователя уже занято")
)

// Ошибки ввода
var (
	// ErrInvalidUserID — ID пользователя не является целым числом
	ErrInvalidUserID = errors.New("ID пользователя должен быть целым числом")
	// ErrInvalidNumber — введённое значение не является числом
	ErrInvalidNumber = errors.New("введённое значение не является числом")
)
