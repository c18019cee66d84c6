// Package common содержит общие утилиты, используемые во всём проекте.
// Сюда входят: русская плюрализация, форматирование сумм, работа с временем.
package common

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// PluralizeYuans возвращает правильную форму слова «юань» для числа n.
//
// Правила русского языка:
//   - n%10==1 И n%100!=11 → "юань" (1, 21, 31, 101, ...)
//   - n%10 в [2,3,4] И n%100 НЕ в [12,13,14] → "юаня" (2, 3, 4, 22, 23, ...)
//   - Остальные случаи → "юаней" (0, 5-20, 25-30, 100, ...)
func PluralizeYuans(n int64) string {
	absN := int64(math.Abs(float64(n)))
	lastDigit := absN % 10
	lastTwoDigits := absN % 100

	if lastDigit == 1 && lastTwoDigits != 11 {
		return "юань"
	}
	if lastDigit >= 2 && lastDigit <= 4 && (lastTwoDigits < 12 || lastTwoDigits > 14) {
		return "юаня"
	}
	return "юаней"
}

// FormatAmount форматирует денежную сумму в читабельную строку.
// Дробные суммы всегда идут с формой «юаня» (50.50 юаня).
//
// Примеры:
//
//	FormatAmount(decimal.NewFromInt(50))          → "50 юаней"
//	FormatAmount(decimal.RequireFromString("1.5")) → "1.50 юаня"
func FormatAmount(d decimal.Decimal) string {
	if d.IsInteger() {
		return fmt.Sprintf("%d %s", d.IntPart(), PluralizeYuans(d.IntPart()))
	}
	return fmt.Sprintf("%s юаня", d.StringFixed(2))
}

// FormatDateTime форматирует время операции в "02.01.2006 15:04:05".
// Приложение локальное, поэтому показываем время в поясе машины.
func FormatDateTime(t time.Time) string {
	return t.In(time.Local).Format("02.01.2006 15:04:05")
}

// TodayStart возвращает начало текущих суток в указанном поясе.
// Используется для ежедневной сводки операций.
func TodayStart(loc *time.Location) time.Time {
	t := time.Now().In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
