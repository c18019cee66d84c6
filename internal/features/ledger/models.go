// Package ledger управляет счетами участников и журналом операций.
// models.go описывает структуры для таблиц accounts и transactions.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account представляет счёт участника.
// Каждый участник имеет ровно одну запись в таблице accounts.
type Account struct {
	ID        int64           `db:"id"`         // Автоинкрементный ID записи в БД
	UserID    int64           `db:"user_id"`    // ID участника (уникальный)
	Balance   decimal.Decimal `db:"balance"`    // Текущий баланс
	Username  string          `db:"username"`   // Имя участника (уникальное)
	CreatedAt time.Time       `db:"created_at"` // Когда запись создана
	UpdatedAt time.Time       `db:"updated_at"` // Последнее обновление записи
}

// Transaction представляет одну операцию по счёту.
// Записи неизменяемы: после вставки никогда не обновляются и не удаляются.
type Transaction struct {
	ID              int64           `db:"id"`               // ID операции
	UserID          int64           `db:"user_id"`          // Чей счёт
	Amount          decimal.Decimal `db:"amount"`           // Сумма (всегда положительная)
	TransactionType string          `db:"transaction_type"` // Тип: 'deposit' или 'spend'
	TransactionTime time.Time       `db:"transaction_time"` // Время операции (по умолчанию момент записи)
}

// Допустимые типы операций
const (
	TxTypeDeposit = "deposit" // Пополнение счёта
	TxTypeSpend   = "spend"   // Списание со счёта
)

// Summary — итоги операций за период для ежедневной сводки.
type Summary struct {
	Deposits     decimal.Decimal // Сумма пополнений
	Spends       decimal.Decimal // Сумма списаний
	DepositCount int             // Количество пополнений
	SpendCount   int             // Количество списаний
}
