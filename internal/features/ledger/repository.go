// Package ledger — repository.go выполняет все операции с таблицами
// accounts и transactions. Денежные операции (пополнение, списание)
// выполняются в транзакциях БД для целостности данных.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"serotonyl.ru/member-ledger/internal/common"
)

// Имена уникальных ограничений таблицы accounts.
// По ним различаем, что именно дублируется при регистрации.
const (
	constraintUserID   = "accounts_user_id_key"
	constraintUsername = "accounts_username_key"
)

// Repository предоставляет методы для работы со счетами и журналом операций.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт новый репозиторий учёта.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// GetBalance возвращает текущий баланс участника.
// Если участник не зарегистрирован — ошибка с common.ErrUserNotFound.
func (r *Repository) GetBalance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	query := `SELECT balance FROM accounts WHERE user_id = $1`
	var balance decimal.Decimal
	err := r.db.QueryRow(ctx, query, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, fmt.Errorf("счёт не найден (user_id=%d): %w", userID, common.ErrUserNotFound)
		}
		return decimal.Zero, fmt.Errorf("ошибка получения баланса: %w", err)
	}
	return balance, nil
}

// UpdateBalance безусловно перезаписывает баланс участника.
// Существование счёта НЕ проверяется: UPDATE без подходящей строки —
// тихий no-op. Вызывающий обязан проверить счёт заранее.
func (r *Repository) UpdateBalance(ctx context.Context, userID int64, newBalance decimal.Decimal) error {
	query := `UPDATE accounts SET balance = $2, updated_at = NOW() WHERE user_id = $1`
	if _, err := r.db.Exec(ctx, query, userID, newBalance); err != nil {
		return fmt.Errorf("ошибка обновления баланса: %w", err)
	}
	return nil
}

// Register добавляет нового участника.
// При конфликте уникальности строка не вставляется, а ошибка
// маппится на common.ErrDuplicateUserID / common.ErrDuplicateUsername
// по имени нарушенного ограничения.
func (r *Repository) Register(ctx context.Context, acc *Account) error {
	query := `
		INSERT INTO accounts (user_id, balance, username)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, acc.UserID, acc.Balance, acc.Username).
		Scan(&acc.ID, &acc.CreatedAt, &acc.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case constraintUserID:
				return fmt.Errorf("user_id=%d: %w", acc.UserID, common.ErrDuplicateUserID)
			case constraintUsername:
				return fmt.Errorf("username=%s: %w", acc.Username, common.ErrDuplicateUsername)
			}
			return fmt.Errorf("конфликт уникальности: %w", common.ErrDuplicateUserID)
		}
		return fmt.Errorf("ошибка регистрации участника: %w", err)
	}
	return nil
}

// AddTransaction добавляет запись в журнал операций.
// Время операции проставляет база (NOW()). Существование счёта
// не проверяется — ссылочной целостности на уровне схемы нет.
func (r *Repository) AddTransaction(ctx context.Context, userID int64, amount decimal.Decimal, txType string) error {
	query := `INSERT INTO transactions (user_id, amount, transaction_type) VALUES ($1, $2, $3)`
	if _, err := r.db.Exec(ctx, query, userID, amount, txType); err != nil {
		return fmt.Errorf("ошибка записи операции: %w", err)
	}
	return nil
}

// Transactions возвращает операции участника указанного типа,
// отсортированные по времени по убыванию (свежие первыми).
// Пустой список не отличим от «участник не существует».
func (r *Repository) Transactions(ctx context.Context, userID int64, txType string) ([]*Transaction, error) {
	query := `
		SELECT id, user_id, amount, transaction_type, transaction_time
		FROM transactions
		WHERE user_id = $1 AND transaction_type = $2
		ORDER BY transaction_time DESC, id DESC
	`
	return r.queryTransactions(ctx, query, userID, txType)
}

// TransactionsSince возвращает все операции начиная с указанного момента.
// Используется для ежедневной сводки.
func (r *Repository) TransactionsSince(ctx context.Context, since time.Time) ([]*Transaction, error) {
	query := `
		SELECT id, user_id, amount, transaction_type, transaction_time
		FROM transactions
		WHERE transaction_time >= $1
		ORDER BY transaction_time DESC, id DESC
	`
	return r.queryTransactions(ctx, query, since)
}

// Recharge пополняет счёт участника.
// Обновление баланса и запись в журнал выполняются в одной транзакции БД:
// либо произойдут обе записи, либо ни одной.
// Возвращает новый баланс.
func (r *Repository) Recharge(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	// Блокируем строку счёта и читаем текущий баланс
	var balance decimal.Decimal
	err = tx.QueryRow(ctx,
		`SELECT balance FROM accounts WHERE user_id = $1 FOR UPDATE`, userID,
	).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, fmt.Errorf("счёт не найден (user_id=%d): %w", userID, common.ErrUserNotFound)
		}
		return decimal.Zero, fmt.Errorf("ошибка получения баланса: %w", err)
	}

	newBalance := balance.Add(amount)

	_, err = tx.Exec(ctx,
		`UPDATE accounts SET balance = $2, updated_at = NOW() WHERE user_id = $1`,
		userID, newBalance,
	)
	if err != nil {
		return decimal.Zero, fmt.Errorf("ошибка пополнения: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO transactions (user_id, amount, transaction_type) VALUES ($1, $2, $3)`,
		userID, amount, TxTypeDeposit,
	)
	if err != nil {
		return decimal.Zero, fmt.Errorf("ошибка записи операции: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return decimal.Zero, fmt.Errorf("ошибка фиксации транзакции: %w", err)
	}
	return newBalance, nil
}

// Spend списывает средства со счёта участника.
// Проверяет достаточность средств под блокировкой FOR UPDATE,
// баланс и журнал обновляются атомарно.
func (r *Repository) Spend(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	var balance decimal.Decimal
	err = tx.QueryRow(ctx,
		`SELECT balance FROM accounts WHERE user_id = $1 FOR UPDATE`, userID,
	).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, fmt.Errorf("счёт не найден (user_id=%d): %w", userID, common.ErrUserNotFound)
		}
		return decimal.Zero, fmt.Errorf("ошибка получения баланса: %w", err)
	}

	if balance.LessThan(amount) {
		return decimal.Zero, fmt.Errorf("нужно %s, есть %s: %w",
			amount.StringFixed(2), balance.StringFixed(2), common.ErrInsufficientBalance)
	}

	newBalance := balance.Sub(amount)

	_, err = tx.Exec(ctx,
		`UPDATE accounts SET balance = $2, updated_at = NOW() WHERE user_id = $1`,
		userID, newBalance,
	)
	if err != nil {
		return decimal.Zero, fmt.Errorf("ошибка списания: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO transactions (user_id, amount, transaction_type) VALUES ($1, $2, $3)`,
		userID, amount, TxTypeSpend,
	)
	if err != nil {
		return decimal.Zero, fmt.Errorf("ошибка записи операции: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return decimal.Zero, fmt.Errorf("ошибка фиксации транзакции: %w", err)
	}
	return newBalance, nil
}

func (r *Repository) queryTransactions(ctx context.Context, query string, args ...interface{}) ([]*Transaction, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса операций: %w", err)
	}
	defer rows.Close()

	var out []*Transaction
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Amount, &t.TransactionType, &t.TransactionTime); err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки: %w", err)
		}
		out = append(out, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения строк: %w", err)
	}

	return out, nil
}
