// Package inmem — хранилище счетов в памяти.
// Реализует ledger.Store и используется в тестах сервиса вместо PostgreSQL.
// Семантика повторяет репозиторий: тихий no-op в UpdateBalance,
// отсутствие ссылочной проверки в AddTransaction, сортировка истории
// по убыванию времени.
package inmem

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"serotonyl.ru/member-ledger/internal/common"
	"serotonyl.ru/member-ledger/internal/features/ledger"
)

// Store хранит счета и журнал операций в памяти.
type Store struct {
	mu       sync.RWMutex
	accounts map[int64]*ledger.Account
	byName   map[string]int64
	txs      []*ledger.Transaction
	nextAcc  int64
	nextTx   int64

	// Clock подменяется в тестах для контроля таймстемпов операций.
	Clock func() time.Time
}

// New создаёт пустое хранилище.
func New() *Store {
	return &Store{
		accounts: make(map[int64]*ledger.Account),
		byName:   make(map[string]int64),
		Clock:    time.Now,
	}
}

func (s *Store) GetBalance(_ context.Context, userID int64) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[userID]
	if !ok {
		return decimal.Zero, fmt.Errorf("счёт не найден (user_id=%d): %w", userID, common.ErrUserNotFound)
	}
	return acc.Balance, nil
}

// UpdateBalance перезаписывает баланс. Несуществующий счёт — тихий no-op,
// как у UPDATE без подходящей строки.
func (s *Store) UpdateBalance(_ context.Context, userID int64, newBalance decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if acc, ok := s.accounts[userID]; ok {
		acc.Balance = newBalance
		acc.UpdatedAt = s.Clock()
	}
	return nil
}

func (s *Store) Register(_ context.Context, acc *ledger.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[acc.UserID]; ok {
		return fmt.Errorf("user_id=%d: %w", acc.UserID, common.ErrDuplicateUserID)
	}
	if _, ok := s.byName[acc.Username]; ok {
		return fmt.Errorf("username=%s: %w", acc.Username, common.ErrDuplicateUsername)
	}

	s.nextAcc++
	now := s.Clock()
	stored := *acc
	stored.ID = s.nextAcc
	stored.CreatedAt = now
	stored.UpdatedAt = now

	s.accounts[acc.UserID] = &stored
	s.byName[acc.Username] = acc.UserID

	acc.ID = stored.ID
	acc.CreatedAt = now
	acc.UpdatedAt = now
	return nil
}

// AddTransaction добавляет запись в журнал. Счёт может не существовать —
// ссылочной проверки нет, как и в схеме БД.
func (s *Store) AddTransaction(_ context.Context, userID int64, amount decimal.Decimal, txType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.appendTransaction(userID, amount, txType)
	return nil
}

func (s *Store) Transactions(_ context.Context, userID int64, txType string) ([]*ledger.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*ledger.Transaction
	for _, tx := range s.txs {
		if tx.UserID == userID && tx.TransactionType == txType {
			out = append(out, tx)
		}
	}
	sortDescending(out)
	return out, nil
}

func (s *Store) TransactionsSince(_ context.Context, since time.Time) ([]*ledger.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*ledger.Transaction
	for _, tx := range s.txs {
		if !tx.TransactionTime.Before(since) {
			out = append(out, tx)
		}
	}
	sortDescending(out)
	return out, nil
}

func (s *Store) Recharge(_ context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[userID]
	if !ok {
		return decimal.Zero, fmt.Errorf("счёт не найден (user_id=%d): %w", userID, common.ErrUserNotFound)
	}

	acc.Balance = acc.Balance.Add(amount)
	acc.UpdatedAt = s.Clock()
	s.appendTransaction(userID, amount, ledger.TxTypeDeposit)
	return acc.Balance, nil
}

func (s *Store) Spend(_ context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[userID]
	if !ok {
		return decimal.Zero, fmt.Errorf("счёт не найден (user_id=%d): %w", userID, common.ErrUserNotFound)
	}
	if acc.Balance.LessThan(amount) {
		return decimal.Zero, fmt.Errorf("нужно %s, есть %s: %w",
			amount.StringFixed(2), acc.Balance.StringFixed(2), common.ErrInsufficientBalance)
	}

	acc.Balance = acc.Balance.Sub(amount)
	acc.UpdatedAt = s.Clock()
	s.appendTransaction(userID, amount, ledger.TxTypeSpend)
	return acc.Balance, nil
}

// appendTransaction добавляет запись в журнал. Вызывать под s.mu.
func (s *Store) appendTransaction(userID int64, amount decimal.Decimal, txType string) {
	s.nextTx++
	s.txs = append(s.txs, &ledger.Transaction{
		ID:              s.nextTx,
		UserID:          userID,
		Amount:          amount,
		TransactionType: txType,
		TransactionTime: s.Clock(),
	})
}

// sortDescending сортирует как репозиторий: время DESC, при равенстве id DESC.
func sortDescending(txs []*ledger.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		if !txs[i].TransactionTime.Equal(txs[j].TransactionTime) {
			return txs[i].TransactionTime.After(txs[j].TransactionTime)
		}
		return txs[i].ID > txs[j].ID
	})
}
