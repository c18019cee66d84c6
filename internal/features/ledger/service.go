// Package ledger — service.go содержит бизнес-логику учёта:
// валидацию сумм, регистрацию, пополнение/списание и сборку истории операций.
package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/member-ledger/internal/common"
)

// Store описывает хранилище счетов и журнала операций.
// Реализуется *Repository (PostgreSQL) и inmem.Store (для тестов).
type Store interface {
	GetBalance(ctx context.Context, userID int64) (decimal.Decimal, error)
	UpdateBalance(ctx context.Context, userID int64, newBalance decimal.Decimal) error
	Register(ctx context.Context, acc *Account) error
	AddTransaction(ctx context.Context, userID int64, amount decimal.Decimal, txType string) error
	Transactions(ctx context.Context, userID int64, txType string) ([]*Transaction, error)
	TransactionsSince(ctx context.Context, since time.Time) ([]*Transaction, error)
	Recharge(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error)
	Spend(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error)
}

// Service — фасад приложения над хранилищем.
// Все проверки уровня бизнес-логики (положительная сумма, имя по умолчанию)
// выполняются здесь, до обращения к хранилищу.
type Service struct {
	store           Store
	startingBalance decimal.Decimal // Баланс нового участника, если не указан иной
	usernamePrefix  string          // Префикс имени по умолчанию (user_<ID>)
}

// NewService создаёт новый сервис учёта.
func NewService(store Store, startingBalance decimal.Decimal, usernamePrefix string) *Service {
	return &Service{
		store:           store,
		startingBalance: startingBalance,
		usernamePrefix:  usernamePrefix,
	}
}

// QueryBalance возвращает текущий баланс участника.
// Незарегистрированный участник — common.ErrUserNotFound, не фатально.
func (s *Service) QueryBalance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	return s.store.GetBalance(ctx, userID)
}

// Register регистрирует нового участника со стартовым балансом.
// Пустое имя заменяется на user_<ID>.
func (s *Service) Register(ctx context.Context, userID int64, username string) error {
	return s.RegisterWithBalance(ctx, userID, username, s.startingBalance)
}

// RegisterWithBalance регистрирует участника с указанным начальным балансом.
func (s *Service) RegisterWithBalance(ctx context.Context, userID int64, username string, initialBalance decimal.Decimal) error {
	username = strings.TrimSpace(username)
	if username == "" {
		username = fmt.Sprintf("%s%d", s.usernamePrefix, userID)
	}

	acc := &Account{
		UserID:   userID,
		Balance:  initialBalance,
		Username: username,
	}

	if err := s.store.Register(ctx, acc); err != nil {
		log.WithFields(log.Fields{
			"user_id":  userID,
			"username": username,
		}).WithError(err).Warn("Регистрация не удалась")
		return err
	}

	log.WithFields(log.Fields{
		"user_id":  userID,
		"username": username,
		"balance":  initialBalance.String(),
	}).Info("Новый участник зарегистрирован")

	return nil
}

// Recharge пополняет счёт участника на указанную сумму.
// Сумма должна быть положительной; обновление баланса и запись
// в журнал атомарны (одна транзакция БД в хранилище).
// Возвращает новый баланс.
func (s *Service) Recharge(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, common.ErrInvalidAmount
	}

	newBalance, err := s.store.Recharge(ctx, userID, amount)
	if err != nil {
		return decimal.Zero, err
	}

	log.WithFields(log.Fields{
		"user_id":     userID,
		"amount":      amount.String(),
		"new_balance": newBalance.String(),
	}).Info("Счёт пополнен")

	return newBalance, nil
}

// Spend списывает сумму со счёта участника.
// Сумма должна быть положительной, средств должно хватать.
func (s *Service) Spend(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, common.ErrInvalidAmount
	}

	newBalance, err := s.store.Spend(ctx, userID, amount)
	if err != nil {
		return decimal.Zero, err
	}

	log.WithFields(log.Fields{
		"user_id":     userID,
		"amount":      amount.String(),
		"new_balance": newBalance.String(),
	}).Info("Списание выполнено")

	return newBalance, nil
}

// txTypeLabels — подписи типов операций для отображения в истории.
var txTypeLabels = map[string]string{
	TxTypeDeposit: "пополнение",
	TxTypeSpend:   "списание",
}

// History возвращает форматированную историю операций участника
// указанного типа. Порядок — от свежих к старым, как отдаёт хранилище.
// Каждая строка: "<время>: <тип> <сумма>".
func (s *Service) History(ctx context.Context, userID int64, txType string) (string, error) {
	transactions, err := s.store.Transactions(ctx, userID, txType)
	if err != nil {
		return "", err
	}

	label := txTypeLabels[txType]

	if len(transactions) == 0 {
		return fmt.Sprintf("📋 Операций типа «%s» не найдено", label), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📋 Всего операций: %d\n", len(transactions)))
	for _, tx := range transactions {
		sb.WriteString(fmt.Sprintf("%s: %s %s\n",
			common.FormatDateTime(tx.TransactionTime),
			label,
			common.FormatAmount(tx.Amount),
		))
	}

	return sb.String(), nil
}

// DailySummary считает итоги операций начиная с указанного момента.
// Вызывается планировщиком с началом текущих суток.
func (s *Service) DailySummary(ctx context.Context, since time.Time) (*Summary, error) {
	transactions, err := s.store.TransactionsSince(ctx, since)
	if err != nil {
		return nil, err
	}

	sum := &Summary{Deposits: decimal.Zero, Spends: decimal.Zero}
	for _, tx := range transactions {
		switch tx.TransactionType {
		case TxTypeDeposit:
			sum.Deposits = sum.Deposits.Add(tx.Amount)
			sum.DepositCount++
		case TxTypeSpend:
			sum.Spends = sum.Spends.Add(tx.Amount)
			sum.SpendCount++
		}
	}
	return sum, nil
}
