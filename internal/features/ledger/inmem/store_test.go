package inmem_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"serotonyl.ru/member-ledger/internal/common"
	"serotonyl.ru/member-ledger/internal/features/ledger"
	"serotonyl.ru/member-ledger/internal/features/ledger/inmem"
)

// Контракт хранилища: UpdateBalance без подходящего счёта — тихий no-op,
// а не ошибка. Так же ведёт себя UPDATE в PostgreSQL.
func TestUpdateBalanceMissingAccountIsNoop(t *testing.T) {
	ctx := context.Background()
	store := inmem.New()

	if err := store.UpdateBalance(ctx, 42, decimal.NewFromInt(10)); err != nil {
		t.Fatalf("UpdateBalance: %v", err)
	}

	if _, err := store.GetBalance(ctx, 42); !errors.Is(err, common.ErrUserNotFound) {
		t.Errorf("GetBalance err = %v, want ErrUserNotFound", err)
	}
}

// Контракт хранилища: журнал не проверяет существование счёта
// (ссылочной целостности на уровне схемы нет).
func TestAddTransactionWithoutAccount(t *testing.T) {
	ctx := context.Background()
	store := inmem.New()

	if err := store.AddTransaction(ctx, 42, decimal.NewFromInt(5), ledger.TxTypeDeposit); err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}

	txs, err := store.Transactions(ctx, 42, ledger.TxTypeDeposit)
	if err != nil {
		t.Fatalf("Transactions: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("txs = %d, want 1", len(txs))
	}
}

func TestUpdateBalanceOverwrites(t *testing.T) {
	ctx := context.Background()
	store := inmem.New()

	acc := &ledger.Account{UserID: 1, Username: "alice", Balance: decimal.NewFromInt(100)}
	if err := store.Register(ctx, acc); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := store.UpdateBalance(ctx, 1, decimal.NewFromInt(7)); err != nil {
		t.Fatalf("UpdateBalance: %v", err)
	}

	balance, err := store.GetBalance(ctx, 1)
	if err != nil {
		t.Fatalf("GetBalance: %v", err)
	}
	if !balance.Equal(decimal.NewFromInt(7)) {
		t.Errorf("balance = %s, want 7", balance)
	}
}
