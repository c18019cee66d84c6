// Package app инициализирует все компоненты приложения.
// app.go — точка сборки: создаёт БД-пул, применяет миграции,
// собирает репозиторий, сервис, обработчики и консольный интерфейс.
package app

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/member-ledger/internal/config"
	"serotonyl.ru/member-ledger/internal/console"
	"serotonyl.ru/member-ledger/internal/db/postgres"
	"serotonyl.ru/member-ledger/internal/features/ledger"
	"serotonyl.ru/member-ledger/internal/jobs"
)

// App содержит все компоненты приложения.
type App struct {
	Console   *console.Console
	Scheduler *jobs.Scheduler
	Ledger    *ledger.Service
	DB        *pgxpool.Pool
}

// New создаёт и инициализирует приложение.
// Порядок важен: пул БД → миграции → репозиторий → сервис → интерфейс.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// === 1. База данных ===
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}

	if err := runMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ошибка миграций: %w", err)
	}

	// === 2. Репозиторий и сервис ===
	startingBalance, err := cfg.StartingBalance()
	if err != nil {
		pool.Close()
		return nil, err
	}

	ledgerRepo := ledger.NewRepository(pool)
	ledgerService := ledger.NewService(ledgerRepo, startingBalance, cfg.LedgerUsernamePrefix)

	// === 3. Обработчики и консоль ===
	ledgerHandler := ledger.NewHandler(ledgerService, os.Stdout)
	ui := console.New(os.Stdin, os.Stdout, ledgerHandler)

	// === 4. Планировщик задач ===
	scheduler := jobs.NewScheduler(ledgerService, cfg.AppTimezone)

	return &App{
		Console:   ui,
		Scheduler: scheduler,
		Ledger:    ledgerService,
		DB:        pool,
	}, nil
}

// runMigrations выполняет все SQL-миграции.
func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	if err := postgres.InitMigrations(ctx, pool); err != nil {
		return err
	}

	migrations := []struct {
		version int
		sql     string
	}{
		{1, migration001Accounts},
		{2, migration002Transactions},
	}

	for _, m := range migrations {
		if err := postgres.ExecMigrationSQL(ctx, pool, m.version, m.sql); err != nil {
			return fmt.Errorf("миграция %d: %w", m.version, err)
		}
		log.Infof("Миграция %d применена", m.version)
	}

	return nil
}

// SQL-миграции встроены в код для упрощения деплоя.

var migration001Accounts = `
CREATE TABLE IF NOT EXISTS accounts (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL,
    balance NUMERIC(14,2) NOT NULL DEFAULT 0,
    username VARCHAR(255) NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
    CONSTRAINT accounts_user_id_key UNIQUE (user_id),
    CONSTRAINT accounts_username_key UNIQUE (username)
);
`

// user_id в transactions без внешнего ключа: журнал переживает любые
// манипуляции со счетами, целостность обеспечивает фасад.
var migration002Transactions = `
CREATE TABLE IF NOT EXISTS transactions (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL,
    amount NUMERIC(14,2) NOT NULL,
    transaction_type VARCHAR(20) NOT NULL,
    transaction_time TIMESTAMP NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_transactions_user_type ON transactions(user_id, transaction_type);
CREATE INDEX IF NOT EXISTS idx_transactions_time ON transactions(transaction_time DESC);
`
