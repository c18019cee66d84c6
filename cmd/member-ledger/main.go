// Package main — точка входа приложения.
// Загружает конфигурацию, инициализирует компоненты и запускает
// консольное меню. Поддерживает остановку по SIGINT/SIGTERM.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"serotonyl.ru/member-ledger/internal/app"
	"serotonyl.ru/member-ledger/internal/config"
)

func main() {
	setupLogging()

	log.Info("=== Учёт участников запускается ===")

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Не удалось загрузить конфигурацию")
	}

	// Устанавливаем уровень логирования из конфига
	level, err := log.ParseLevel(cfg.AppLogLevel)
	if err == nil {
		log.SetLevel(level)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application, err := app.New(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("Не удалось инициализировать приложение")
	}
	defer application.DB.Close()

	if cfg.FeatureDailySummary {
		application.Scheduler.Start(ctx)
		defer application.Scheduler.Stop()
	}

	// Обрабатываем сигналы остановки (Ctrl+C)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Запускаем консольное меню в отдельной горутине
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := application.Console.Run(ctx); err != nil && ctx.Err() == nil {
			log.WithError(err).Error("Консоль завершилась с ошибкой")
		}
	}()

	// Ждём выхода из меню или сигнала остановки
	select {
	case <-done:
	case sig := <-quit:
		log.Infof("Получен сигнал %s, останавливаемся...", sig)
		cancel()
	}

	log.Info("=== Приложение остановлено ===")
}

// setupLogging настраивает формат логов.
func setupLogging() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	log.SetOutput(os.Stderr)
	log.SetLevel(log.InfoLevel)
}
