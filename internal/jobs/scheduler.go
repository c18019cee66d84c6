// Package jobs управляет фоновыми задачами (cron).
// scheduler.go настраивает расписание: ежедневная сводка операций
// в конце суток.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/member-ledger/internal/common"
	"serotonyl.ru/member-ledger/internal/features/ledger"
)

// Scheduler управляет фоновыми задачами.
type Scheduler struct {
	cron          *cron.Cron
	ledgerService *ledger.Service
	loc           *time.Location
}

// NewScheduler создаёт планировщик задач в указанном часовом поясе.
func NewScheduler(ledgerService *ledger.Service, timezone string) *Scheduler {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		log.WithError(err).Warnf("Не удалось загрузить пояс %s, используем UTC+3", timezone)
		loc = time.FixedZone("MSK", 3*60*60)
	}

	return &Scheduler{
		cron:          cron.New(cron.WithLocation(loc)),
		ledgerService: ledgerService,
		loc:           loc,
	}
}

// Start запускает все фоновые задачи.
func (s *Scheduler) Start(ctx context.Context) {
	// Сводка за день в 23:55 местного времени
	s.cron.AddFunc("55 23 * * *", func() {
		log.Info("[CRON] Ежедневная сводка операций")
		if err := s.logDailySummary(ctx); err != nil {
			log.WithError(err).Error("[CRON] Ошибка сводки")
		}
	})

	s.cron.Start()
	log.Infof("Планировщик задач запущен (%s)", s.loc)
}

// Stop останавливает планировщик и дожидается активных задач.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Планировщик задач остановлен")
}

// logDailySummary пишет в лог итоги операций с начала суток.
func (s *Scheduler) logDailySummary(ctx context.Context) error {
	summary, err := s.ledgerService.DailySummary(ctx, common.TodayStart(s.loc))
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"deposits":      summary.Deposits.StringFixed(2),
		"deposit_count": summary.DepositCount,
		"spends":        summary.Spends.StringFixed(2),
		"spend_count":   summary.SpendCount,
	}).Info("[CRON] Итоги дня")
	return nil
}
