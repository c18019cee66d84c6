// Package ledger — handlers.go переводит текстовый ввод пользователя
// в типизированные вызовы сервиса и печатает итоги операций.
// Это граница между формой и ядром: сюда приходит сырой текст из полей ввода.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/member-ledger/internal/common"
)

// Handler обрабатывает действия пользователя.
// Результаты пишутся в out (обычно stdout консольного интерфейса).
type Handler struct {
	service *Service
	out     io.Writer
}

// NewHandler создаёт новый обработчик действий.
func NewHandler(service *Service, out io.Writer) *Handler {
	return &Handler{service: service, out: out}
}

// HandleBalance обрабатывает запрос баланса.
//
// Формат ответа:
//
//	💰 Баланс: 150 юаней
func (h *Handler) HandleBalance(ctx context.Context, userIDText string) {
	userID, err := parseUserID(userIDText)
	if err != nil {
		h.reply("❌ %s", err)
		return
	}

	balance, err := h.service.QueryBalance(ctx, userID)
	if err != nil {
		h.replyError(err, "получения баланса", userID)
		return
	}

	h.reply("💰 Баланс: %s", common.FormatAmount(balance))
}

// HandleRecharge обрабатывает пополнение счёта.
// Сумма проверяется до обращения к хранилищу.
func (h *Handler) HandleRecharge(ctx context.Context, userIDText, amountText string) {
	userID, err := parseUserID(userIDText)
	if err != nil {
		h.reply("❌ %s", err)
		return
	}
	amount, err := parseAmount(amountText)
	if err != nil {
		h.reply("❌ %s", err)
		return
	}

	newBalance, err := h.service.Recharge(ctx, userID, amount)
	if err != nil {
		h.replyError(err, "пополнения", userID)
		return
	}

	h.reply("✅ Счёт пополнен на %s\nНовый баланс: %s",
		common.FormatAmount(amount), common.FormatAmount(newBalance))
}

// HandleSpend обрабатывает списание со счёта.
func (h *Handler) HandleSpend(ctx context.Context, userIDText, amountText string) {
	userID, err := parseUserID(userIDText)
	if err != nil {
		h.reply("❌ %s", err)
		return
	}
	amount, err := parseAmount(amountText)
	if err != nil {
		h.reply("❌ %s", err)
		return
	}

	newBalance, err := h.service.Spend(ctx, userID, amount)
	if err != nil {
		h.replyError(err, "списания", userID)
		return
	}

	h.reply("✅ Списано %s\nНовый баланс: %s",
		common.FormatAmount(amount), common.FormatAmount(newBalance))
}

// HandleRegister обрабатывает регистрацию нового участника.
// Пустое имя допустимо — сервис подставит user_<ID>.
func (h *Handler) HandleRegister(ctx context.Context, userIDText, usernameText string) {
	userID, err := parseUserID(userIDText)
	if err != nil {
		h.reply("❌ %s", err)
		return
	}

	if err := h.service.Register(ctx, userID, usernameText); err != nil {
		h.replyError(err, "регистрации", userID)
		return
	}

	h.reply("✅ Участник %d зарегистрирован", userID)
}

// HandleDepositHistory печатает историю пополнений участника.
func (h *Handler) HandleDepositHistory(ctx context.Context, userIDText string) {
	h.handleHistory(ctx, userIDText, TxTypeDeposit)
}

// HandleSpendHistory печатает историю списаний участника.
func (h *Handler) HandleSpendHistory(ctx context.Context, userIDText string) {
	h.handleHistory(ctx, userIDText, TxTypeSpend)
}

func (h *Handler) handleHistory(ctx context.Context, userIDText, txType string) {
	userID, err := parseUserID(userIDText)
	if err != nil {
		h.reply("❌ %s", err)
		return
	}

	history, err := h.service.History(ctx, userID, txType)
	if err != nil {
		h.replyError(err, "получения истории", userID)
		return
	}

	h.reply("%s", history)
}

// replyError переводит ошибки сервиса в понятные пользователю сообщения.
// Разрешимые ошибки (не найден, дубликат, нехватка средств) показываются
// как есть; остальные логируются и показываются обобщённо.
func (h *Handler) replyError(err error, operation string, userID int64) {
	switch {
	case isUserFacing(err):
		h.reply("❌ %s", userFacing(err))
	default:
		log.WithFields(log.Fields{
			"user_id":   userID,
			"operation": operation,
		}).WithError(err).Error("Ошибка операции")
		h.reply("❌ Ошибка %s, подробности в логе", operation)
	}
}

// userFacingErrors — разрешимые ошибки, которые показываем пользователю напрямую.
var userFacingErrors = []error{
	common.ErrUserNotFound,
	common.ErrInvalidAmount,
	common.ErrInsufficientBalance,
	common.ErrDuplicateUserID,
	common.ErrDuplicateUsername,
}

func isUserFacing(err error) bool {
	for _, target := range userFacingErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// userFacing возвращает текст базовой разрешимой ошибки без технических деталей.
func userFacing(err error) string {
	for _, target := range userFacingErrors {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return err.Error()
}

// parseUserID парсит ID участника из текстового поля.
func parseUserID(text string) (int64, error) {
	userID, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		return 0, common.ErrInvalidUserID
	}
	return userID, nil
}

// parseAmount парсит денежную сумму из текстового поля.
// Знак здесь не проверяется — это забота сервиса.
func parseAmount(text string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return decimal.Zero, common.ErrInvalidNumber
	}
	return amount, nil
}

// reply — вспомогательный метод для вывода сообщений пользователю.
func (h *Handler) reply(format string, args ...interface{}) {
	fmt.Fprintf(h.out, format+"\n", args...)
}
