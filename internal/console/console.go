// Package console — презентационный слой: текстовое меню в терминале.
// Меню повторяет форму оригинального окна: пять действий и поля ввода.
// Вся логика живёт за интерфейсом Actions, консоль только собирает текст
// и показывает ответы.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Actions — операции фасада, доступные из меню.
// Консоль зависит только от этого интерфейса, поэтому ядро
// тестируется без какого-либо UI.
type Actions interface {
	HandleBalance(ctx context.Context, userIDText string)
	HandleRecharge(ctx context.Context, userIDText, amountText string)
	HandleSpend(ctx context.Context, userIDText, amountText string)
	HandleRegister(ctx context.Context, userIDText, usernameText string)
	HandleDepositHistory(ctx context.Context, userIDText string)
	HandleSpendHistory(ctx context.Context, userIDText string)
}

// Console читает команды из in и печатает меню/ответы в out.
type Console struct {
	in      *bufio.Scanner
	out     io.Writer
	actions Actions
}

// New создаёт консольный интерфейс.
func New(in io.Reader, out io.Writer, actions Actions) *Console {
	return &Console{
		in:      bufio.NewScanner(in),
		out:     out,
		actions: actions,
	}
}

const menu = `
=== Система управления участниками ===
1 — баланс участника
2 — пополнить счёт
3 — списать со счёта
4 — зарегистрировать участника
5 — история пополнений
6 — история списаний
0 — выход
`

// Run запускает цикл меню. Возвращается, когда пользователь выбрал
// выход, ввод закончился или контекст отменён.
func (c *Console) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		fmt.Fprint(c.out, menu)
		choice, ok := c.prompt("Действие: ")
		if !ok {
			return nil
		}

		switch choice {
		case "0", "q", "выход":
			fmt.Fprintln(c.out, "До свидания!")
			return nil
		case "1":
			if userID, ok := c.prompt("ID участника: "); ok {
				c.actions.HandleBalance(ctx, userID)
			}
		case "2":
			c.withAmount(ctx, c.actions.HandleRecharge)
		case "3":
			c.withAmount(ctx, c.actions.HandleSpend)
		case "4":
			userID, ok := c.prompt("ID участника: ")
			if !ok {
				return nil
			}
			username, ok := c.prompt("Имя (пусто — user_<ID>): ")
			if !ok {
				return nil
			}
			c.actions.HandleRegister(ctx, userID, username)
		case "5":
			if userID, ok := c.prompt("ID участника: "); ok {
				c.actions.HandleDepositHistory(ctx, userID)
			}
		case "6":
			if userID, ok := c.prompt("ID участника: "); ok {
				c.actions.HandleSpendHistory(ctx, userID)
			}
		default:
			fmt.Fprintln(c.out, "❌ Неизвестное действие")
		}
	}
}

// withAmount — общий сценарий «ID + сумма» для пополнения и списания.
func (c *Console) withAmount(ctx context.Context, action func(context.Context, string, string)) {
	userID, ok := c.prompt("ID участника: ")
	if !ok {
		return
	}
	amount, ok := c.prompt("Сумма: ")
	if !ok {
		return
	}
	action(ctx, userID, amount)
}

// prompt печатает приглашение и читает одну строку.
// Второе значение false — ввод закончился (EOF).
func (c *Console) prompt(label string) (string, bool) {
	fmt.Fprint(c.out, label)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			log.WithError(err).Error("Ошибка чтения ввода")
		}
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}
